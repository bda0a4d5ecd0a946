package parameter

// Score deltas
const (
	ScoreDisruptiveHit  = 10
	ScoreCompliantHit   = -5
	ScoreCompliantExit  = 5
	ScoreDisruptiveExit = -10
)
