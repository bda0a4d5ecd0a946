package parameter

// Collision resolution
const (
	// MinSeparation is the center distance below which two NPC bodies overlap
	MinSeparation = NPCWidth

	// Restitution is the coefficient used by pairwise impulse exchange
	Restitution = 0.3

	// CorrectionShare is the fraction of overlap each body takes in positional correction
	CorrectionShare = 0.5
)

// Track avoidance
const (
	// TrackWidth is the corridor height around each train spawn line
	TrackWidth = 60.0

	// TrackMargin extends the repulsion zone beyond the corridor edge
	TrackMargin = 12.0

	// TrackRepulsion is the peak force pushing an NPC off a track corridor
	TrackRepulsion = 240.0
)

// SafeX and SafeY are the fallback position for an unrecoverable body
const (
	SafeX = 300.0
	SafeY = 400.0
)
