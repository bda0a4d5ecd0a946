package engine

import (
	"time"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/parameter"
)

// GameState is the score and pacing of one level run
type GameState struct {
	Score    int
	Elapsed  time.Duration
	Duration time.Duration
	Running  bool
	Over     bool

	Spawned    int
	Eliminated [2]int // Indexed by Disposition
	Exited     [2]int
}

// Remaining returns time left before game over
func (s *GameState) Remaining() time.Duration {
	return max(0, s.Duration-s.Elapsed)
}

// ScoreFor returns the score delta an event is worth
func ScoreFor(ev Event) int {
	switch ev.Type {
	case EventNPCEliminated:
		if ev.Disposition == component.Disruptive {
			return parameter.ScoreDisruptiveHit
		}
		return parameter.ScoreCompliantHit
	case EventNPCExited:
		if ev.Disposition == component.Disruptive {
			return parameter.ScoreDisruptiveExit
		}
		return parameter.ScoreCompliantExit
	default:
		return 0
	}
}

// apply folds one event into the tallies
func (s *GameState) apply(ev Event) {
	s.Score += ScoreFor(ev)
	d := int(ev.Disposition) & 1
	switch ev.Type {
	case EventNPCSpawned:
		s.Spawned++
	case EventNPCEliminated:
		s.Eliminated[d]++
	case EventNPCExited:
		s.Exited[d]++
	}
}

// Result is what persistence receives at game over
type Result struct {
	LevelID string
	Score   int
	Elapsed time.Duration

	Spawned           int
	DisruptiveHit     int
	CompliantHit      int
	CompliantExited   int
	DisruptiveEscaped int
}
