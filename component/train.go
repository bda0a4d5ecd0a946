package component

import (
	"time"

	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// TrainPhase is the train lifecycle stage
type TrainPhase uint8

const (
	TrainArriving TrainPhase = iota
	TrainStopped
	TrainDeparting
	TrainGone
)

func (p TrainPhase) String() string {
	switch p {
	case TrainArriving:
		return "arriving"
	case TrainStopped:
		return "stopped"
	case TrainDeparting:
		return "departing"
	default:
		return "gone"
	}
}

// Train slides in above its stop line, unloads once, then leaves
type Train struct {
	StopLine vmath.Vec2 // Final position while stopped
	Position vmath.Vec2
	Phase    TrainPhase
	Timer    time.Duration
	Unloaded bool
}

// NewTrain creates an arriving train headed for stop
func NewTrain(stop vmath.Vec2) *Train {
	return &Train{
		StopLine: stop,
		Position: stop.Sub(vmath.V(0, parameter.TrainApproachOffset)),
		Phase:    TrainArriving,
	}
}

// Active reports whether the train is still on screen
func (t *Train) Active() bool {
	return t.Phase != TrainGone
}

// Start returns the off-screen approach position
func (t *Train) Start() vmath.Vec2 {
	return t.StopLine.Sub(vmath.V(0, parameter.TrainApproachOffset))
}

// Advance steps the lifecycle, returns true on the tick the train stops and unloads
func (t *Train) Advance(dt time.Duration) bool {
	if t.Phase == TrainGone {
		return false
	}
	t.Timer += dt

	switch t.Phase {
	case TrainArriving:
		t.Position = t.Start().Lerp(t.StopLine, progress(t.Timer, parameter.TrainArriveDuration))
		if t.Timer >= parameter.TrainArriveDuration {
			t.Phase = TrainStopped
			t.Timer = 0
			t.Position = t.StopLine
			if !t.Unloaded {
				t.Unloaded = true
				return true
			}
		}
	case TrainStopped:
		if t.Timer >= parameter.TrainStopDuration {
			t.Phase = TrainDeparting
			t.Timer = 0
		}
	case TrainDeparting:
		t.Position = t.StopLine.Lerp(t.Start(), progress(t.Timer, parameter.TrainDepartDuration))
		if t.Timer >= parameter.TrainDepartDuration {
			t.Phase = TrainGone
		}
	}
	return false
}

func progress(elapsed, total time.Duration) float64 {
	if total <= 0 {
		return 1
	}
	return vmath.Clamp(float64(elapsed)/float64(total), 0, 1)
}
