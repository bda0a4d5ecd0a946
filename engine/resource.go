package engine

import "time"

// TimeResource wraps time data for systems
// Updated by GameContext at the start of each step
type TimeResource struct {
	// DeltaTime is the clamped step being simulated
	DeltaTime time.Duration

	// Seconds is DeltaTime in seconds for force integration
	Seconds float64

	// Elapsed is simulated time since level start
	Elapsed time.Duration

	// FrameNumber counts simulated steps
	FrameNumber int64
}

// Advance modifies TimeResource fields in-place (zero allocation)
func (tr *TimeResource) Advance(dt time.Duration) {
	tr.DeltaTime = dt
	tr.Seconds = dt.Seconds()
	tr.Elapsed += dt
	tr.FrameNumber++
}

// Reset zeroes the clock for a new level
func (tr *TimeResource) Reset() {
	*tr = TimeResource{}
}
