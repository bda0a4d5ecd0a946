package engine

// System is one stage of the fixed-order simulation tick
// Update reads the step from World.Time; Init resets per-level state
type System interface {
	Name() string
	Priority() int // Lower values run first
	Init()
	Update()
}
