package parameter

import "time"

// Game Loop & Engine Timing
const (
	// SimulationStep is the nominal fixed step (60 Hz)
	SimulationStep = time.Second / 60

	// MaxStepMultiple is how many nominal steps an elapsed frame may span before it is discretized to one nominal step
	MaxStepMultiple = 2

	// FrameUpdateInterval is the render cadence of the terminal front-end
	FrameUpdateInterval = 16 * time.Millisecond

	// EventQueueCapacity is the initial capacity of the per-tick event slice
	EventQueueCapacity = 64
)

// System priorities, lower runs first
const (
	PriorityEscalator = 10
	PriorityTrain     = 20
	PriorityNPC       = 30
	PriorityCollision = 40
	PriorityAttack    = 50
	PriorityCull      = 90
)
