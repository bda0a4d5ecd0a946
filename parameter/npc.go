package parameter

import "time"

// NPC body
const (
	NPCWidth = 15.0

	CompliantSpeed     = 30.0
	DisruptiveSpeed    = 50.0
	CompliantMass      = 1.0
	DisruptiveMass     = 1.4
	CompliantMaxForce  = 120.0
	DisruptiveMaxForce = 200.0

	// Separation multiplier per disposition, disruptive NPCs push through crowds
	CompliantSeparation  = 1.0
	DisruptiveSeparation = 0.5
)

// Steering
const (
	// PersonalSpaceMultiplier scales NPCWidth into the separation radius
	PersonalSpaceMultiplier = 1.5

	// SeparationStrength scales the Reynolds separation steering force
	SeparationStrength = 1.5

	// SteerGain multiplies (desired - velocity) so walkers reach cruise speed within a second
	SteerGain = 6.0

	// ArrivalRadius is where seek begins decelerating linearly
	ArrivalRadius = 20.0

	// ArrivalDistance is where an NPC is considered to have reached its aim point
	ArrivalDistance = 5.0

	// WalkDamping is the velocity retention per reference step on the platform floor
	WalkDamping = 0.99

	// DampingReferenceRate is the step rate damping factors are expressed at
	DampingReferenceRate = 60.0
)

// Queue formation and gap closing
const (
	// QueueSpacing is the distance between consecutive queue slots
	QueueSpacing = 25.0

	// QueueSlotRefresh bounds how often a walking compliant NPC recomputes its slot
	QueueSlotRefresh = 500 * time.Millisecond

	// QueueGapFactor multiplies QueueSpacing to get the gap that triggers closing
	QueueGapFactor = 1.2

	// QueueClosingSpeed is the fixed speed of gap-closing moves
	QueueClosingSpeed = 20.0

	// QueueVelocityDecay is the per-tick residual velocity retention while queuing
	QueueVelocityDecay = 0.8
)

// Disruptive cut-in
const (
	CutInInterval = 500 * time.Millisecond
	CutInRadius   = 30.0
	CutInShift    = 5.0
	CutInImpulse  = 20.0
)

// Exit fade
const (
	// ExitFadeRate is opacity lost per second
	ExitFadeRate = 1.0

	// ExitDriftSpeed moves an exiting NPC onto the escalator
	ExitDriftSpeed = 40.0
)
