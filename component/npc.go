package component

import (
	"time"

	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/physics"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// EntityID is a stable NPC identity, assigned monotonically by the world
type EntityID uint64

// Disposition is the behavioral class of an NPC
type Disposition uint8

const (
	Compliant Disposition = iota
	Disruptive
)

func (d Disposition) String() string {
	switch d {
	case Compliant:
		return "compliant"
	case Disruptive:
		return "disruptive"
	default:
		return "unknown"
	}
}

// NPCState is the behavior state; transitions only move forward
type NPCState uint8

const (
	StateWalking NPCState = iota
	StateQueuing
	StateExiting
)

func (s NPCState) String() string {
	switch s {
	case StateWalking:
		return "walking"
	case StateQueuing:
		return "queuing"
	case StateExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

// EscalatorHandle is a non-owning index into the world escalator arena
type EscalatorHandle int

// NoEscalator marks an unassigned target
const NoEscalator EscalatorHandle = -1

// NoRank marks an NPC that holds no queue position
const NoRank = -1

// NPC is one simulated pedestrian
type NPC struct {
	ID          EntityID
	Disposition Disposition
	Body        physics.Body
	State       NPCState
	Active      bool

	Target    EscalatorHandle
	QueueRank int // Mirrors the target escalator queue index while Queuing, NoRank otherwise

	Slot       vmath.Vec2    // Cached queue-slot aim point
	SlotValid  bool          // False forces a slot recompute on the next walking tick
	SlotTimer  time.Duration // Time since the slot was last recomputed
	CutInTimer time.Duration
	WaitTime   time.Duration

	Opacity float64

	// TargetLost latches once the target handle stops resolving, the NPC idles from then on
	TargetLost bool
}

// NewNPC creates an active walking NPC at pos
func NewNPC(id EntityID, disposition Disposition, pos vmath.Vec2) *NPC {
	n := &NPC{
		ID:          id,
		Disposition: disposition,
		State:       StateWalking,
		Active:      true,
		Target:      NoEscalator,
		QueueRank:   NoRank,
		Opacity:     1,
	}
	n.Body = physics.NewBody(pos, n.Profile())
	return n
}

// Profile returns the steering tuning for the NPC disposition
func (n *NPC) Profile() *physics.SteeringProfile {
	if n.Disposition == Disruptive {
		return &physics.DisruptiveSteering
	}
	return &physics.CompliantSteering
}

// Position returns the body position
func (n *NPC) Position() vmath.Vec2 {
	return n.Body.Pos
}

// PersonalSpace is the separation radius, width scaled by the personal space multiplier
func (n *NPC) PersonalSpace() float64 {
	return parameter.NPCWidth * parameter.PersonalSpaceMultiplier
}

// InvalidateSlot drops the cached queue slot so it is recomputed on next read
func (n *NPC) InvalidateSlot() {
	n.SlotValid = false
	n.SlotTimer = 0
}

// IsWalking reports whether the NPC takes part in crowd separation
func (n *NPC) IsWalking() bool {
	return n.Active && n.State == StateWalking
}
