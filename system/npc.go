package system

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/physics"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// NPCSystem drives every NPC through Walking → Queuing → Exiting
// Steering, separation and track avoidance integrate walkers; queue admission goes through the world
type NPCSystem struct {
	world *engine.World
	crowd Crowd

	statFaults  *atomic.Int64
	statCutIns  *atomic.Int64
	statWaiting *atomic.Int64
}

// NewNPCSystem creates the NPC behavior system
func NewNPCSystem(world *engine.World) engine.System {
	return &NPCSystem{
		world:       world,
		statFaults:  world.Status.Ints.Get("npc.numeric_faults"),
		statCutIns:  world.Status.Ints.Get("npc.cut_ins"),
		statWaiting: world.Status.Ints.Get("npc.queuing"),
	}
}

func (s *NPCSystem) Name() string  { return "npc" }
func (s *NPCSystem) Priority() int { return parameter.PriorityNPC }

func (s *NPCSystem) Init() {
	s.statFaults.Store(0)
	s.statCutIns.Store(0)
	s.statWaiting.Store(0)
}

func (s *NPCSystem) Update() {
	npcs := s.world.NPCs()
	push := s.crowd.Compute(npcs)

	waiting := 0
	for i, n := range npcs {
		// Deactivation earlier in the tick is observed here
		if !n.Active {
			continue
		}
		switch n.State {
		case component.StateWalking:
			s.walk(n, push[i])
		case component.StateQueuing:
			s.wait(n)
			waiting++
		case component.StateExiting:
			s.exit(n)
		}
	}
	// Members behind an NPC that left this tick see their new index before the tick ends
	s.world.SyncQueues()
	s.statWaiting.Store(int64(waiting))
}

// ===== Walking =====

func (s *NPCSystem) walk(n *component.NPC, push vmath.Vec2) {
	w := s.world
	e, ok := s.target(n)
	if !ok {
		return
	}

	aim := s.aim(n, e)
	pos := n.Position()
	dist := vmath.Distance(pos, aim)
	if dist < parameter.ArrivalDistance {
		if w.Enqueue(n) != component.NoRank {
			w.PushEvent(engine.EventNPCQueued, n)
		}
		return
	}

	profile := n.Profile()
	force := n.Body.Seek(aim, dist)
	force = force.Add(physics.SeparationForce(&n.Body, push, profile.Separation*parameter.SeparationStrength))
	for _, c := range w.Corridors() {
		force = force.Add(c.Force(pos, aim, parameter.TrackRepulsion))
	}
	n.Body.ApplyForce(force)

	if !n.Body.Integrate(w.Time.Seconds) {
		s.fault(n)
	}

	if n.Disposition == component.Disruptive {
		n.CutInTimer += w.Time.DeltaTime
		if n.CutInTimer >= parameter.CutInInterval {
			n.CutInTimer = 0
			s.cutIn(n)
		}
	}
}

// target resolves the NPC's escalator, choosing the nearest on first use
// First escalator wins on equal distance
func (s *NPCSystem) target(n *component.NPC) (*component.Escalator, bool) {
	w := s.world
	if n.TargetLost {
		return nil, false
	}
	if n.Target == component.NoEscalator {
		best, bestDist := component.NoEscalator, math.Inf(1)
		for i, e := range w.Escalators() {
			if d := vmath.DistanceSq(n.Position(), e.Position); d < bestDist {
				best, bestDist = component.EscalatorHandle(i), d
			}
		}
		if best == component.NoEscalator {
			return nil, false
		}
		n.Target = best
		n.InvalidateSlot()
	}

	e, ok := w.Escalator(n.Target)
	if !ok {
		s.lose(n)
		return nil, false
	}
	return e, true
}

// aim returns the point the walker steers to
// Disruptive NPCs head straight for the escalator; compliant ones aim at a cached line slot
func (s *NPCSystem) aim(n *component.NPC, e *component.Escalator) vmath.Vec2 {
	if n.Disposition == component.Disruptive {
		return e.Position
	}
	n.SlotTimer += s.world.Time.DeltaTime
	if !n.SlotValid || n.SlotTimer >= parameter.QueueSlotRefresh {
		n.Slot = QueueSlot(e, QueueRank(s.world.NPCs(), n, e))
		n.SlotValid = true
		n.SlotTimer = 0
	}
	return n.Slot
}

// cutIn shoves every compliant NPC within reach outward, queued ones included
func (s *NPCSystem) cutIn(n *component.NPC) {
	origin := n.Position()
	shoved := 0
	for _, o := range s.world.NPCs() {
		if o == n || !o.Active || o.Disposition != component.Compliant || o.State == component.StateExiting {
			continue
		}
		delta := o.Position().Sub(origin)
		dist := delta.Len()
		if dist >= parameter.CutInRadius || dist <= vmath.Epsilon {
			continue
		}
		dir := delta.Scale(1 / dist)
		o.Body.Shift(dir.Scale(parameter.CutInShift))
		o.Body.ApplyImpulse(dir.Scale(parameter.CutInImpulse))
		shoved++
	}
	if shoved > 0 {
		s.statCutIns.Add(1)
	}
}

// ===== Queuing =====

func (s *NPCSystem) wait(n *component.NPC) {
	w := s.world
	e, ok := w.Escalator(n.Target)
	if !ok {
		s.lose(n)
		return
	}

	// Ranks shift when earlier members leave; re-read rather than trust the cached value
	if w.SyncRank(n) == component.NoRank {
		w.Log.Debug().Uint64("npc", uint64(n.ID)).Msg("queued npc missing from queue, re-enqueueing")
		if w.Enqueue(n) == component.NoRank {
			return
		}
	}

	n.WaitTime += w.Time.DeltaTime
	n.Body.SetVelocity(n.Body.Vel.Scale(parameter.QueueVelocityDecay))

	if n.Disposition == component.Compliant {
		s.closeGap(n, e)
	}
	if !n.Body.Integrate(w.Time.Seconds) {
		s.fault(n)
	}

	// One admission check per NPC per tick; the grant resets the shared timer for everyone behind
	if e.CanExit(n.ID) {
		w.Dequeue(n)
		e.Grant()
		n.State = component.StateExiting
		w.PushEvent(engine.EventNPCExiting, n)
	}
}

// closeGap keeps the line tight by walking toward the NPC ahead at a fixed speed
func (s *NPCSystem) closeGap(n *component.NPC, e *component.Escalator) {
	w := s.world
	sec := w.Time.Seconds
	pos := n.Position()

	if n.QueueRank == 0 {
		n.Body.MoveTowards(QueueSlot(e, 0), parameter.QueueClosingSpeed, sec)
		return
	}

	aheadID, ok := e.At(n.QueueRank - 1)
	if !ok {
		return
	}
	ahead, ok := w.NPC(aheadID)
	if !ok || !ahead.Active {
		return
	}

	delta := pos.Sub(ahead.Position())
	gap := delta.Len()
	if gap <= parameter.QueueSpacing*parameter.QueueGapFactor {
		return
	}
	// Stop one spacing behind, along the line we approach from
	behind := delta.Normalize()
	if behind.IsZero() {
		behind = e.Entrance.Direction()
	}
	n.Body.MoveTowards(ahead.Position().Add(behind.Scale(parameter.QueueSpacing)), parameter.QueueClosingSpeed, sec)
}

// ===== Exiting =====

func (s *NPCSystem) exit(n *component.NPC) {
	w := s.world
	n.Opacity -= parameter.ExitFadeRate * w.Time.Seconds
	if e, ok := w.Escalator(n.Target); ok {
		n.Body.MoveTowards(e.Position, parameter.ExitDriftSpeed, w.Time.Seconds)
	}
	if n.Opacity <= 0 {
		n.Opacity = 0
		w.PushEvent(engine.EventNPCExited, n)
		w.Deactivate(n)
	}
}

// ===== Failure handling =====

// lose latches target loss; the NPC idles from then on
func (s *NPCSystem) lose(n *component.NPC) {
	if n.TargetLost {
		return
	}
	n.TargetLost = true
	n.QueueRank = component.NoRank
	n.Body.SetVelocity(vmath.Vec2{})
	s.world.Log.Debug().
		Uint64("npc", uint64(n.ID)).
		Int("target", int(n.Target)).
		Str("state", n.State.String()).
		Msg("target escalator lost")
}

func (s *NPCSystem) fault(n *component.NPC) {
	s.statFaults.Add(1)
	s.world.PushEvent(engine.EventNumericFault, n)
	s.world.Log.Debug().
		Uint64("npc", uint64(n.ID)).
		Float64("x", n.Body.Pos.X).
		Float64("y", n.Body.Pos.Y).
		Msg("discarded non-finite step")
}
