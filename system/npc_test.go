package system

import (
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/level"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

func TestCutInShovesCompliantNeighbors(t *testing.T) {
	h := newHarness(t, platformLevel(1, time.Hour), nil)
	bad := h.spawn(component.Disruptive, 300, 400)
	near := h.spawn(component.Compliant, 310, 400)
	far := h.spawn(component.Compliant, 340, 400)
	rival := h.spawn(component.Disruptive, 300, 410)
	queued := h.spawn(component.Compliant, 300, 380)
	h.enqueue(queued)

	s := NewNPCSystem(h.world).(*NPCSystem)
	s.Init()
	s.cutIn(bad)

	assert.InDelta(t, 315, near.Body.Pos.X, 1e-9)
	assert.InDelta(t, 400, near.Body.Pos.Y, 1e-9)
	assert.InDelta(t, parameter.CutInImpulse/parameter.CompliantMass, near.Body.Vel.X, 1e-9)

	// Queued NPCs are shoved too
	assert.InDelta(t, 375, queued.Body.Pos.Y, 1e-9)

	assert.Equal(t, vmath.V(340, 400), far.Body.Pos)
	assert.Equal(t, vmath.V(300, 410), rival.Body.Pos)
	assert.Equal(t, vmath.V(300, 400), bad.Body.Pos)
	assert.Equal(t, int64(1), h.world.Status.Ints.Get("npc.cut_ins").Load())
}

func TestCutInSkipsExiting(t *testing.T) {
	h := newHarness(t, platformLevel(1, time.Hour), nil)
	bad := h.spawn(component.Disruptive, 300, 400)
	leaving := h.spawn(component.Compliant, 310, 400)
	leaving.State = component.StateExiting

	s := NewNPCSystem(h.world).(*NPCSystem)
	s.Init()
	s.cutIn(bad)

	assert.Equal(t, vmath.V(310, 400), leaving.Body.Pos)
	assert.Zero(t, h.world.Status.Ints.Get("npc.cut_ins").Load())
}

func TestCrowdPushIsSymmetric(t *testing.T) {
	a := component.NewNPC(1, component.Compliant, vmath.V(100, 100))
	b := component.NewNPC(2, component.Compliant, vmath.V(110, 100))
	q := component.NewNPC(3, component.Compliant, vmath.V(105, 100))
	q.State = component.StateQueuing

	var c Crowd
	push := c.Compute([]*component.NPC{a, b, q})
	require.Len(t, push, 3)

	w := 1 - 10/a.PersonalSpace()
	assert.InDelta(t, -w, push[0].X, 1e-9)
	assert.InDelta(t, w, push[1].X, 1e-9)
	assert.Zero(t, push[0].Y)
	assert.Equal(t, vmath.Vec2{}, push[2], "non-walkers get no push")
}

func TestCrowdCoincidentFallback(t *testing.T) {
	a := component.NewNPC(1, component.Compliant, vmath.V(100, 100))
	b := component.NewNPC(2, component.Disruptive, vmath.V(100, 100))

	var c Crowd
	push := c.Compute([]*component.NPC{a, b})
	assert.Equal(t, vmath.V(-1, 0), push[0])
	assert.Equal(t, vmath.V(1, 0), push[1])

	// Buffer is reused and cleared
	b.Body.Pos = vmath.V(500, 500)
	push = c.Compute([]*component.NPC{a, b})
	assert.Equal(t, vmath.Vec2{}, push[0])
	assert.Equal(t, vmath.Vec2{}, push[1])
}

func TestCollisionSeparatesOverlap(t *testing.T) {
	h := newHarness(t, platformLevel(1, time.Hour), nil, NewCollisionSystem)
	a := h.spawn(component.Compliant, 300, 400)
	b := h.spawn(component.Compliant, 305, 400)
	ghost := h.spawn(component.Compliant, 300, 400)
	ghost.State = component.StateExiting

	h.run(testStep)

	assert.InDelta(t, parameter.MinSeparation, vmath.Distance(a.Position(), b.Position()), 1e-9)
	assert.Equal(t, vmath.V(300, 400), ghost.Position(), "exiting NPCs are out of the crowd")
	assert.Equal(t, int64(1), h.world.Status.Ints.Get("npc.contacts").Load())
}

func TestNonFiniteStepIsDiscarded(t *testing.T) {
	h := newHarness(t, platformLevel(1, time.Hour), nil, NewNPCSystem)
	n := h.spawn(component.Compliant, 200, 400)
	h.world.RunSafe(func() { n.Body.Acc = vmath.V(math.Inf(1), 0) })

	h.run(testStep)

	assert.Equal(t, []component.EntityID{n.ID}, h.ids(engine.EventNumericFault))
	assert.Equal(t, vmath.V(200, 400), n.Position())
	assert.Equal(t, vmath.Vec2{}, n.Body.Vel)
	assert.True(t, n.Active)

	// Next step integrates normally
	h.run(testStep)
	assert.Less(t, n.Position().Y, 400.0)
	assert.Len(t, h.ids(engine.EventNumericFault), 1)
	assert.Equal(t, int64(1), h.world.Status.Ints.Get("npc.numeric_faults").Load())
}

func TestNearestEscalatorFirstWinsTies(t *testing.T) {
	l := platformLevel(1, time.Hour)
	l.Escalators[0].Position = vmath.V(100, 50)
	second := l.Escalators[0]
	second.Position = vmath.V(300, 50)
	l.Escalators = append(l.Escalators, second)

	h := newHarness(t, l, nil, NewNPCSystem)
	tie := h.spawn(component.Compliant, 200, 400)
	right := h.spawn(component.Disruptive, 290, 400)

	h.run(testStep)

	assert.Equal(t, component.EscalatorHandle(0), tie.Target)
	assert.Equal(t, component.EscalatorHandle(1), right.Target)
}

func TestTrainUnloadSpawnsPassengers(t *testing.T) {
	l := platformLevel(1, time.Hour)
	l.TrainStops = []vmath.Vec2{{X: 300, Y: 700}}
	h := newHarness(t, l, nil, NewTrainSystem)

	h.run(parameter.TrainArriveDuration - testStep)
	assert.Empty(t, h.ids(engine.EventNPCSpawned), "passengers wait for the train to stop")
	require.Len(t, h.world.Trains(), 1)

	h.run(2 * testStep)
	spawned := h.ids(engine.EventNPCSpawned)
	assert.GreaterOrEqual(t, len(spawned), parameter.PassengersMin)
	assert.LessOrEqual(t, len(spawned), parameter.PassengersMax)

	arrivals := 0
	for _, ev := range h.events {
		if ev.Type == engine.EventTrainArrived {
			arrivals++
		}
	}
	assert.Equal(t, 1, arrivals)

	for _, n := range h.world.NPCs() {
		assert.Equal(t, 700.0, n.Position().Y)
		assert.GreaterOrEqual(t, n.Position().X, 300-parameter.DoorJitter)
		assert.Less(t, n.Position().X, 300+parameter.DoorJitter)
		assert.Equal(t, component.StateWalking, n.State)
	}
	assert.Equal(t, len(spawned), h.game.Result().Spawned)

	// Train leaves after stopping and departing
	h.run(parameter.TrainStopDuration + parameter.TrainDepartDuration + testStep)
	assert.Empty(t, h.world.Trains())
	assert.Len(t, h.ids(engine.EventNPCSpawned), len(spawned), "one unload per train")
}

func TestBombResolvesThroughAttackSystem(t *testing.T) {
	h := newHarness(t, platformLevel(1, time.Hour), attack.NewBomb(), NewAttackSystem)
	bad := h.spawn(component.Disruptive, 300, 400)
	good := h.spawn(component.Compliant, 300, 500)

	hits := h.game.UseAttack(300, 400)
	assert.Empty(t, hits, "bomb resolves after its fuse")
	assert.True(t, bad.Active)
	require.Len(t, h.ids(engine.EventAttackUsed), 1)

	h.run(parameter.BombFuse + testStep)

	assert.False(t, bad.Active)
	assert.True(t, good.Active)
	assert.Equal(t, []component.EntityID{bad.ID}, h.ids(engine.EventNPCEliminated))

	var blast []vmath.Vec2
	for _, ev := range h.events {
		if ev.Type == engine.EventBombExploded {
			blast = append(blast, ev.Position)
		}
	}
	assert.Equal(t, []vmath.Vec2{vmath.V(300, 400)}, blast)
	assert.Equal(t, parameter.ScoreDisruptiveHit, h.game.State.Score)
}

func TestAttackReleasesQueueSlot(t *testing.T) {
	h := newHarness(t, platformLevel(1, time.Hour), attack.NewBodySlam(), NewEscalatorSystem, NewNPCSystem)
	head := h.spawn(component.Disruptive, 200, 75)
	tail := h.spawn(component.Compliant, 200, 100)
	h.enqueue(head)
	h.enqueue(tail)

	hits := h.game.UseAttack(200, 70)
	require.Len(t, hits, 2)
	h.world.RunSafe(func() { assertQueueInvariant(t, h.world) })

	e, _ := h.world.Escalator(0)
	assert.Zero(t, e.QueueLen())
	assert.Equal(t, parameter.ScoreDisruptiveHit+parameter.ScoreCompliantHit, h.game.State.Score)
}

func TestFullSimulationHoldsInvariants(t *testing.T) {
	w := engine.NewWorld(zerolog.Nop(), 11)
	Register(w)
	g := engine.NewGameContext(w, testStep)

	exited := 0
	g.Subscribe(func(ev engine.Event) {
		if ev.Type == engine.EventNPCExited {
			exited++
		}
	})
	g.Start(level.ByID("shibuya"), attack.NewBodySlam())

	steps := int(60 * time.Second / testStep)
	for i := 0; i < steps; i++ {
		require.True(t, g.Step(testStep))

		if i%100 == 99 {
			var target vmath.Vec2
			w.RunSafe(func() {
				for _, n := range w.NPCs() {
					if n.Active && n.Disposition == component.Disruptive {
						target = n.Position()
						break
					}
				}
			})
			g.UseAttack(target.X, target.Y)
		}

		w.RunSafe(func() {
			assertQueueInvariant(t, w)
			for _, n := range w.NPCs() {
				if !n.Active {
					continue
				}
				require.True(t, n.Position().IsFinite())
				require.True(t, n.Body.Vel.IsFinite())
			}
		})
	}

	r := g.Result()
	assert.Positive(t, r.Spawned)
	assert.Positive(t, exited)
	assert.Equal(t, exited, r.CompliantExited+r.DisruptiveEscaped)
}
