package system

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/level"
	"github.com/lixenwraith/cutin-killer/vmath"
)

const testStep = 50 * time.Millisecond

// platformLevel has one escalator and no tracks
func platformLevel(capacity int, interval time.Duration) level.Level {
	return level.Level{
		ID:     "test",
		Name:   "test",
		Width:  600,
		Height: 800,
		Escalators: []level.EscalatorSpec{{
			Position:        vmath.V(200, 50),
			Capacity:        capacity,
			ReleaseInterval: interval,
			Entrance:        component.EntranceBottom,
		}},
		TrainInterval: time.Hour,
		Duration:      time.Hour,
	}
}

type harness struct {
	t      *testing.T
	world  *engine.World
	game   *engine.GameContext
	events []engine.Event
}

// newHarness runs only the given systems on l
func newHarness(t *testing.T, l level.Level, atk attack.Attack, ctors ...func(*engine.World) engine.System) *harness {
	t.Helper()
	w := engine.NewWorld(zerolog.Nop(), 7)
	for _, ctor := range ctors {
		w.AddSystem(ctor(w))
	}
	g := engine.NewGameContext(w, testStep)
	h := &harness{t: t, world: w, game: g}
	g.Subscribe(func(ev engine.Event) { h.events = append(h.events, ev) })
	g.Start(l, atk)
	return h
}

func (h *harness) spawn(d component.Disposition, x, y float64) *component.NPC {
	var n *component.NPC
	h.world.RunSafe(func() { n = h.world.CreateNPC(d, vmath.V(x, y)) })
	return n
}

// enqueue places n in the queue of escalator 0 directly
func (h *harness) enqueue(n *component.NPC) {
	h.world.RunSafe(func() {
		n.Target = 0
		require.NotEqual(h.t, component.NoRank, h.world.Enqueue(n))
	})
}

func (h *harness) run(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += testStep {
		h.game.Step(testStep)
	}
}

func (h *harness) ids(t engine.EventType) []component.EntityID {
	var out []component.EntityID
	for _, ev := range h.events {
		if ev.Type == t {
			out = append(out, ev.NPC)
		}
	}
	return out
}

// assertQueueInvariant checks rank == queue index for every queuing NPC and membership the other way
func assertQueueInvariant(t *testing.T, w *engine.World) {
	t.Helper()
	for _, n := range w.NPCs() {
		if !n.Active || n.State != component.StateQueuing || n.TargetLost {
			continue
		}
		e, ok := w.Escalator(n.Target)
		require.True(t, ok)
		require.Equal(t, e.IndexOf(n.ID), n.QueueRank, "npc %d", n.ID)
	}
	for h, e := range w.Escalators() {
		for _, id := range e.Queue() {
			n, ok := w.NPC(id)
			require.True(t, ok, "queued id %d must resolve", id)
			require.True(t, n.Active)
			require.Equal(t, component.StateQueuing, n.State)
			require.Equal(t, component.EscalatorHandle(h), n.Target)
		}
	}
}
