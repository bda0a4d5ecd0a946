package engine

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/level"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// recordingSystem logs its name into a shared order slice
type recordingSystem struct {
	name     string
	priority int
	order    *[]string
	inits    int
}

func (s *recordingSystem) Name() string  { return s.name }
func (s *recordingSystem) Priority() int { return s.priority }
func (s *recordingSystem) Init()         { s.inits++ }
func (s *recordingSystem) Update()       { *s.order = append(*s.order, s.name) }

func TestSystemsRunInPriorityOrder(t *testing.T) {
	var order []string
	w := NewWorld(zerolog.Nop(), 1)
	cull := &recordingSystem{name: "cull", priority: parameter.PriorityCull, order: &order}
	w.AddSystem(cull)
	w.AddSystem(&recordingSystem{name: "npc", priority: parameter.PriorityNPC, order: &order})
	w.AddSystem(&recordingSystem{name: "escalator", priority: parameter.PriorityEscalator, order: &order})

	g := NewGameContext(w, 0)
	g.Start(level.ByID("shinjuku"), nil)
	assert.Equal(t, 1, cull.inits)

	g.Step(parameter.SimulationStep)
	assert.Equal(t, []string{"escalator", "npc", "cull"}, order)
}

func TestUseAttackScoresHits(t *testing.T) {
	w := NewWorld(zerolog.Nop(), 1)
	g := NewGameContext(w, 0)
	g.Start(level.ByID("shinjuku"), attack.NewBodySlam())

	var seen []EventType
	g.Subscribe(func(ev Event) { seen = append(seen, ev.Type) })

	w.RunSafe(func() {
		w.CreateNPC(component.Disruptive, vmath.V(100, 500))
		w.CreateNPC(component.Disruptive, vmath.V(110, 500))
		w.CreateNPC(component.Compliant, vmath.V(100, 520))
		w.CreateNPC(component.Compliant, vmath.V(400, 500))
	})

	hits := g.UseAttack(100, 500)
	assert.Len(t, hits, 3)
	assert.Equal(t, 2*parameter.ScoreDisruptiveHit+parameter.ScoreCompliantHit, g.Result().Score)
	assert.Contains(t, seen, EventAttackUsed)

	// Cooldown: second use is a no-op
	assert.Empty(t, g.UseAttack(400, 500))
	assert.Equal(t, 15, g.Result().Score)

	snap := g.Snapshot()
	assert.Len(t, snap.NPCs, 1)
	assert.False(t, snap.Attack.Ready)
	assert.Len(t, snap.Effects, 1)
}

func TestStepEndsAtDuration(t *testing.T) {
	w := NewWorld(zerolog.Nop(), 1)
	g := NewGameContext(w, 100*time.Millisecond)
	l := level.ByID("shinjuku")
	l.Duration = time.Second
	g.Start(l, attack.NewLaser())

	steps := 0
	for g.Step(100 * time.Millisecond) {
		steps++
		require.Less(t, steps, 100)
	}
	assert.Equal(t, 9, steps)
	assert.False(t, g.Running())
	assert.True(t, g.Snapshot().Over)
	assert.Nil(t, g.UseAttack(0, 0), "attacks are ignored after game over")

	r := g.Stop()
	assert.Equal(t, "shinjuku", r.LevelID)
	assert.Equal(t, time.Second, r.Elapsed)
}

func TestScoreFor(t *testing.T) {
	cases := []struct {
		ev   Event
		want int
	}{
		{Event{Type: EventNPCEliminated, Disposition: component.Disruptive}, 10},
		{Event{Type: EventNPCEliminated, Disposition: component.Compliant}, -5},
		{Event{Type: EventNPCExited, Disposition: component.Compliant}, 5},
		{Event{Type: EventNPCExited, Disposition: component.Disruptive}, -10},
		{Event{Type: EventNPCQueued}, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ScoreFor(c.ev), c.ev.Type.String())
	}
}
