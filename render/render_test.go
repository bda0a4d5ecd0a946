package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// newScreen gives 0.1 cells per level unit on a 600x800 level
func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 81)
	t.Cleanup(screen.Fini)
	return screen
}

func cellAt(screen tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := screen.GetContent(x, y)
	return r
}

func rowText(screen tcell.SimulationScreen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(cellAt(screen, x, y))
	}
	return b.String()
}

func snapshot() engine.Snapshot {
	return engine.Snapshot{
		LevelID:   "shinjuku",
		LevelName: "Shinjuku",
		Width:     600,
		Height:    800,
		Score:     35,
		Remaining: 95 * time.Second,
		Tracks:    []float64{200},
		NPCs: []engine.NPCView{
			{ID: 1, Disposition: component.Compliant, State: component.StateWalking, Position: vmath.V(305, 405), Opacity: 1},
			{ID: 2, Disposition: component.Disruptive, State: component.StateWalking, Position: vmath.V(105, 605), Opacity: 1},
			{ID: 3, Disposition: component.Compliant, State: component.StateExiting, Position: vmath.V(505, 605), Opacity: 0.2},
		},
		Escalators: []engine.EscalatorView{{Position: vmath.V(205, 55), Width: 40, QueueLen: 3, Capacity: 1}},
		Attack:     engine.AttackView{Name: "BodySlam", Ready: true, Cooldown: 1},
	}
}

func TestCanvasRoundTrip(t *testing.T) {
	screen := newScreen(t)
	c := NewCanvas(screen)
	c.Fit(600, 800)

	x, y, ok := c.ToCell(vmath.V(305, 405))
	require.True(t, ok)
	assert.Equal(t, 30, x)
	assert.Equal(t, 41, y, "one HUD row above the field")

	p, ok := c.ToWorld(30, 41)
	require.True(t, ok)
	assert.InDelta(t, 305, p.X, 1e-9)
	assert.InDelta(t, 405, p.Y, 1e-9)

	_, ok = c.ToWorld(10, 0)
	assert.False(t, ok, "HUD row is not part of the level")
	_, _, ok = c.ToCell(vmath.V(-1, 10))
	assert.False(t, ok)
	_, _, ok = c.ToCell(vmath.V(600, 10))
	assert.False(t, ok)
}

func TestRenderDrawsSnapshot(t *testing.T) {
	screen := newScreen(t)
	o := NewDefaultOrchestrator(screen)
	s := snapshot()
	o.Render(&s)

	assert.Equal(t, GlyphCompliant, cellAt(screen, 30, 41))
	assert.Equal(t, GlyphDisruptive, cellAt(screen, 10, 61))
	assert.Equal(t, GlyphExiting, cellAt(screen, 50, 61))
	assert.Equal(t, GlyphTrack, cellAt(screen, 0, 21))
	assert.Equal(t, GlyphTrack, cellAt(screen, 59, 21))
	assert.Equal(t, GlyphEscalator, cellAt(screen, 20, 6))
	assert.Equal(t, '3', cellAt(screen, 23, 6), "queue length beside the escalator")

	hud := rowText(screen, 0)
	assert.Contains(t, hud, "Shinjuku")
	assert.Contains(t, hud, "SCORE 35")
	assert.Contains(t, hud, "1:35")
	assert.Contains(t, hud, "BodySlam [##########]")
}

func TestRenderEffectsAndGameOver(t *testing.T) {
	screen := newScreen(t)
	o := NewDefaultOrchestrator(screen)
	s := snapshot()
	s.NPCs = nil
	s.Over = true
	s.Effects = []attack.Effect{
		{Kind: attack.KindBomb, Origin: vmath.V(105, 305), Radius: 80, Armed: true, Duration: time.Second},
		{Kind: attack.KindBeam, Origin: vmath.V(405, 705), Direction: vmath.V(0, -1), Width: 20, Length: 300, Duration: time.Second},
	}
	o.Render(&s)

	assert.Equal(t, GlyphBombArmed, cellAt(screen, 10, 31))
	for y := 41; y <= 71; y++ {
		assert.Equal(t, GlyphBeam, cellAt(screen, 40, y), "beam row %d", y)
	}
	assert.Contains(t, rowText(screen, 40), "GAME OVER")
}

func TestLayerOrderIsStable(t *testing.T) {
	screen := newScreen(t)
	o := NewOrchestrator(screen)
	var order []string
	o.Register(LayerFunc(func(*engine.Snapshot, *Canvas) { order = append(order, "hud") }), PriorityHUD)
	o.Register(LayerFunc(func(*engine.Snapshot, *Canvas) { order = append(order, "npc-a") }), PriorityNPCs)
	o.Register(LayerFunc(func(*engine.Snapshot, *Canvas) { order = append(order, "tracks") }), PriorityTracks)
	o.Register(LayerFunc(func(*engine.Snapshot, *Canvas) { order = append(order, "npc-b") }), PriorityNPCs)

	s := snapshot()
	o.Render(&s)
	assert.Equal(t, []string{"tracks", "npc-a", "npc-b", "hud"}, order)
}

func TestInputTranslation(t *testing.T) {
	screen := newScreen(t)
	o := NewDefaultOrchestrator(screen)
	s := snapshot()
	o.Render(&s)
	in := NewInput(o.Canvas())

	a := in.Translate(tcell.NewEventMouse(30, 41, tcell.Button1, tcell.ModNone))
	require.Equal(t, ActionAttack, a.Kind)
	assert.InDelta(t, 305, a.Target.X, 1e-9)
	assert.InDelta(t, 405, a.Target.Y, 1e-9)

	// Held button and motion do not repeat
	a = in.Translate(tcell.NewEventMouse(31, 41, tcell.Button1, tcell.ModNone))
	assert.Equal(t, ActionNone, a.Kind)
	in.Translate(tcell.NewEventMouse(31, 41, tcell.ButtonNone, tcell.ModNone))
	a = in.Translate(tcell.NewEventMouse(31, 41, tcell.Button1, tcell.ModNone))
	assert.Equal(t, ActionAttack, a.Kind)
	in.Translate(tcell.NewEventMouse(31, 41, tcell.ButtonNone, tcell.ModNone))

	a = in.Translate(tcell.NewEventMouse(5, 0, tcell.Button1, tcell.ModNone))
	assert.Equal(t, ActionNone, a.Kind, "clicks on the HUD are ignored")

	assert.Equal(t, ActionQuit, in.Translate(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)).Kind)
	assert.Equal(t, ActionQuit, in.Translate(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)).Kind)
	assert.Equal(t, ActionNone, in.Translate(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)).Kind)
	assert.Equal(t, ActionResize, in.Translate(tcell.NewEventResize(80, 24)).Kind)
}

func TestCooldownBar(t *testing.T) {
	assert.Equal(t, "[#####-----]", CooldownBar(0.5, 10))
	assert.Equal(t, "[----------]", CooldownBar(-1, 10))
	assert.Equal(t, "[####]", CooldownBar(2, 4))
}
