package engine

import (
	"time"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// NPCView is the renderer-facing state of one NPC
type NPCView struct {
	ID          component.EntityID    `json:"id"`
	Disposition component.Disposition `json:"disposition"`
	State       component.NPCState    `json:"state"`
	Position    vmath.Vec2            `json:"pos"`
	Velocity    vmath.Vec2            `json:"vel"`
	Opacity     float64               `json:"opacity"`
	QueueRank   int                   `json:"rank"`
}

// EscalatorView is the renderer-facing state of one escalator
type EscalatorView struct {
	Position        vmath.Vec2         `json:"pos"`
	Width           float64            `json:"w"`
	Height          float64            `json:"h"`
	Entrance        component.Entrance `json:"entrance"`
	QueueLen        int                `json:"queue"`
	Capacity        int                `json:"capacity"`
	ReleaseFraction float64            `json:"release"`
}

// TrainView is the renderer-facing state of one train
type TrainView struct {
	Position vmath.Vec2           `json:"pos"`
	Phase    component.TrainPhase `json:"phase"`
}

// AttackView carries the HUD cooldown state
type AttackView struct {
	Name     string      `json:"name"`
	Kind     attack.Kind `json:"kind"`
	Ready    bool        `json:"ready"`
	Cooldown float64     `json:"cooldown"` // 1 = ready
}

// Snapshot is a read-only copy of the renderable state at one step
type Snapshot struct {
	LevelID    string          `json:"level"`
	LevelName  string          `json:"levelName"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Frame      int64           `json:"frame"`
	Score      int             `json:"score"`
	Remaining  time.Duration   `json:"remaining"`
	Over       bool            `json:"over"`
	Tracks     []float64       `json:"tracks"`
	NPCs       []NPCView       `json:"npcs"`
	Escalators []EscalatorView `json:"escalators"`
	Trains     []TrainView     `json:"trains"`
	Effects    []attack.Effect `json:"effects"`
	Attack     AttackView      `json:"attack"`
}

// Snapshot copies renderable state under the update lock
func (g *GameContext) Snapshot() Snapshot {
	var s Snapshot
	g.World.RunSafe(func() { s = g.snapshot() })
	return s
}

func (g *GameContext) snapshot() Snapshot {
	w := g.World
	s := Snapshot{
		LevelID:   w.Level.ID,
		LevelName: w.Level.Name,
		Width:     w.Level.Width,
		Height:    w.Level.Height,
		Frame:     w.Time.FrameNumber,
		Score:     g.State.Score,
		Remaining: g.State.Remaining(),
		Over:      g.State.Over,
	}

	for _, c := range w.Corridors() {
		s.Tracks = append(s.Tracks, c.CenterY)
	}

	s.NPCs = make([]NPCView, 0, len(w.NPCs()))
	for _, n := range w.NPCs() {
		if !n.Active {
			continue
		}
		s.NPCs = append(s.NPCs, NPCView{
			ID:          n.ID,
			Disposition: n.Disposition,
			State:       n.State,
			Position:    n.Position(),
			Velocity:    n.Body.Velocity(),
			Opacity:     n.Opacity,
			QueueRank:   n.QueueRank,
		})
	}

	s.Escalators = make([]EscalatorView, 0, len(w.Escalators()))
	for _, e := range w.Escalators() {
		s.Escalators = append(s.Escalators, EscalatorView{
			Position:        e.Position,
			Width:           e.Width,
			Height:          e.Height,
			Entrance:        e.Entrance,
			QueueLen:        e.QueueLen(),
			Capacity:        e.Capacity,
			ReleaseFraction: e.ReleaseFraction(),
		})
	}

	for _, t := range w.Trains() {
		if t.Active() {
			s.Trains = append(s.Trains, TrainView{Position: t.Position, Phase: t.Phase})
		}
	}

	if a := w.Attack; a != nil {
		s.Effects = a.Effects()
		s.Attack = AttackView{
			Name:     a.Name(),
			Kind:     a.Kind(),
			Ready:    a.Ready(),
			Cooldown: a.CooldownFraction(),
		}
	}
	return s
}
