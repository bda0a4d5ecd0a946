package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/cutin-killer/engine"
)

// Priority orders layers, lower draws first
type Priority int

const (
	PriorityTracks     Priority = 100
	PriorityEscalators Priority = 150
	PriorityTrains     Priority = 200
	PriorityNPCs       Priority = 300
	PriorityEffects    Priority = 350
	PriorityHUD        Priority = 400
)

// Layer draws one aspect of a snapshot
type Layer interface {
	Draw(s *engine.Snapshot, c *Canvas)
}

// LayerFunc adapts a function to Layer
type LayerFunc func(s *engine.Snapshot, c *Canvas)

func (f LayerFunc) Draw(s *engine.Snapshot, c *Canvas) { f(s, c) }

type layerEntry struct {
	layer    Layer
	priority Priority
	index    int // registration order for stable sort
}

// Orchestrator runs registered layers over one screen per frame
type Orchestrator struct {
	canvas   *Canvas
	layers   []layerEntry
	regCount int
}

// NewOrchestrator creates an orchestrator drawing onto screen
func NewOrchestrator(screen tcell.Screen) *Orchestrator {
	return &Orchestrator{
		canvas: NewCanvas(screen),
		layers: make([]layerEntry, 0, 8),
	}
}

// NewDefaultOrchestrator registers the standard platform layers
func NewDefaultOrchestrator(screen tcell.Screen) *Orchestrator {
	o := NewOrchestrator(screen)
	o.Register(LayerFunc(drawTracks), PriorityTracks)
	o.Register(LayerFunc(drawEscalators), PriorityEscalators)
	o.Register(LayerFunc(drawTrains), PriorityTrains)
	o.Register(LayerFunc(drawNPCs), PriorityNPCs)
	o.Register(LayerFunc(drawEffects), PriorityEffects)
	o.Register(LayerFunc(drawHUD), PriorityHUD)
	return o
}

// Register adds a layer at priority, insertion sort keeps order stable
func (o *Orchestrator) Register(l Layer, priority Priority) {
	entry := layerEntry{layer: l, priority: priority, index: o.regCount}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}
	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Canvas exposes the viewport for input translation
func (o *Orchestrator) Canvas() *Canvas {
	return o.canvas
}

// Resize refits the viewport and syncs the terminal
func (o *Orchestrator) Resize() {
	o.canvas.screen.Sync()
}

// Render clears, draws every layer and shows the frame
func (o *Orchestrator) Render(s *engine.Snapshot) {
	o.canvas.begin(s.Width, s.Height)
	for _, e := range o.layers {
		e.layer.Draw(s, o.canvas)
	}
	o.canvas.screen.Show()
}
