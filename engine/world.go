package engine

import (
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/level"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/physics"
	"github.com/lixenwraith/cutin-killer/status"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// World is the arena owning every NPC, escalator and train of the running level
// NPCs refer to escalators by handle; escalators refer to NPCs by id, neither owns the other
type World struct {
	nextID component.EntityID
	npcs   []*component.NPC
	byID   map[component.EntityID]*component.NPC

	escalators []*component.Escalator
	trains     []*component.Train
	corridors  []physics.Corridor

	// Level is the immutable geometry of the loaded level
	Level level.Level

	// Attack is the player weapon for this run
	Attack attack.Attack

	Time   *TimeResource
	Events *EventQueue
	Status *status.Registry
	Log    zerolog.Logger
	Rand   *vmath.FastRand

	systems     []System
	updateMutex sync.Mutex
}

// NewWorld creates an empty world
func NewWorld(log zerolog.Logger, seed uint64) *World {
	return &World{
		nextID: 1,
		byID:   make(map[component.EntityID]*component.NPC),
		Time:   &TimeResource{},
		Events: NewEventQueue(parameter.EventQueueCapacity),
		Status: status.NewRegistry(),
		Log:    log,
		Rand:   vmath.NewFastRand(seed),
	}
}

// ===== Systems =====

// AddSystem registers a system keeping priority order, equal priorities keep insertion order
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
}

// Systems returns a copy of registered systems in run order
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// InitSystems resets per-level state of every system
func (w *World) InitSystems() {
	for _, s := range w.systems {
		s.Init()
	}
}

// UpdateLocked runs all systems in priority order, caller holds the update lock
func (w *World) UpdateLocked() {
	for _, s := range w.systems {
		s.Update()
	}
}

// RunSafe executes fn while holding the world's update lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// ===== Level =====

// LoadLevel clears the arena and builds escalators and corridors from l
func (w *World) LoadLevel(l level.Level) {
	w.Clear()
	w.Level = l.Clone()
	for _, spec := range w.Level.Escalators {
		w.AddEscalator(component.NewEscalator(spec.Position, spec.Capacity, spec.ReleaseInterval, spec.Entrance))
	}
	w.corridors = w.Level.Corridors()
}

// Clear removes every entity and resets the clock and event buffer
func (w *World) Clear() {
	w.nextID = 1
	for i := range w.npcs {
		w.npcs[i] = nil
	}
	w.npcs = w.npcs[:0]
	clear(w.byID)
	w.escalators = nil
	w.trains = nil
	w.corridors = nil
	w.Time.Reset()
	w.Events.Clear()
}

// Corridors returns the track-avoidance bands
func (w *World) Corridors() []physics.Corridor {
	return w.corridors
}

// ===== NPCs =====

// CreateNPC spawns an active walking NPC
func (w *World) CreateNPC(d component.Disposition, pos vmath.Vec2) *component.NPC {
	n := component.NewNPC(w.nextID, d, pos)
	w.nextID++
	w.npcs = append(w.npcs, n)
	w.byID[n.ID] = n
	return n
}

// NPC resolves an id, inactive NPCs resolve until compacted
func (w *World) NPC(id component.EntityID) (*component.NPC, bool) {
	n, ok := w.byID[id]
	return n, ok
}

// NPCs returns the live NPC slice in creation order, which is ascending id order
// Callers must not append or splice; removal happens in Compact
func (w *World) NPCs() []*component.NPC {
	return w.npcs
}

// ActiveCount returns the number of active NPCs
func (w *World) ActiveCount() int {
	count := 0
	for _, n := range w.npcs {
		if n.Active {
			count++
		}
	}
	return count
}

// Deactivate removes n from the simulation and releases its queue slot
// Idempotent: returns false if n was already inactive
func (w *World) Deactivate(n *component.NPC) bool {
	if n == nil || !n.Active {
		return false
	}
	n.Active = false
	w.release(n)
	n.Body.Detach()
	return true
}

// Compact drops inactive NPCs, returns how many were removed
// Runs at the end of a step so no system iterates while the slice shrinks
func (w *World) Compact() int {
	kept := w.npcs[:0]
	for _, n := range w.npcs {
		if n.Active {
			kept = append(kept, n)
			continue
		}
		delete(w.byID, n.ID)
	}
	removed := len(w.npcs) - len(kept)
	for i := len(kept); i < len(w.npcs); i++ {
		w.npcs[i] = nil
	}
	w.npcs = kept
	return removed
}

// ===== Escalators and queues =====

// AddEscalator appends to the arena and returns its handle
func (w *World) AddEscalator(e *component.Escalator) component.EscalatorHandle {
	w.escalators = append(w.escalators, e)
	return component.EscalatorHandle(len(w.escalators) - 1)
}

// Escalator resolves a handle
func (w *World) Escalator(h component.EscalatorHandle) (*component.Escalator, bool) {
	if h < 0 || int(h) >= len(w.escalators) {
		return nil, false
	}
	return w.escalators[h], true
}

// Escalators returns the arena in handle order
func (w *World) Escalators() []*component.Escalator {
	return w.escalators
}

// Enqueue appends n to its target queue, records the rank and moves it to Queuing
// Returns NoRank without state change if the target does not resolve
func (w *World) Enqueue(n *component.NPC) int {
	e, ok := w.Escalator(n.Target)
	if !ok || !n.Active {
		return component.NoRank
	}
	n.QueueRank = e.AddToQueue(n.ID)
	n.State = component.StateQueuing
	n.InvalidateSlot()
	return n.QueueRank
}

// Dequeue removes n from its target queue and clears its rank
func (w *World) Dequeue(n *component.NPC) bool {
	n.QueueRank = component.NoRank
	e, ok := w.Escalator(n.Target)
	if !ok {
		return false
	}
	return e.RemoveFromQueue(n.ID)
}

// SyncRank re-reads the queue index of a Queuing NPC after earlier members left
func (w *World) SyncRank(n *component.NPC) int {
	if n.State != component.StateQueuing {
		return n.QueueRank
	}
	e, ok := w.Escalator(n.Target)
	if !ok {
		n.QueueRank = component.NoRank
		return n.QueueRank
	}
	n.QueueRank = e.IndexOf(n.ID)
	return n.QueueRank
}

// SyncQueues re-reads the rank of every Queuing NPC
func (w *World) SyncQueues() {
	for _, n := range w.npcs {
		if n.Active && n.State == component.StateQueuing && !n.TargetLost {
			w.SyncRank(n)
		}
	}
}

func (w *World) release(n *component.NPC) {
	if e, ok := w.Escalator(n.Target); ok {
		e.RemoveFromQueue(n.ID)
	}
	n.QueueRank = component.NoRank
}

// ===== Trains =====

// AddTrain appends a train
func (w *World) AddTrain(t *component.Train) {
	w.trains = append(w.trains, t)
}

// Trains returns live trains
func (w *World) Trains() []*component.Train {
	return w.trains
}

// CompactTrains drops departed trains
func (w *World) CompactTrains() {
	kept := w.trains[:0]
	for _, t := range w.trains {
		if t.Active() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(w.trains); i++ {
		w.trains[i] = nil
	}
	w.trains = kept
}

// ===== Events =====

// PushEvent stamps the current frame and buffers e
func (w *World) PushEvent(t EventType, n *component.NPC) {
	ev := Event{Type: t, Frame: w.Time.FrameNumber}
	if n != nil {
		ev.NPC = n.ID
		ev.Disposition = n.Disposition
		ev.Position = n.Position()
	}
	w.Events.Push(ev)
}

// PushEventAt buffers a positional event with no NPC
func (w *World) PushEventAt(t EventType, p vmath.Vec2) {
	w.Events.Push(Event{Type: t, Position: p, Frame: w.Time.FrameNumber})
}

var _ attack.Field = (*World)(nil)
