package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// TrainSystem schedules trains and unloads their passengers as NPCs
type TrainSystem struct {
	world *engine.World

	timer   time.Duration
	spawned int
	started bool

	statSpawned *atomic.Int64
}

// NewTrainSystem creates the train scheduler
func NewTrainSystem(world *engine.World) engine.System {
	return &TrainSystem{
		world:       world,
		statSpawned: world.Status.Ints.Get("npc.spawned"),
	}
}

func (s *TrainSystem) Name() string  { return "train" }
func (s *TrainSystem) Priority() int { return parameter.PriorityTrain }

func (s *TrainSystem) Init() {
	s.timer = 0
	s.spawned = 0
	s.started = false
	s.statSpawned.Store(0)
}

func (s *TrainSystem) Update() {
	w := s.world
	dt := w.Time.DeltaTime

	// First train arrives at level start, then one per interval
	if !s.started {
		s.started = true
		s.dispatch()
	} else {
		s.timer += dt
		if interval := w.Level.TrainInterval; interval > 0 && s.timer >= interval {
			s.timer = 0
			s.dispatch()
		}
	}

	for _, t := range w.Trains() {
		if t.Advance(dt) {
			s.unload(t)
		}
	}
	w.CompactTrains()
}

// dispatch sends the next train, cycling through the level's stop lines
func (s *TrainSystem) dispatch() {
	stops := s.world.Level.TrainStops
	if len(stops) == 0 {
		return
	}
	s.world.AddTrain(component.NewTrain(stops[s.spawned%len(stops)]))
	s.spawned++
}

// unload spawns passengers spread around the door of a stopped train
func (s *TrainSystem) unload(t *component.Train) {
	w := s.world
	rng := w.Rand

	count := rng.IntRange(parameter.PassengersMin, parameter.PassengersMax)
	ratio := rng.FloatRange(parameter.CompliantRatioMin, parameter.CompliantRatioMax)

	for i := 0; i < count; i++ {
		d := component.Disruptive
		if rng.Float64() < ratio {
			d = component.Compliant
		}
		offset := rng.FloatRange(-parameter.DoorJitter, parameter.DoorJitter)
		n := w.CreateNPC(d, vmath.V(t.StopLine.X+offset, t.StopLine.Y))
		w.PushEvent(engine.EventNPCSpawned, n)
	}
	s.statSpawned.Add(int64(count))
	w.PushEventAt(engine.EventTrainArrived, t.StopLine)

	w.Log.Debug().
		Float64("y", t.StopLine.Y).
		Int("passengers", count).
		Float64("compliantRatio", ratio).
		Msg("train unloaded")
}
