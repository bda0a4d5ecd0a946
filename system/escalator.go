package system

import (
	"strconv"
	"sync/atomic"

	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/parameter"
)

// EscalatorSystem ages every escalator's shared release timer
// Runs first so grants checked by NPCs later in the tick see the updated timer
type EscalatorSystem struct {
	world *engine.World

	statQueues []*atomic.Int64
}

// NewEscalatorSystem creates the escalator timer system
func NewEscalatorSystem(world *engine.World) engine.System {
	return &EscalatorSystem{world: world}
}

func (s *EscalatorSystem) Name() string  { return "escalator" }
func (s *EscalatorSystem) Priority() int { return parameter.PriorityEscalator }

// Init binds one queue-length metric per escalator of the loaded level
func (s *EscalatorSystem) Init() {
	s.statQueues = s.statQueues[:0]
	for i := range s.world.Escalators() {
		s.statQueues = append(s.statQueues, s.world.Status.Ints.Get("escalator."+strconv.Itoa(i)+".queue"))
	}
}

func (s *EscalatorSystem) Update() {
	dt := s.world.Time.DeltaTime
	for i, e := range s.world.Escalators() {
		e.Advance(dt)
		if i < len(s.statQueues) {
			s.statQueues[i].Store(int64(e.QueueLen()))
		}
	}
}
