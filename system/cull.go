package system

import (
	"sync/atomic"

	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/parameter"
)

// CullSystem compacts deactivated NPCs out of the world
// It runs last in the tick so every system has observed the inactive flag
type CullSystem struct {
	world *engine.World

	statCulled *atomic.Int64
}

// NewCullSystem creates a new cull system
func NewCullSystem(world *engine.World) engine.System {
	return &CullSystem{
		world:      world,
		statCulled: world.Status.Ints.Get("npc.culled"),
	}
}

func (s *CullSystem) Name() string  { return "cull" }
func (s *CullSystem) Priority() int { return parameter.PriorityCull }
func (s *CullSystem) Init()         { s.statCulled.Store(0) }

func (s *CullSystem) Update() {
	if removed := s.world.Compact(); removed > 0 {
		s.statCulled.Add(int64(removed))
	}
}

// Register adds every simulation system to world in tick order
func Register(world *engine.World) {
	world.AddSystem(NewEscalatorSystem(world))
	world.AddSystem(NewTrainSystem(world))
	world.AddSystem(NewNPCSystem(world))
	world.AddSystem(NewCollisionSystem(world))
	world.AddSystem(NewAttackSystem(world))
	world.AddSystem(NewCullSystem(world))
}
