package system

import (
	"sync/atomic"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/physics"
)

// CollisionSystem resolves NPC overlap after integration
// Pairs are visited i<j over the id-ordered NPC slice, so each unordered pair resolves once per tick
type CollisionSystem struct {
	world   *engine.World
	profile *physics.CollisionProfile
	bodies  []*component.NPC

	statContacts *atomic.Int64
}

// NewCollisionSystem creates the pairwise contact resolver
func NewCollisionSystem(world *engine.World) engine.System {
	return &CollisionSystem{
		world:        world,
		profile:      &physics.NPCContact,
		statContacts: world.Status.Ints.Get("npc.contacts"),
	}
}

func (s *CollisionSystem) Name() string  { return "collision" }
func (s *CollisionSystem) Priority() int { return parameter.PriorityCollision }
func (s *CollisionSystem) Init()         { s.statContacts.Store(0) }

func (s *CollisionSystem) Update() {
	// Exiting NPCs are on the escalator and out of the crowd
	s.bodies = s.bodies[:0]
	for _, n := range s.world.NPCs() {
		if n.Active && n.State != component.StateExiting {
			s.bodies = append(s.bodies, n)
		}
	}

	contacts := 0
	for i := 0; i < len(s.bodies); i++ {
		a := s.bodies[i]
		for j := i + 1; j < len(s.bodies); j++ {
			b := s.bodies[j]
			if _, ok := physics.ResolveCollision(&a.Body, &b.Body, s.profile); ok {
				contacts++
			}
		}
	}
	s.statContacts.Store(int64(contacts))
}
