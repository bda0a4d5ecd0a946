package system

import (
	"github.com/lixenwraith/cutin-killer/attack"
	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/parameter"
)

// AttackSystem ages the armed attack: cooldown, effects and delayed resolution
type AttackSystem struct {
	world *engine.World
}

// NewAttackSystem creates the attack timer system
func NewAttackSystem(world *engine.World) engine.System {
	return &AttackSystem{world: world}
}

func (s *AttackSystem) Name() string  { return "attack" }
func (s *AttackSystem) Priority() int { return parameter.PriorityAttack }
func (s *AttackSystem) Init()         {}

func (s *AttackSystem) Update() {
	w := s.world
	a := w.Attack
	if a == nil {
		return
	}

	hits := a.Update(w.Time.DeltaTime)

	if d, ok := a.(attack.Detonator); ok {
		for _, p := range d.Detonated() {
			w.PushEventAt(engine.EventBombExploded, p)
		}
	}

	for _, h := range hits {
		w.Events.Push(engine.Event{
			Type:        engine.EventNPCEliminated,
			NPC:         h.ID,
			Disposition: h.Disposition,
			Position:    h.Position,
			Frame:       w.Time.FrameNumber,
		})
	}
	if len(hits) > 0 {
		w.SyncQueues()
		w.Log.Debug().Str("attack", a.Name()).Int("hits", len(hits)).Msg("delayed hits resolved")
	}
}
