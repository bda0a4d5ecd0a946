package attack

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// ErrUnknownAttack is returned for attack names with no registered kind
var ErrUnknownAttack = errors.New("unknown attack")

// Kind tags the attack variant
type Kind uint8

const (
	KindArea Kind = iota
	KindBomb
	KindBeam
)

func (k Kind) String() string {
	switch k {
	case KindArea:
		return "area"
	case KindBomb:
		return "bomb"
	case KindBeam:
		return "beam"
	default:
		return "unknown"
	}
}

// Field is the NPC set an attack resolves against
// Deactivate must release any queue slot and be a no-op on inactive NPCs
type Field interface {
	NPCs() []*component.NPC
	Deactivate(n *component.NPC) bool
}

// Hit records one eliminated NPC
type Hit struct {
	ID          component.EntityID
	Disposition component.Disposition
	Position    vmath.Vec2
	Kind        Kind
}

// Attack is the common contract of every attack kind
type Attack interface {
	Name() string
	Kind() Kind

	// Ready reports whether Use would fire
	Ready() bool

	// CooldownFraction is 1 when ready, 0 right after use
	CooldownFraction() float64

	// Use fires at p; returns false without side effects while on cooldown
	Use(p vmath.Vec2, f Field) ([]Hit, bool)

	// Update ages cooldown and effects, returns hits from delayed resolution
	Update(dt time.Duration) []Hit

	// Effects returns a copy of the in-flight visual effects
	Effects() []Effect

	// Reset clears cooldown and pending effects for a new run
	Reset()
}

// Detonator is implemented by kinds with delayed resolution
type Detonator interface {
	// Detonated returns origins resolved during the last Update
	Detonated() []vmath.Vec2
}

var _ Detonator = (*Bomb)(nil)

// ByName constructs the default attack for a config name
func ByName(name string) (Attack, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bodyslam", "area":
		return NewBodySlam(), nil
	case "bomb":
		return NewBomb(), nil
	case "laser", "beam":
		return NewLaser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttack, name)
	}
}

// Names lists the accepted config names
func Names() []string {
	return []string{"bodyslam", "bomb", "laser"}
}

// cooldown is the Ready/OnCooldown timer shared by all kinds
type cooldown struct {
	duration  time.Duration
	remaining time.Duration
}

func (c *cooldown) ready() bool {
	return c.remaining <= 0
}

func (c *cooldown) trigger() {
	c.remaining = c.duration
}

func (c *cooldown) tick(dt time.Duration) {
	if c.remaining > 0 {
		c.remaining -= dt
	}
}

func (c *cooldown) fraction() float64 {
	if c.duration <= 0 {
		return 1
	}
	return vmath.Clamp(1-float64(c.remaining)/float64(c.duration), 0, 1)
}

// hitOf builds a Hit from an NPC at the moment of elimination
func hitOf(n *component.NPC, kind Kind) Hit {
	return Hit{
		ID:          n.ID,
		Disposition: n.Disposition,
		Position:    n.Position(),
		Kind:        kind,
	}
}
