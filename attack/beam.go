package attack

import (
	"math"
	"time"

	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// Beam eliminates active NPCs in a band from the origin along Direction
type Beam struct {
	name string
	cd   cooldown

	Width          float64
	Length         float64
	Direction      vmath.Vec2 // Unit axis, toward the tracks
	EffectDuration time.Duration

	effects effectList
}

// NewLaser creates the default beam firing up the screen
func NewLaser() *Beam {
	return &Beam{
		name:           "Laser",
		cd:             cooldown{duration: parameter.LaserCooldown},
		Width:          parameter.LaserWidth,
		Length:         parameter.LaserLength,
		Direction:      vmath.V(0, -1),
		EffectDuration: parameter.LaserEffectDuration,
	}
}

func (b *Beam) Name() string              { return b.name }
func (b *Beam) Kind() Kind                { return KindBeam }
func (b *Beam) Ready() bool               { return b.cd.ready() }
func (b *Beam) CooldownFraction() float64 { return b.cd.fraction() }
func (b *Beam) Effects() []Effect         { return b.effects.snapshot() }

// InBand reports whether q lies inside the beam fired from p
func (b *Beam) InBand(p, q vmath.Vec2) bool {
	axis := b.Direction.Normalize()
	if axis.IsZero() {
		return false
	}
	rel := q.Sub(p)
	along := rel.Dot(axis)
	lateral := math.Abs(rel.Dot(axis.Perpendicular()))
	return along > 0 && along <= b.Length && lateral <= b.Width/2
}

func (b *Beam) Use(p vmath.Vec2, f Field) ([]Hit, bool) {
	if !b.cd.ready() || !p.IsFinite() {
		return nil, false
	}
	b.cd.trigger()

	var hits []Hit
	for _, n := range f.NPCs() {
		if !n.Active || !b.InBand(p, n.Position()) {
			continue
		}
		hit := hitOf(n, KindBeam)
		if f.Deactivate(n) {
			hits = append(hits, hit)
		}
	}

	b.effects.add(Effect{
		Kind:      KindBeam,
		Origin:    p,
		Direction: b.Direction,
		Width:     b.Width,
		Length:    b.Length,
		Duration:  b.EffectDuration,
	})
	return hits, true
}

func (b *Beam) Update(dt time.Duration) []Hit {
	b.cd.tick(dt)
	b.effects.age(dt)
	return nil
}

func (b *Beam) Reset() {
	b.cd.remaining = 0
	b.effects = b.effects[:0]
}
