package attack

import (
	"math"
	"time"

	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// Area eliminates every active NPC within Radius of the trigger point
// Survivors inside KnockbackRadius get an inverse-square outward impulse
type Area struct {
	name string
	cd   cooldown

	Radius            float64
	EffectDuration    time.Duration
	KnockbackRadius   float64
	KnockbackStrength float64

	effects effectList
}

// NewBodySlam creates the default instant-area attack
func NewBodySlam() *Area {
	return &Area{
		name:              "BodySlam",
		cd:                cooldown{duration: parameter.BodySlamCooldown},
		Radius:            parameter.BodySlamRadius,
		EffectDuration:    parameter.BodySlamEffectDuration,
		KnockbackRadius:   parameter.BodySlamKnockbackRadius,
		KnockbackStrength: parameter.BodySlamKnockback,
	}
}

func (a *Area) Name() string              { return a.name }
func (a *Area) Kind() Kind                { return KindArea }
func (a *Area) Ready() bool               { return a.cd.ready() }
func (a *Area) CooldownFraction() float64 { return a.cd.fraction() }
func (a *Area) Effects() []Effect         { return a.effects.snapshot() }

func (a *Area) Use(p vmath.Vec2, f Field) ([]Hit, bool) {
	if !a.cd.ready() || !p.IsFinite() {
		return nil, false
	}
	a.cd.trigger()

	var hits []Hit
	for _, n := range f.NPCs() {
		if !n.Active {
			continue
		}
		delta := n.Position().Sub(p)
		dist := delta.Len()
		switch {
		case dist <= a.Radius:
			hit := hitOf(n, KindArea)
			if f.Deactivate(n) {
				hits = append(hits, hit)
			}
		case dist <= a.KnockbackRadius && a.KnockbackStrength > 0:
			d := math.Max(dist, parameter.MinAttackDistance)
			n.Body.ApplyImpulse(delta.Normalize().Scale(a.KnockbackStrength / (d * d)))
		}
	}

	a.effects.add(Effect{
		Kind:     KindArea,
		Origin:   p,
		Radius:   a.Radius,
		Duration: a.EffectDuration,
	})
	return hits, true
}

func (a *Area) Update(dt time.Duration) []Hit {
	a.cd.tick(dt)
	a.effects.age(dt)
	return nil
}

func (a *Area) Reset() {
	a.cd.remaining = 0
	a.effects = a.effects[:0]
}
