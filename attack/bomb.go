package attack

import (
	"time"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// pendingBomb is one placed bomb, on fuse then exploding
type pendingBomb struct {
	origin   vmath.Vec2
	captured []*component.NPC // NPC set at placement, later arrivals are never hit
	field    Field
	fuse     time.Duration
	blast    time.Duration
	exploded bool
}

// Bomb places a delayed area resolution
// At fuse expiry every captured NPC still active and within Radius is eliminated
type Bomb struct {
	name string
	cd   cooldown

	Radius            float64
	Fuse              time.Duration
	ExplosionDuration time.Duration
	ShockRadius       float64
	ShockStrength     float64

	bombs     []*pendingBomb
	detonated []vmath.Vec2
}

// NewBomb creates the default delayed-area attack
func NewBomb() *Bomb {
	return &Bomb{
		name:              "Bomb",
		cd:                cooldown{duration: parameter.BombCooldown},
		Radius:            parameter.BombRadius,
		Fuse:              parameter.BombFuse,
		ExplosionDuration: parameter.BombExplosionDuration,
		ShockRadius:       parameter.BombShockRadius,
		ShockStrength:     parameter.BombShockStrength,
	}
}

func (b *Bomb) Name() string              { return b.name }
func (b *Bomb) Kind() Kind                { return KindBomb }
func (b *Bomb) Ready() bool               { return b.cd.ready() }
func (b *Bomb) CooldownFraction() float64 { return b.cd.fraction() }

// Pending returns the number of bombs on fuse or exploding
func (b *Bomb) Pending() int {
	return len(b.bombs)
}

// Use places a bomb; no immediate hits
func (b *Bomb) Use(p vmath.Vec2, f Field) ([]Hit, bool) {
	if !b.cd.ready() || !p.IsFinite() {
		return nil, false
	}
	b.cd.trigger()

	npcs := f.NPCs()
	captured := make([]*component.NPC, len(npcs))
	copy(captured, npcs)

	b.bombs = append(b.bombs, &pendingBomb{
		origin:   p,
		captured: captured,
		field:    f,
	})
	return nil, true
}

func (b *Bomb) Update(dt time.Duration) []Hit {
	b.cd.tick(dt)
	b.detonated = b.detonated[:0]

	var hits []Hit
	kept := b.bombs[:0]
	for _, pb := range b.bombs {
		if !pb.exploded {
			pb.fuse += dt
			if pb.fuse >= b.Fuse {
				pb.exploded = true
				b.detonated = append(b.detonated, pb.origin)
				hits = append(hits, b.explode(pb)...)
				pb.captured = nil
			}
			kept = append(kept, pb)
			continue
		}
		pb.blast += dt
		if pb.blast < b.ExplosionDuration {
			kept = append(kept, pb)
		}
	}
	for i := len(kept); i < len(b.bombs); i++ {
		b.bombs[i] = nil
	}
	b.bombs = kept
	return hits
}

// explode resolves against current position and active flag of the captured set
func (b *Bomb) explode(pb *pendingBomb) []Hit {
	var hits []Hit
	for _, n := range pb.captured {
		if !n.Active {
			continue
		}
		delta := n.Position().Sub(pb.origin)
		dist := delta.Len()
		switch {
		case dist <= b.Radius:
			hit := hitOf(n, KindBomb)
			if pb.field.Deactivate(n) {
				hits = append(hits, hit)
			}
		case dist <= b.ShockRadius && b.ShockStrength > 0:
			falloff := 1 - dist/b.ShockRadius
			n.Body.ApplyImpulse(delta.Normalize().Scale(b.ShockStrength * falloff))
		}
	}
	return hits
}

func (b *Bomb) Effects() []Effect {
	out := make([]Effect, 0, len(b.bombs))
	for _, pb := range b.bombs {
		e := Effect{
			Kind:   KindBomb,
			Origin: pb.origin,
			Radius: b.Radius,
			Armed:  !pb.exploded,
		}
		if pb.exploded {
			e.Elapsed, e.Duration = pb.blast, b.ExplosionDuration
		} else {
			e.Elapsed, e.Duration = pb.fuse, b.Fuse
		}
		out = append(out, e)
	}
	return out
}

// Detonated returns origins of bombs whose fuse expired in the last Update
func (b *Bomb) Detonated() []vmath.Vec2 {
	return b.detonated
}

func (b *Bomb) Reset() {
	b.cd.remaining = 0
	b.bombs = nil
	b.detonated = b.detonated[:0]
}
