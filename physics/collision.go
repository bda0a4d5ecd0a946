package physics

import "github.com/lixenwraith/cutin-killer/vmath"

// Contact describes one resolved pairwise overlap
type Contact struct {
	Normal  vmath.Vec2 // Unit vector from a to b
	Overlap float64    // Penetration depth before correction
	Impulse float64    // Scalar impulse applied along Normal, zero when separating
}

// ResolveCollision separates two overlapping bodies
// Impulse j = -(1+e)·(vrel·n) / (1/ma + 1/mb) is exchanged equal and opposite when approaching,
// then each body is moved by CorrectionShare of the overlap along the normal
// Returns false when the bodies do not overlap or either is detached
func ResolveCollision(a, b *Body, profile *CollisionProfile) (Contact, bool) {
	if !a.attached || !b.attached {
		return Contact{}, false
	}

	delta := b.Pos.Sub(a.Pos)
	dist := delta.Len()
	if dist >= profile.MinSeparation || !vmath.IsFinite(dist) {
		return Contact{}, false
	}

	// Coincident centers have no normal, fall back to +X
	normal := vmath.V(1, 0)
	if dist > vmath.Epsilon {
		normal = delta.Scale(1 / dist)
	}

	contact := Contact{
		Normal:  normal,
		Overlap: profile.MinSeparation - dist,
	}

	invA, invB := a.InvMass(), b.InvMass()
	vn := b.Vel.Sub(a.Vel).Dot(normal)
	if vn < 0 {
		j := -(1 + profile.Restitution) * vn / (invA + invB)
		a.Vel = a.Vel.Sub(normal.Scale(j * invA))
		b.Vel = b.Vel.Add(normal.Scale(j * invB))
		contact.Impulse = j
	}

	correction := normal.Scale(contact.Overlap * profile.CorrectionShare)
	a.Pos = a.Pos.Sub(correction)
	b.Pos = b.Pos.Add(correction)
	a.Sanitize()
	b.Sanitize()

	return contact, true
}

// Momentum returns mass-weighted velocity, used by diagnostics and tests
func (b *Body) Momentum() vmath.Vec2 {
	return b.Vel.Scale(1 / b.InvMass())
}
