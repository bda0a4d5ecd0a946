package physics

import "github.com/lixenwraith/cutin-killer/vmath"

// Mover is the movement strategy contract NPC behavior depends on
// *Body is the analytic implementation; a rigid-body engine adapter would satisfy the same set
type Mover interface {
	ApplyForce(f vmath.Vec2)
	SetVelocity(v vmath.Vec2)
	MoveTowards(target vmath.Vec2, speed, dt float64) float64
	Integrate(dt float64) bool
	Position() vmath.Vec2
}

var _ Mover = (*Body)(nil)
