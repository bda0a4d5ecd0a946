package physics

import (
	"math"

	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// Body is the analytic steering body: force accumulation and damped explicit Euler integration
type Body struct {
	Pos vmath.Vec2 // World position
	Vel vmath.Vec2 // Units per second
	Acc vmath.Vec2 // Accumulated acceleration for the current step, reset by Integrate

	Mass          float64
	MaxSpeed      float64
	MaxForce      float64
	SteerGain     float64 // Multiplier on (desired - vel) before the MaxForce clamp, 1 = plain Reynolds
	ArrivalRadius float64 // Seek decelerates linearly inside this distance
	Damping       float64 // Velocity retention per reference step in (0,1], floor drag

	lastGood vmath.Vec2
	hasGood  bool
	attached bool
}

// NewBody creates a body at pos configured from profile
func NewBody(pos vmath.Vec2, profile *SteeringProfile) Body {
	return Body{
		Pos:           pos,
		Mass:          profile.Mass,
		MaxSpeed:      profile.MaxSpeed,
		MaxForce:      profile.MaxForce,
		SteerGain:     profile.SteerGain,
		ArrivalRadius: profile.ArrivalRadius,
		Damping:       profile.Damping,
		lastGood:      pos,
		hasGood:       pos.IsFinite(),
		attached:      true,
	}
}

// InvMass returns 1/mass, non-positive mass is treated as unit mass
func (b *Body) InvMass() float64 {
	if b.Mass <= 0 || !vmath.IsFinite(b.Mass) {
		return 1
	}
	return 1 / b.Mass
}

// Attached reports whether the body still takes part in the simulation
func (b *Body) Attached() bool {
	return b.attached
}

// Detach releases the body from the simulation, further forces and steps are ignored
func (b *Body) Detach() {
	b.attached = false
	b.Vel = vmath.Vec2{}
	b.Acc = vmath.Vec2{}
}

// Position implements Mover
func (b *Body) Position() vmath.Vec2 {
	return b.Pos
}

// Velocity returns the current velocity
func (b *Body) Velocity() vmath.Vec2 {
	return b.Vel
}

// Seek returns the steering force toward target with arrival deceleration
// dist is the caller's precomputed distance to target; zero distance yields no force
func (b *Body) Seek(target vmath.Vec2, dist float64) vmath.Vec2 {
	if dist <= 0 || !vmath.IsFinite(dist) {
		return vmath.Vec2{}
	}
	dir := target.Sub(b.Pos).Normalize()
	if dir.IsZero() {
		return vmath.Vec2{}
	}

	speed := b.MaxSpeed
	if b.ArrivalRadius > 0 && dist < b.ArrivalRadius {
		speed *= dist / b.ArrivalRadius
	}

	return b.steer(dir.Scale(speed))
}

// SteerAlong returns the Reynolds steering force toward full speed along dir
func (b *Body) SteerAlong(dir vmath.Vec2) vmath.Vec2 {
	unit := dir.Normalize()
	if unit.IsZero() {
		return vmath.Vec2{}
	}
	return b.steer(unit.Scale(b.MaxSpeed))
}

func (b *Body) steer(desired vmath.Vec2) vmath.Vec2 {
	gain := b.SteerGain
	if gain <= 0 {
		gain = 1
	}
	return desired.Sub(b.Vel).Scale(gain).ClampMagnitude(b.MaxForce)
}

// ApplyForce accumulates f/mass into acceleration, non-finite forces are dropped
func (b *Body) ApplyForce(f vmath.Vec2) {
	if !b.attached || !f.IsFinite() {
		return
	}
	b.Acc = b.Acc.Add(f.Scale(b.InvMass()))
}

// ApplyImpulse adds j/mass to velocity (momentum transfer)
func (b *Body) ApplyImpulse(j vmath.Vec2) {
	if !b.attached || !j.IsFinite() {
		return
	}
	b.Vel = b.Vel.Add(j.Scale(b.InvMass()))
}

// SetVelocity overrides velocity (hard redirect)
func (b *Body) SetVelocity(v vmath.Vec2) {
	if !v.IsFinite() {
		b.Vel = vmath.Vec2{}
		return
	}
	b.Vel = v
}

// Shift displaces the body directly, used for shoves and positional correction
func (b *Body) Shift(d vmath.Vec2) {
	if !b.attached || !d.IsFinite() {
		return
	}
	b.Pos = b.Pos.Add(d)
	b.Sanitize()
}

// MoveTowards moves kinematically toward target at speed for dt seconds without overshoot
// Returns remaining distance after the move
func (b *Body) MoveTowards(target vmath.Vec2, speed, dt float64) float64 {
	delta := target.Sub(b.Pos)
	dist := delta.Len()
	if !b.attached || dist < vmath.Epsilon || speed <= 0 || dt <= 0 {
		return dist
	}
	step := speed * dt
	if step >= dist {
		b.Pos = target
		b.Sanitize()
		return 0
	}
	b.Pos = b.Pos.Add(delta.Scale(step / dist))
	b.Sanitize()
	return dist - step
}

// Integrate advances one step of dt seconds
// Returns false when the step produced a non-finite state and was discarded
func (b *Body) Integrate(dt float64) bool {
	if !b.attached {
		return false
	}
	if dt <= 0 || !vmath.IsFinite(dt) {
		b.Acc = vmath.Vec2{}
		return false
	}

	vel := b.Vel.Add(b.Acc.Scale(dt))
	if b.Damping > 0 && b.Damping < 1 {
		vel = vel.Scale(math.Pow(b.Damping, dt*parameter.DampingReferenceRate))
	}
	if b.MaxSpeed > 0 {
		vel = vel.ClampMagnitude(b.MaxSpeed)
	}
	pos := b.Pos.Add(vel.Scale(dt))
	b.Acc = vmath.Vec2{}

	if !vel.IsFinite() || !pos.IsFinite() {
		b.Vel = vmath.Vec2{}
		b.restore()
		return false
	}

	b.Vel = vel
	b.Pos = pos
	b.lastGood = pos
	b.hasGood = true
	return true
}

// Sanitize repairs a non-finite state in place, returns true if a repair happened
func (b *Body) Sanitize() bool {
	repaired := false
	if !b.Vel.IsFinite() {
		b.Vel = vmath.Vec2{}
		repaired = true
	}
	if !b.Acc.IsFinite() {
		b.Acc = vmath.Vec2{}
		repaired = true
	}
	if !b.Pos.IsFinite() {
		b.Vel = vmath.Vec2{}
		b.restore()
		return true
	}
	if !repaired {
		b.lastGood = b.Pos
		b.hasGood = true
	}
	return repaired
}

// restore snaps position back to last known good, or the safe default
func (b *Body) restore() {
	if b.Pos.IsFinite() {
		return
	}
	if b.hasGood {
		b.Pos = b.lastGood
		return
	}
	b.Pos = vmath.V(parameter.SafeX, parameter.SafeY)
	b.lastGood = b.Pos
	b.hasGood = true
}
