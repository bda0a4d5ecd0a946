package physics

import "github.com/lixenwraith/cutin-killer/vmath"

// SeparationWeight returns the linear falloff 1 - d/r for a neighbor at distance d
// Zero at or beyond the radius, 1 at contact
func SeparationWeight(dist, radius float64) float64 {
	if radius <= 0 || dist >= radius || !vmath.IsFinite(dist) {
		return 0
	}
	if dist <= 0 {
		return 1
	}
	return 1 - dist/radius
}

// SeparationForce converts an aggregated push vector into a Reynolds steering force
// scaled by multiplier; zero push yields zero force
func SeparationForce(b *Body, push vmath.Vec2, multiplier float64) vmath.Vec2 {
	if push.IsZero() || multiplier <= 0 {
		return vmath.Vec2{}
	}
	return b.SteerAlong(push).Scale(multiplier)
}
