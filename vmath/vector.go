package vmath

import "math"

// Epsilon is the magnitude below which a vector is treated as zero
const Epsilon = 1e-9

// Vec2 is a 2D vector in world units (pixels of the level plane)
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// V is shorthand for Vec2{X: x, Y: y}
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale multiplies both components by s
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Neg returns -v
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns x1*x2 + y1*y2
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

// LenSq returns squared magnitude without sqrt
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns Euclidean magnitude
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// IsZero reports whether the magnitude is below Epsilon
func (v Vec2) IsZero() bool {
	return v.LenSq() < Epsilon*Epsilon
}

// IsFinite reports whether both components are neither NaN nor ±Inf
func (v Vec2) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y)
}

// Normalize returns the unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l < Epsilon || !IsFinite(l) {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// ClampMagnitude limits vector to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func (v Vec2) ClampMagnitude(maxMag float64) Vec2 {
	if maxMag <= 0 {
		return Vec2{}
	}
	l := v.Len()
	if l <= maxMag || l == 0 {
		return v
	}
	return v.Scale(maxMag / l)
}

// Perpendicular returns vector rotated 90° counter-clockwise
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{-v.Y, v.X}
}

// Lerp interpolates between v and o by t in [0,1]
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t}
}

// Distance returns |a - b|
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// DistanceSq returns |a - b|² without sqrt
func DistanceSq(a, b Vec2) float64 {
	return a.Sub(b).LenSq()
}
