package physics

import (
	"math"

	"github.com/lixenwraith/cutin-killer/vmath"
)

// Corridor is a horizontal exclusion band around a train track
type Corridor struct {
	CenterY   float64
	HalfWidth float64
	Margin    float64 // Repulsion zone extends this far past each edge
}

// Contains reports whether p lies on the track itself
func (c Corridor) Contains(p vmath.Vec2) bool {
	return math.Abs(p.Y-c.CenterY) <= c.HalfWidth
}

// Force returns the vertical push keeping a walker off the corridor
// Magnitude grows linearly with embedding depth inside the zone
// Direction follows the side of the corridor aim lies on, so walkers crossing a track
// are pushed through it instead of back; aims inside the band push toward the nearest edge
func (c Corridor) Force(p, aim vmath.Vec2, strength float64) vmath.Vec2 {
	zone := c.HalfWidth + c.Margin
	if zone <= 0 || strength <= 0 {
		return vmath.Vec2{}
	}
	dy := p.Y - c.CenterY
	if math.Abs(dy) >= zone {
		return vmath.Vec2{}
	}
	depth := (zone - math.Abs(dy)) / zone

	var sign float64
	aimDy := aim.Y - c.CenterY
	switch {
	case math.Abs(aimDy) > c.HalfWidth:
		sign = math.Copysign(1, aimDy)
	case dy != 0:
		sign = math.Copysign(1, dy)
	default:
		sign = -1
	}

	return vmath.V(0, sign*strength*depth)
}
