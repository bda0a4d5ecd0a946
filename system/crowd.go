package system

import (
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/physics"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// Crowd accumulates pairwise separation pushes among walking NPCs
// O(n²) over walkers; buffers are reused across ticks
type Crowd struct {
	push    []vmath.Vec2
	walkers []int
}

// Compute returns one aggregated push per index of npcs, zero for non-walkers
// Each unordered pair within personal space adds unit(a-b)·(1-d/r) to a and the opposite to b
// The returned slice is valid until the next call
func (c *Crowd) Compute(npcs []*component.NPC) []vmath.Vec2 {
	if cap(c.push) < len(npcs) {
		c.push = make([]vmath.Vec2, len(npcs))
	}
	c.push = c.push[:len(npcs)]
	clear(c.push)

	c.walkers = c.walkers[:0]
	for i, n := range npcs {
		if n.IsWalking() {
			c.walkers = append(c.walkers, i)
		}
	}

	for x := 0; x < len(c.walkers); x++ {
		ia := c.walkers[x]
		a := npcs[ia]
		radius := a.PersonalSpace()

		for y := x + 1; y < len(c.walkers); y++ {
			ib := c.walkers[y]
			b := npcs[ib]

			delta := a.Position().Sub(b.Position())
			dist := delta.Len()
			weight := physics.SeparationWeight(dist, radius)
			if weight <= 0 {
				continue
			}

			// Coincident pair: lower index (lower id) steps left
			dir := vmath.V(-1, 0)
			if dist > vmath.Epsilon {
				dir = delta.Scale(1 / dist)
			}
			c.push[ia] = c.push[ia].Add(dir.Scale(weight))
			c.push[ib] = c.push[ib].Sub(dir.Scale(weight))
		}
	}
	return c.push
}
