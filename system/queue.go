package system

import (
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// QueueRank counts the compliant NPCs ahead of n in the line for e
// Ahead means same target and either already Queuing or Walking strictly closer to e
func QueueRank(npcs []*component.NPC, n *component.NPC, e *component.Escalator) int {
	mine := vmath.DistanceSq(n.Position(), e.Position)
	rank := 0
	for _, o := range npcs {
		if o == n || !o.Active || o.Disposition != component.Compliant || o.Target != n.Target {
			continue
		}
		switch o.State {
		case component.StateQueuing:
			rank++
		case component.StateWalking:
			if vmath.DistanceSq(o.Position(), e.Position) < mine {
				rank++
			}
		}
	}
	return rank
}

// QueueSlot is the line position for rank, spacing·(rank+1) straight out of the entrance
func QueueSlot(e *component.Escalator, rank int) vmath.Vec2 {
	return e.SlotPosition(rank, parameter.QueueSpacing)
}
