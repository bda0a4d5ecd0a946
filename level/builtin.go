package level

import (
	"time"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

func escalatorsAt(y float64, xs ...float64) []EscalatorSpec {
	out := make([]EscalatorSpec, 0, len(xs))
	for _, x := range xs {
		out = append(out, EscalatorSpec{
			Position:        vmath.V(x, y),
			Capacity:        parameter.EscalatorCapacity,
			ReleaseInterval: parameter.EscalatorReleaseInterval,
			Entrance:        component.EntranceBottom,
		})
	}
	return out
}

var builtins = []Level{
	{
		ID:            "shinjuku",
		Name:          "新宿駅",
		Description:   "single platform",
		Width:         600,
		Height:        800,
		TrainStops:    []vmath.Vec2{{X: 300, Y: 200}},
		Escalators:    escalatorsAt(50, 200, 400),
		TrainInterval: 10 * time.Second,
		Duration:      120 * time.Second,
		TrackWidth:    parameter.TrackWidth,
	},
	{
		ID:            "shibuya",
		Name:          "渋谷駅",
		Description:   "crowded two-platform layout",
		Width:         600,
		Height:        800,
		TrainStops:    []vmath.Vec2{{X: 300, Y: 200}, {X: 300, Y: 400}},
		Escalators:    escalatorsAt(50, 150, 300, 450),
		TrainInterval: 8 * time.Second,
		Duration:      120 * time.Second,
		TrackWidth:    parameter.TrackWidth,
	},
	{
		ID:            "tokyo",
		Name:          "東京駅",
		Description:   "three platforms, fast trains",
		Width:         600,
		Height:        800,
		TrainStops:    []vmath.Vec2{{X: 300, Y: 150}, {X: 300, Y: 350}, {X: 300, Y: 550}},
		Escalators:    escalatorsAt(50, 120, 240, 360, 480),
		TrainInterval: 6 * time.Second,
		Duration:      180 * time.Second,
		TrackWidth:    parameter.TrackWidth,
	},
}
