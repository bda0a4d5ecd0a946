package level

import (
	"fmt"
	"time"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// PointDef is a config-file point
type PointDef struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

// EscalatorDef is a config-file escalator, zero fields take defaults
type EscalatorDef struct {
	X               float64       `mapstructure:"x"`
	Y               float64       `mapstructure:"y"`
	Capacity        int           `mapstructure:"capacity"`
	ReleaseInterval time.Duration `mapstructure:"releaseInterval"`
	Entrance        string        `mapstructure:"entrance"`
}

// Definition is the config-file form of a level
type Definition struct {
	ID            string         `mapstructure:"id"`
	Name          string         `mapstructure:"name"`
	Width         float64        `mapstructure:"width"`
	Height        float64        `mapstructure:"height"`
	TrainStops    []PointDef     `mapstructure:"trainStops"`
	Escalators    []EscalatorDef `mapstructure:"escalators"`
	TrainInterval time.Duration  `mapstructure:"trainInterval"`
	Duration      time.Duration  `mapstructure:"duration"`
	TrackWidth    float64        `mapstructure:"trackWidth"`
}

// Build converts a definition into a validated Level
func (d Definition) Build() (Level, error) {
	l := Level{
		ID:            d.ID,
		Name:          d.Name,
		Width:         d.Width,
		Height:        d.Height,
		TrainInterval: d.TrainInterval,
		Duration:      d.Duration,
		TrackWidth:    d.TrackWidth,
	}
	if l.Name == "" {
		l.Name = d.ID
	}
	if l.Width <= 0 {
		l.Width = 600
	}
	if l.Height <= 0 {
		l.Height = 800
	}
	if l.TrackWidth <= 0 {
		l.TrackWidth = parameter.TrackWidth
	}

	for _, p := range d.TrainStops {
		l.TrainStops = append(l.TrainStops, vmath.V(p.X, p.Y))
	}
	for i, e := range d.Escalators {
		entrance, err := component.ParseEntrance(e.Entrance)
		if err != nil {
			return Level{}, fmt.Errorf("level %s escalator %d: %w", d.ID, i, err)
		}
		spec := EscalatorSpec{
			Position:        vmath.V(e.X, e.Y),
			Capacity:        e.Capacity,
			ReleaseInterval: e.ReleaseInterval,
			Entrance:        entrance,
		}
		if spec.Capacity <= 0 {
			spec.Capacity = parameter.EscalatorCapacity
		}
		if spec.ReleaseInterval <= 0 {
			spec.ReleaseInterval = parameter.EscalatorReleaseInterval
		}
		l.Escalators = append(l.Escalators, spec)
	}

	if err := l.Validate(); err != nil {
		return Level{}, err
	}
	return l, nil
}
