package level

import (
	"fmt"
	"sort"
	"time"

	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/physics"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// DefaultID is the fallback level for unknown ids
const DefaultID = "shinjuku"

// EscalatorSpec places one escalator
type EscalatorSpec struct {
	Position        vmath.Vec2
	Capacity        int
	ReleaseInterval time.Duration
	Entrance        component.Entrance
}

// Level is immutable per-level geometry and pacing
// Values are copied into the world at level start and never mutated
type Level struct {
	ID          string
	Name        string
	Description string

	Width  float64
	Height float64

	TrainStops    []vmath.Vec2
	Escalators    []EscalatorSpec
	TrainInterval time.Duration
	Duration      time.Duration
	TrackWidth    float64
}

// Corridors returns one track-avoidance band per train stop line
func (l Level) Corridors() []physics.Corridor {
	width := l.TrackWidth
	if width <= 0 {
		width = parameter.TrackWidth
	}
	out := make([]physics.Corridor, 0, len(l.TrainStops))
	for _, stop := range l.TrainStops {
		out = append(out, physics.Corridor{
			CenterY:   stop.Y,
			HalfWidth: width / 2,
			Margin:    parameter.TrackMargin,
		})
	}
	return out
}

// Validate rejects geometry the simulation cannot run
func (l Level) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("level has no id")
	}
	if len(l.TrainStops) == 0 {
		return fmt.Errorf("level %s: no train stops", l.ID)
	}
	if len(l.Escalators) == 0 {
		return fmt.Errorf("level %s: no escalators", l.ID)
	}
	if l.TrainInterval <= 0 || l.Duration <= 0 {
		return fmt.Errorf("level %s: train interval and duration must be positive", l.ID)
	}
	for i, e := range l.Escalators {
		if e.Capacity <= 0 {
			return fmt.Errorf("level %s: escalator %d capacity %d", l.ID, i, e.Capacity)
		}
	}
	return nil
}

// Clone returns a deep copy so callers never share slices with the registry
func (l Level) Clone() Level {
	c := l
	c.TrainStops = append([]vmath.Vec2(nil), l.TrainStops...)
	c.Escalators = append([]EscalatorSpec(nil), l.Escalators...)
	return c
}

// Registry holds the playable levels keyed by id
type Registry struct {
	levels map[string]Level
}

// NewRegistry creates a registry seeded with the built-in levels
func NewRegistry() *Registry {
	r := &Registry{levels: make(map[string]Level, len(builtins))}
	for _, l := range builtins {
		r.levels[l.ID] = l
	}
	return r
}

// Register adds or replaces a level after validation
func (r *Registry) Register(l Level) error {
	if err := l.Validate(); err != nil {
		return err
	}
	r.levels[l.ID] = l.Clone()
	return nil
}

// ByID returns the level for id, falling back to DefaultID
func (r *Registry) ByID(id string) Level {
	if l, ok := r.levels[id]; ok {
		return l.Clone()
	}
	return r.levels[DefaultID].Clone()
}

// Has reports whether id is registered
func (r *Registry) Has(id string) bool {
	_, ok := r.levels[id]
	return ok
}

// IDs returns registered ids sorted
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.levels))
	for id := range r.levels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ByID resolves against the built-in levels only
func ByID(id string) Level {
	return NewRegistry().ByID(id)
}
