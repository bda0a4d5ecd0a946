package attack

import (
	"time"

	"github.com/lixenwraith/cutin-killer/vmath"
)

// Effect is a transient visual with its own decay timer
type Effect struct {
	Kind      Kind          `json:"kind"`
	Origin    vmath.Vec2    `json:"origin"`
	Radius    float64       `json:"radius,omitempty"`    // Area and bomb reach
	Direction vmath.Vec2    `json:"direction,omitempty"` // Beam axis
	Width     float64       `json:"width,omitempty"`
	Length    float64       `json:"length,omitempty"`
	Armed     bool          `json:"armed,omitempty"` // Bomb still on fuse
	Elapsed   time.Duration `json:"elapsed"`
	Duration  time.Duration `json:"duration"`
}

// Progress returns elapsed/duration in [0,1]
func (e Effect) Progress() float64 {
	if e.Duration <= 0 {
		return 1
	}
	return vmath.Clamp(float64(e.Elapsed)/float64(e.Duration), 0, 1)
}

// effectList is append on use, age-and-filter every update
type effectList []Effect

func (l *effectList) add(e Effect) {
	*l = append(*l, e)
}

func (l *effectList) age(dt time.Duration) {
	kept := (*l)[:0]
	for _, e := range *l {
		e.Elapsed += dt
		if e.Elapsed < e.Duration {
			kept = append(kept, e)
		}
	}
	// Zero tail so dropped entries are not retained
	for i := len(kept); i < len(*l); i++ {
		(*l)[i] = Effect{}
	}
	*l = kept
}

func (l effectList) snapshot() []Effect {
	out := make([]Effect, len(l))
	copy(out, l)
	return out
}
