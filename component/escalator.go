package component

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lixenwraith/cutin-killer/parameter"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// Entrance is the open side of an escalator, the queue line extends out of it
type Entrance uint8

const (
	EntranceBottom Entrance = iota
	EntranceTop
	EntranceLeft
	EntranceRight
)

func (e Entrance) String() string {
	switch e {
	case EntranceTop:
		return "top"
	case EntranceLeft:
		return "left"
	case EntranceRight:
		return "right"
	default:
		return "bottom"
	}
}

// ParseEntrance maps a config name to an Entrance, empty selects bottom
func ParseEntrance(s string) (Entrance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bottom":
		return EntranceBottom, nil
	case "top":
		return EntranceTop, nil
	case "left":
		return EntranceLeft, nil
	case "right":
		return EntranceRight, nil
	default:
		return EntranceBottom, fmt.Errorf("unknown entrance %q", s)
	}
}

// Direction returns the unit vector pointing out of the entrance (screen Y grows downward)
func (e Entrance) Direction() vmath.Vec2 {
	switch e {
	case EntranceTop:
		return vmath.V(0, -1)
	case EntranceLeft:
		return vmath.V(-1, 0)
	case EntranceRight:
		return vmath.V(1, 0)
	default:
		return vmath.V(0, 1)
	}
}

// Escalator is an exit point with bounded throughput
// The release timer is shared by every queue member, a grant resets it
type Escalator struct {
	Position vmath.Vec2
	Width    float64
	Height   float64

	Capacity        int
	ReleaseInterval time.Duration
	SinceRelease    time.Duration

	Entrance  Entrance
	ZoneDepth float64
	ZoneWidth float64

	queue    []EntityID
	released int
}

// NewEscalator creates an escalator with default geometry
func NewEscalator(pos vmath.Vec2, capacity int, interval time.Duration, entrance Entrance) *Escalator {
	return &Escalator{
		Position:        pos,
		Width:           parameter.EscalatorWidth,
		Height:          parameter.EscalatorHeight,
		Capacity:        capacity,
		ReleaseInterval: interval,
		Entrance:        entrance,
		ZoneDepth:       parameter.EntranceZoneDepth,
		ZoneWidth:       parameter.EscalatorWidth + parameter.EntranceZonePadding,
		queue:           make([]EntityID, 0, 16),
	}
}

// Advance ages the release timer
func (e *Escalator) Advance(dt time.Duration) {
	if dt > 0 {
		e.SinceRelease += dt
	}
}

// AddToQueue appends id if absent and returns its index
func (e *Escalator) AddToQueue(id EntityID) int {
	if idx := e.IndexOf(id); idx >= 0 {
		return idx
	}
	e.queue = append(e.queue, id)
	return len(e.queue) - 1
}

// RemoveFromQueue removes id by identity, later members shift forward
// Returns false if id was not queued
func (e *Escalator) RemoveFromQueue(id EntityID) bool {
	idx := e.IndexOf(id)
	if idx < 0 {
		return false
	}
	copy(e.queue[idx:], e.queue[idx+1:])
	e.queue = e.queue[:len(e.queue)-1]
	return true
}

// IndexOf returns the queue index of id, -1 if absent
func (e *Escalator) IndexOf(id EntityID) int {
	for i, q := range e.queue {
		if q == id {
			return i
		}
	}
	return -1
}

// At returns the id at queue index i
func (e *Escalator) At(i int) (EntityID, bool) {
	if i < 0 || i >= len(e.queue) {
		return 0, false
	}
	return e.queue[i], true
}

// QueueLen returns the number of queued NPCs
func (e *Escalator) QueueLen() int {
	return len(e.queue)
}

// Queue returns a copy of the queue in FIFO order
func (e *Escalator) Queue() []EntityID {
	out := make([]EntityID, len(e.queue))
	copy(out, e.queue)
	return out
}

// CanExit reports whether id may be granted exit now
// Requires queue index < Capacity and the shared timer to have reached ReleaseInterval
func (e *Escalator) CanExit(id EntityID) bool {
	idx := e.IndexOf(id)
	if idx < 0 || idx >= e.Capacity {
		return false
	}
	return e.SinceRelease >= e.ReleaseInterval
}

// Grant records an exit and resets the shared release timer
func (e *Escalator) Grant() {
	e.SinceRelease = 0
	e.released++
}

// Released returns the number of grants issued
func (e *Escalator) Released() int {
	return e.released
}

// ReleaseFraction returns timer progress toward the next grant in [0,1]
func (e *Escalator) ReleaseFraction() float64 {
	if e.ReleaseInterval <= 0 {
		return 1
	}
	return math.Min(1, float64(e.SinceRelease)/float64(e.ReleaseInterval))
}

// SlotPosition returns the queue-line point for rank, spacing·(rank+1) out of the entrance
func (e *Escalator) SlotPosition(rank int, spacing float64) vmath.Vec2 {
	if rank < 0 {
		rank = 0
	}
	return e.Position.Add(e.Entrance.Direction().Scale(spacing * float64(rank+1)))
}

// InEntranceZone reports whether p lies in the rectangle in front of the open side
func (e *Escalator) InEntranceZone(p vmath.Vec2) bool {
	rel := p.Sub(e.Position)
	hw, hh := e.Width/2, e.Height/2
	half := e.ZoneWidth / 2

	switch e.Entrance {
	case EntranceTop:
		return rel.Y < -hh && rel.Y > -hh-e.ZoneDepth && math.Abs(rel.X) < half
	case EntranceLeft:
		return rel.X < -hw && rel.X > -hw-e.ZoneDepth && math.Abs(rel.Y) < half
	case EntranceRight:
		return rel.X > hw && rel.X < hw+e.ZoneDepth && math.Abs(rel.Y) < half
	default:
		return rel.Y > hh && rel.Y < hh+e.ZoneDepth && math.Abs(rel.X) < half
	}
}

// Reset clears the queue and timer for a new level run
func (e *Escalator) Reset() {
	e.queue = e.queue[:0]
	e.SinceRelease = 0
	e.released = 0
}
