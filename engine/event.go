package engine

import (
	"github.com/lixenwraith/cutin-killer/component"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// EventType tags simulation events
type EventType uint8

const (
	EventNPCSpawned EventType = iota
	EventNPCQueued
	EventNPCExiting
	EventNPCExited
	EventNPCEliminated
	EventTrainArrived
	EventAttackUsed
	EventBombExploded
	EventNumericFault
	EventGameOver
)

var eventNames = [...]string{
	EventNPCSpawned:    "npc_spawned",
	EventNPCQueued:     "npc_queued",
	EventNPCExiting:    "npc_exiting",
	EventNPCExited:     "npc_exited",
	EventNPCEliminated: "npc_eliminated",
	EventTrainArrived:  "train_arrived",
	EventAttackUsed:    "attack_used",
	EventBombExploded:  "bomb_exploded",
	EventNumericFault:  "numeric_fault",
	EventGameOver:      "game_over",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is one simulation occurrence, consumed by scoring, audio and metrics
type Event struct {
	Type        EventType
	NPC         component.EntityID
	Disposition component.Disposition
	Position    vmath.Vec2
	Frame       int64
}

// EventQueue buffers events within a step
// Double-buffered: Consume hands out the filled buffer and recycles the previous one
type EventQueue struct {
	events []Event
	spare  []Event
}

// NewEventQueue creates a queue with capacity preallocated
func NewEventQueue(capacity int) *EventQueue {
	return &EventQueue{
		events: make([]Event, 0, capacity),
		spare:  make([]Event, 0, capacity),
	}
}

// Push appends an event
func (q *EventQueue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns buffered event count
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Consume returns buffered events in push order and empties the queue
// The returned slice is valid until the next Consume
func (q *EventQueue) Consume() []Event {
	out := q.events
	q.events = q.spare[:0]
	q.spare = out
	return out
}

// Clear drops buffered events
func (q *EventQueue) Clear() {
	q.events = q.events[:0]
}
