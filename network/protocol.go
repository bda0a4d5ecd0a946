package network

import (
	"encoding/json"
	"fmt"

	"github.com/lixenwraith/cutin-killer/engine"
	"github.com/lixenwraith/cutin-killer/vmath"
)

// MessageType tags every frame on the stream
type MessageType string

const (
	// Server to client
	MsgWelcome  MessageType = "welcome"
	MsgSnapshot MessageType = "snapshot"
	MsgEvent    MessageType = "event"
	MsgError    MessageType = "error"

	// Client to server
	MsgAttack MessageType = "attack"
)

// Message is the JSON envelope
type Message struct {
	Type    MessageType     `json:"type"`
	Seq     uint32          `json:"seq,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage marshals payload into an envelope
func NewMessage(t MessageType, payload any) (*Message, error) {
	msg := &Message{Type: t}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", t, err)
	}
	msg.Payload = data
	return msg, nil
}

// Welcome is sent once after the upgrade
type Welcome struct {
	Peer     PeerID `json:"peer"`
	Interval int64  `json:"intervalMs"`
}

// AttackRequest asks the server to fire at a level point
type AttackRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Target returns the request as a finite level point
func (r AttackRequest) Target() (vmath.Vec2, error) {
	p := vmath.V(r.X, r.Y)
	if !p.IsFinite() {
		return vmath.Vec2{}, fmt.Errorf("attack target not finite: %v", p)
	}
	return p, nil
}

// EventPayload is the wire form of a simulation event
type EventPayload struct {
	Type     string     `json:"type"`
	NPC      uint64     `json:"npc,omitempty"`
	Position vmath.Vec2 `json:"pos"`
	Frame    int64      `json:"frame"`
}

func eventPayload(ev engine.Event) EventPayload {
	return EventPayload{
		Type:     ev.Type.String(),
		NPC:      uint64(ev.NPC),
		Position: ev.Position,
		Frame:    ev.Frame,
	}
}

// Command is a decoded client request handed to the game loop
type Command struct {
	Peer   PeerID
	Target vmath.Vec2
}
