package network

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// PeerID uniquely identifies a connected peer
type PeerID uint32

// ConnState represents connection lifecycle state
type ConnState uint8

const (
	StateDisconnected ConnState = iota
	StateConnected
	StateDisconnecting
)

// Peer is one websocket client
type Peer struct {
	ID       PeerID
	Addr     string
	State    atomic.Uint32 // ConnState
	LastSeen atomic.Int64  // UnixNano

	OutSeq atomic.Uint32

	conn   *websocket.Conn
	config *Config

	// Pre-encoded frames; snapshots are shared across peers
	sendCh chan []byte

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newPeer(id PeerID, conn *websocket.Conn, cfg *Config) *Peer {
	p := &Peer{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		config:  cfg,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
	p.State.Store(uint32(StateConnected))
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send encodes and queues msg with this peer's sequence number
// Returns false if the peer is disconnected or its queue is full
func (p *Peer) Send(msg *Message) bool {
	if ConnState(p.State.Load()) != StateConnected {
		return false
	}
	clone := *msg
	clone.Seq = p.OutSeq.Add(1)
	data, err := json.Marshal(&clone)
	if err != nil {
		return false
	}
	return p.sendRaw(data)
}

func (p *Peer) sendRaw(data []byte) bool {
	if ConnState(p.State.Load()) != StateConnected {
		return false
	}
	select {
	case p.sendCh <- data:
		return true
	default:
		return false
	}
}

// Close initiates shutdown, safe to call repeatedly
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		p.State.Store(uint32(StateDisconnecting))
		close(p.closeCh)
		p.conn.Close()
	})
}

// Done is closed once the peer shuts down
func (p *Peer) Done() <-chan struct{} {
	return p.closeCh
}

func (p *Peer) readLoop(handler func(*Peer, *Message)) {
	defer p.Close()

	p.conn.SetReadLimit(p.config.MaxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.LastSeen.Store(time.Now().UnixNano())
		return p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))
	})

	for {
		_, payload, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		p.LastSeen.Store(time.Now().UnixNano())
		p.conn.SetReadDeadline(time.Now().Add(p.config.PongTimeout))

		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			p.Send(&Message{Type: MsgError, Payload: errorPayload("malformed message")})
			continue
		}
		handler(p, &msg)
	}
}

// writeLoop is the only writer on the connection
func (p *Peer) writeLoop() {
	ping := time.NewTicker(p.config.PingInterval)
	defer func() {
		ping.Stop()
		p.Close()
	}()

	for {
		select {
		case <-p.closeCh:
			return
		case data := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ping.C:
			p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func errorPayload(reason string) json.RawMessage {
	data, _ := json.Marshal(map[string]string{"error": reason})
	return data
}

// PeerManager tracks connected peers
type PeerManager struct {
	mu       sync.RWMutex
	peers    map[PeerID]*Peer
	nextID   atomic.Uint32
	maxPeers int
	config   *Config

	onConnect    func(*Peer)
	onDisconnect func(PeerID)
	onMessage    func(*Peer, *Message)
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config) *PeerManager {
	return &PeerManager{
		peers:    make(map[PeerID]*Peer),
		maxPeers: cfg.MaxPeers,
		config:   cfg,
	}
}

// SetHandlers configures event callbacks, call before the first connection
func (pm *PeerManager) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(PeerID),
	onMessage func(*Peer, *Message),
) {
	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
	pm.onMessage = onMessage
}

// Add registers an upgraded connection and starts its loops
func (pm *PeerManager) Add(conn *websocket.Conn) (*Peer, error) {
	pm.mu.Lock()
	if len(pm.peers) >= pm.maxPeers {
		pm.mu.Unlock()
		return nil, ErrMaxPeers
	}
	id := PeerID(pm.nextID.Add(1))
	peer := newPeer(id, conn, pm.config)
	pm.peers[id] = peer
	pm.mu.Unlock()

	if pm.onConnect != nil {
		pm.onConnect(peer)
	}

	go peer.readLoop(pm.handleMessage)
	go peer.writeLoop()
	go pm.monitorPeer(peer)

	return peer, nil
}

func (pm *PeerManager) handleMessage(p *Peer, msg *Message) {
	if pm.onMessage != nil {
		pm.onMessage(p, msg)
	}
}

func (pm *PeerManager) monitorPeer(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	if pm.onDisconnect != nil {
		pm.onDisconnect(peer.ID)
	}
}

// Broadcast queues msg for every peer, returns how many accepted it
func (pm *PeerManager) Broadcast(msg *Message) int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	sent := 0
	for _, peer := range pm.peers {
		if peer.Send(msg) {
			sent++
		}
	}
	return sent
}

// PeerCount returns current connected peer count
func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers
func (pm *PeerManager) Close() {
	pm.mu.Lock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, p := range pm.peers {
		peers = append(peers, p)
	}
	pm.mu.Unlock()

	for _, p := range peers {
		p.Close()
	}
}
