package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/cutin-killer/engine"
)

// ErrMaxPeers is returned when the peer limit is reached
var ErrMaxPeers = errors.New("max peers reached")

// Server streams snapshots and events to websocket spectators and accepts attack commands
type Server struct {
	config   *Config
	log      zerolog.Logger
	peers    *PeerManager
	upgrader websocket.Upgrader

	commands chan Command

	listener net.Listener
	http     *http.Server

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewServer creates a stopped server, nil cfg selects DefaultConfig
func NewServer(cfg *Config, log zerolog.Logger) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Server{
		config:   cfg,
		log:      log.With().Str("component", "stream").Logger(),
		peers:    NewPeerManager(cfg),
		commands: make(chan Command, cfg.CommandQueueSize),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
	s.peers.SetHandlers(s.onConnect, s.onDisconnect, s.onMessage)
	return s
}

// Handler serves /ws and /health
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWebSocket)
	mux.HandleFunc("/health", s.health)
	return mux
}

// Start binds the configured address and serves in the background
func (s *Server) Start() error {
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("listen %s: %w", s.config.Address, err)
	}
	s.listener = ln
	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("stream server stopped")
		}
	}()

	s.log.Info().Str("addr", ln.Addr().String()).Dur("interval", s.config.Interval).Msg("stream server listening")
	return nil
}

// Addr returns the bound address, empty before Start
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop closes the listener and every peer
func (s *Server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.WriteTimeout)
	defer cancel()
	err := s.http.Shutdown(ctx)
	s.peers.Close()
	s.wg.Wait()
	return err
}

// Commands delivers decoded client requests; the game loop drains it
func (s *Server) Commands() <-chan Command {
	return s.commands
}

// PeerCount returns connected peer count
func (s *Server) PeerCount() int {
	return s.peers.PeerCount()
}

// BroadcastSnapshot sends snap to every peer
func (s *Server) BroadcastSnapshot(snap engine.Snapshot) int {
	msg, err := NewMessage(MsgSnapshot, snap)
	if err != nil {
		s.log.Error().Err(err).Msg("snapshot encode failed")
		return 0
	}
	return s.peers.Broadcast(msg)
}

// BroadcastEvent forwards one simulation event, non-blocking
func (s *Server) BroadcastEvent(ev engine.Event) {
	if s.peers.PeerCount() == 0 {
		return
	}
	msg, err := NewMessage(MsgEvent, eventPayload(ev))
	if err != nil {
		return
	}
	s.peers.Broadcast(msg)
}

// Run broadcasts source() every interval until ctx is done
func (s *Server) Run(ctx context.Context, source func() engine.Snapshot) {
	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.peers.PeerCount() > 0 {
				s.BroadcastSnapshot(source())
			}
		}
	}
}

func (s *Server) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("upgrade failed")
		return
	}

	if _, err := s.peers.Add(conn); err != nil {
		msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
		conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
		conn.WriteMessage(websocket.CloseMessage, msg)
		conn.Close()
		s.log.Warn().Str("remote", r.RemoteAddr).Msg("peer rejected, limit reached")
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":     "ok",
		"peers":      s.peers.PeerCount(),
		"intervalMs": s.config.Interval.Milliseconds(),
	})
}

func (s *Server) onConnect(p *Peer) {
	s.log.Info().Uint32("peer", uint32(p.ID)).Str("remote", p.Addr).Msg("peer connected")
	msg, err := NewMessage(MsgWelcome, Welcome{Peer: p.ID, Interval: s.config.Interval.Milliseconds()})
	if err == nil {
		p.Send(msg)
	}
}

func (s *Server) onDisconnect(id PeerID) {
	s.log.Info().Uint32("peer", uint32(id)).Msg("peer disconnected")
}

func (s *Server) onMessage(p *Peer, msg *Message) {
	switch msg.Type {
	case MsgAttack:
		var req AttackRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			p.Send(&Message{Type: MsgError, Payload: errorPayload("malformed attack")})
			return
		}
		target, err := req.Target()
		if err != nil {
			p.Send(&Message{Type: MsgError, Payload: errorPayload(err.Error())})
			return
		}
		select {
		case s.commands <- Command{Peer: p.ID, Target: target}:
		default:
			s.log.Debug().Uint32("peer", uint32(p.ID)).Msg("command queue full, attack dropped")
		}
	default:
		p.Send(&Message{Type: MsgError, Payload: errorPayload("unknown message type")})
	}
}
