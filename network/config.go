package network

import "time"

// Config holds stream server configuration
type Config struct {
	// Address to bind, host:port
	Address string

	// Connection limits
	MaxPeers       int
	MaxMessageSize int64

	// Timing
	Interval     time.Duration // Snapshot broadcast period
	WriteTimeout time.Duration
	PongTimeout  time.Duration
	PingInterval time.Duration

	// Buffer sizes
	SendQueueSize    int
	CommandQueueSize int
}

// DefaultConfig returns defaults for a local spectator stream
func DefaultConfig() *Config {
	return &Config{
		Address:          "localhost:8090",
		MaxPeers:         16,
		MaxMessageSize:   4 * 1024,
		Interval:         50 * time.Millisecond,
		WriteTimeout:     5 * time.Second,
		PongTimeout:      30 * time.Second,
		PingInterval:     10 * time.Second,
		SendQueueSize:    64,
		CommandQueueSize: 32,
	}
}
