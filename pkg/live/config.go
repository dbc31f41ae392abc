package live

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures the live server.
type Config struct {
	// Addr is the listen address (default ":8420").
	Addr string

	// MaxSessions caps concurrent sessions; 0 means the default.
	MaxSessions int

	// MaxEventQueue is the per-session buffered event capacity. Events
	// beyond it are dropped with an error frame.
	MaxEventQueue int

	// ReadTimeout bounds waiting for a client frame.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration

	// HeartbeatInterval is the server ping cadence.
	HeartbeatInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the Origin header on upgrade. Nil allows
	// same-host only (gorilla's default).
	CheckOrigin func(*http.Request) bool

	// Registry receives the server's Prometheus metrics. Defaults to
	// the global registerer.
	Registry prometheus.Registerer
}

// DefaultConfig returns the default live server configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:              ":8420",
		MaxSessions:       1000,
		MaxEventQueue:     64,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		Registry:          prometheus.DefaultRegisterer,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	if c == nil {
		return DefaultConfig()
	}
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.MaxSessions == 0 {
		c.MaxSessions = d.MaxSessions
	}
	if c.MaxEventQueue == 0 {
		c.MaxEventQueue = d.MaxEventQueue
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.HeartbeatInterval == 0 {
		c.HeartbeatInterval = d.HeartbeatInterval
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.Registry == nil {
		c.Registry = d.Registry
	}
	return c
}

// Validate reports configuration mistakes.
func (c *Config) Validate() error {
	if c.MaxSessions < 0 {
		return fmt.Errorf("live: MaxSessions must be >= 0, got %d", c.MaxSessions)
	}
	if c.MaxEventQueue < 0 {
		return fmt.Errorf("live: MaxEventQueue must be >= 0, got %d", c.MaxEventQueue)
	}
	if c.HeartbeatInterval > 0 && c.ReadTimeout > 0 && c.HeartbeatInterval >= c.ReadTimeout {
		return fmt.Errorf("live: HeartbeatInterval (%v) must be shorter than ReadTimeout (%v)",
			c.HeartbeatInterval, c.ReadTimeout)
	}
	return nil
}
