package live

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"
)

// Manager errors.
var (
	ErrMaxSessionsReached = errors.New("live: maximum session count reached")
)

// Manager tracks every active session and enforces the session cap.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	max      int
	logger   *slog.Logger
	metrics  *metrics
}

// NewManager creates a session manager. max <= 0 means unlimited.
func NewManager(max int, logger *slog.Logger, m *metrics) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		max:      max,
		logger:   logger,
		metrics:  m,
	}
}

// Add registers a session under a fresh ID, or fails at the cap.
func (m *Manager) Add(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.max > 0 && len(m.sessions) >= m.max {
		return ErrMaxSessionsReached
	}
	m.sessions[s.ID] = s
	m.metrics.activeSessions.Inc()
	m.metrics.sessionsTotal.Inc()
	return nil
}

// Get returns the session with the given ID, or nil.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[id]
}

// Remove drops a session from the registry.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; ok {
		delete(m.sessions, id)
		m.metrics.activeSessions.Dec()
	}
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Shutdown closes every session.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Close()
		m.metrics.activeSessions.Dec()
	}
	m.logger.Info("all sessions closed", "count", len(sessions))
}

// newSessionID returns a 128-bit random hex ID.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("live: crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}
