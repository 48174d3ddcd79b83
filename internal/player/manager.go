package player

import (
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"foxform/internal/domains"
)

// Manager owns the live sessions. Sessions are in-memory only; idle ones are
// reaped by the janitor via SweepExpired.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	sink     ResponseSink
	ttl      time.Duration
}

func NewManager(sink ResponseSink, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{
		sessions: make(map[string]*Session),
		sink:     sink,
		ttl:      ttl,
	}
}

// Create starts a session for the given form.
func (m *Manager) Create(form domains.Form) (*Session, error) {
	s, err := NewSession(form, m.sink)
	if err != nil {
		return nil, err
	}
	s.ID = uuid.Must(uuid.NewV4()).String()

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Remove drops a session and cancels its timers.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// SweepExpired closes and drops every session idle for longer than the TTL.
// Submitted sessions count as idle immediately.
func (m *Manager) SweepExpired(now time.Time) int {
	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		snap := s.Snapshot()
		if snap.State == StateSubmitted || now.Sub(s.LastTouch()) > m.ttl {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	return len(expired)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
