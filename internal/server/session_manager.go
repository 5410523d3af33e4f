package server

import (
	"sync"

	"github.com/google/uuid"
)

// SessionManager maps opaque session tokens to account logins.
//
// Thread-safe: all methods are protected by sync.RWMutex.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]string // token → login
}

// NewSessionManager creates an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]string)}
}

// Create issues a fresh token for login.
func (m *SessionManager) Create(login string) string {
	token := uuid.NewString()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = login
	return token
}

// Resolve returns the login behind a token.
func (m *SessionManager) Resolve(token string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	login, ok := m.sessions[token]
	return login, ok
}

// Invalidate drops a token.
func (m *SessionManager) Invalidate(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
