// Package session holds runtime state for the active viewer.
package session

import (
	"sync"

	"github.com/frudas24/astralgesture/internal/gesture"
)

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool
	InputEnabled  bool
	Connected     bool
	Geometry      gesture.Geometry
}

// Session holds runtime state for the active viewer.
type Session struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	inputEnabled  bool
	connected     bool
	geometry      gesture.Geometry
}

// New returns an initialized session with the given password and surface size.
func New(password string, geo gesture.Geometry) *Session {
	return &Session{
		password:     password,
		inputEnabled: true,
		geometry:     geo,
	}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass != "" && pass == s.password {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetInputEnabled toggles whether pointer events reach the gesture engine.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether pointer events reach the gesture engine.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// SetConnected records whether a control connection is open.
func (s *Session) SetConnected(connected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = connected
}

// SetGeometry stores the surface size reported by the client.
func (s *Session) SetGeometry(g gesture.Geometry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geometry = g
}

// Geometry returns the surface size used to map normalized coordinates.
func (s *Session) Geometry() gesture.Geometry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.geometry
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Authenticated: s.authenticated,
		InputEnabled:  s.inputEnabled,
		Connected:     s.connected,
		Geometry:      s.geometry,
	}
}
