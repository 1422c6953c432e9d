package session

import (
	"testing"

	"github.com/frudas24/astralgesture/internal/gesture"
)

func newTestSession() *Session {
	return New("secret", gesture.Geometry{Width: 1920, Height: 1080})
}

// TestAuthenticate_Success verifies successful authentication.
func TestAuthenticate_Success(t *testing.T) {
	s := newTestSession()
	if !s.Authenticate("secret") {
		t.Fatalf("expected authentication to succeed")
	}
	if !s.IsAuthenticated() {
		t.Fatalf("expected authenticated state")
	}
}

// TestAuthenticate_Fail verifies failed authentication.
func TestAuthenticate_Fail(t *testing.T) {
	s := newTestSession()
	if s.Authenticate("nope") {
		t.Fatalf("expected authentication to fail")
	}
	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated state")
	}
}

// TestAuthenticate_EmptyPassword verifies an empty password never authenticates.
func TestAuthenticate_EmptyPassword(t *testing.T) {
	s := New("", gesture.Geometry{})
	if s.Authenticate("") {
		t.Fatalf("expected empty password to be refused")
	}
}

// TestLogout verifies logout clears auth state.
func TestLogout(t *testing.T) {
	s := newTestSession()
	s.Authenticate("secret")
	s.Logout()
	if s.IsAuthenticated() {
		t.Fatalf("expected unauthenticated state")
	}
}

// TestInputEnabled_Toggle verifies input enabled toggle.
func TestInputEnabled_Toggle(t *testing.T) {
	s := newTestSession()
	s.SetInputEnabled(false)
	if s.InputEnabled() {
		t.Fatalf("expected input disabled")
	}
	s.SetInputEnabled(true)
	if !s.InputEnabled() {
		t.Fatalf("expected input enabled")
	}
}

// TestSnapshot verifies snapshot content.
func TestSnapshot(t *testing.T) {
	s := newTestSession()
	s.Authenticate("secret")
	s.SetInputEnabled(false)
	s.SetConnected(true)
	s.SetGeometry(gesture.Geometry{Width: 800, Height: 600})
	snap := s.Snapshot()
	if !snap.Authenticated || snap.InputEnabled || !snap.Connected || snap.Geometry.Width != 800 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}
