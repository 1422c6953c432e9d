// Package testutil holds fakes shared by package tests.
package testutil

import (
	"sync"

	"github.com/frudas24/astralgesture/internal/gesture"
)

// Call records a single call into the gesture engine.
type Call struct {
	Name     string
	Event    gesture.PointerEvent
	Geometry gesture.Geometry
}

// FakeInput stands in for the gesture arbitrator and records calls for tests.
type FakeInput struct {
	mu    sync.Mutex
	calls []Call
	// Err is returned from Handle when set.
	Err error
}

// Handle records a pointer event.
func (f *FakeInput) Handle(ev gesture.PointerEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: "Handle", Event: ev})
	return f.Err
}

// Cancel records a cancel.
func (f *FakeInput) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: "Cancel"})
}

// SetGeometry records a geometry change, refusing invalid sizes like the real engine.
func (f *FakeInput) SetGeometry(g gesture.Geometry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Name: "SetGeometry", Geometry: g})
	return g.Validate()
}

// Calls returns a copy of the recorded calls.
func (f *FakeInput) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}
