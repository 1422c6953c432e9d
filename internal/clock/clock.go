// Package clock provides the time source and cancelable deadline timers
// used by gesture detection.
package clock

import (
	"errors"
	"sync"
	"time"
)

// ErrStopped is returned when a timer is requested from a closed clock.
var ErrStopped = errors.New("clock stopped")

// Timer is a scheduled callback that can be cancelled before it fires.
type Timer interface {
	// Stop cancels the timer. It reports false if the timer already fired or was stopped.
	Stop() bool
}

// Clock reports the current time and schedules deadline callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) (Timer, error)
}

// Real is a Clock backed by the runtime timers.
type Real struct {
	mu     sync.Mutex
	closed bool
}

// NewReal returns a wall-clock implementation.
func NewReal() *Real {
	return &Real{}
}

// Now returns the wall-clock time.
func (r *Real) Now() time.Time {
	return time.Now()
}

// AfterFunc runs fn on its own goroutine after d elapses.
func (r *Real) AfterFunc(d time.Duration, fn func()) (Timer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrStopped
	}
	return time.AfterFunc(d, fn), nil
}

// Close rejects further scheduling. Timers already armed keep running.
func (r *Real) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}
