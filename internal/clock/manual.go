package clock

import (
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called.
// Due callbacks run synchronously on the advancing goroutine, in deadline order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
	closed bool
}

type manualTimer struct {
	m    *Manual
	at   time.Time
	seq  uint64
	fn   func()
	done bool
}

// NewManual returns a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the simulated time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn at Now()+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) (Timer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrStopped
	}
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &manualTimer{m: m, at: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t, nil
}

// Advance moves time forward by d, firing every timer that comes due.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()
	m.AdvanceTo(target)
}

// AdvanceTo moves time forward to t. Earlier times are ignored.
func (m *Manual) AdvanceTo(t time.Time) {
	for {
		m.mu.Lock()
		if t.Before(m.now) {
			m.mu.Unlock()
			return
		}
		next := m.nextDueLocked(t)
		if next == nil {
			m.now = t
			m.mu.Unlock()
			return
		}
		next.done = true
		m.removeLocked(next)
		m.now = next.at
		m.mu.Unlock()
		next.fn()
	}
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Close makes later AfterFunc calls fail with ErrStopped.
func (m *Manual) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
}

// nextDueLocked returns the earliest timer due at or before t.
func (m *Manual) nextDueLocked(t time.Time) *manualTimer {
	var best *manualTimer
	for _, timer := range m.timers {
		if timer.at.After(t) {
			continue
		}
		if best == nil || timer.at.Before(best.at) || (timer.at.Equal(best.at) && timer.seq < best.seq) {
			best = timer
		}
	}
	return best
}

// removeLocked drops t from the armed set; m.mu must be held.
func (m *Manual) removeLocked(t *manualTimer) {
	for i, timer := range m.timers {
		if timer == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// Stop cancels the timer if it has not fired yet.
func (t *manualTimer) Stop() bool {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if t.done {
		return false
	}
	t.done = true
	t.m.removeLocked(t)
	return true
}
