package clock

import (
	"errors"
	"testing"
	"time"
)

// TestManual_FiresInDeadlineOrder verifies due timers run in deadline order.
func TestManual_FiresInDeadlineOrder(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	var got []int
	_, _ = m.AfterFunc(30*time.Millisecond, func() { got = append(got, 3) })
	_, _ = m.AfterFunc(10*time.Millisecond, func() { got = append(got, 1) })
	_, _ = m.AfterFunc(20*time.Millisecond, func() { got = append(got, 2) })

	m.Advance(25 * time.Millisecond)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected [1 2], got %v", got)
	}
	m.Advance(5 * time.Millisecond)
	if len(got) != 3 || got[2] != 3 {
		t.Fatalf("expected third timer to fire, got %v", got)
	}
}

// TestManual_NowDuringCallback verifies callbacks observe their own deadline.
func TestManual_NowDuringCallback(t *testing.T) {
	start := time.Unix(0, 0)
	m := NewManual(start)
	var seen time.Time
	_, _ = m.AfterFunc(40*time.Millisecond, func() { seen = m.Now() })
	m.Advance(time.Second)
	if !seen.Equal(start.Add(40 * time.Millisecond)) {
		t.Fatalf("expected callback at +40ms, got %v", seen.Sub(start))
	}
	if !m.Now().Equal(start.Add(time.Second)) {
		t.Fatalf("expected clock at +1s, got %v", m.Now().Sub(start))
	}
}

// TestManual_StopPreventsFire verifies a stopped timer never runs.
func TestManual_StopPreventsFire(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	fired := false
	timer, err := m.AfterFunc(10*time.Millisecond, func() { fired = true })
	if err != nil {
		t.Fatalf("AfterFunc failed: %v", err)
	}
	if !timer.Stop() {
		t.Fatalf("expected first Stop to report true")
	}
	if timer.Stop() {
		t.Fatalf("expected second Stop to report false")
	}
	m.Advance(time.Second)
	if fired || m.Pending() != 0 {
		t.Fatalf("expected no fire and no pending timers, fired=%v pending=%d", fired, m.Pending())
	}
}

// TestManual_ChainedTimersWithinAdvance verifies timers armed by callbacks fire in the same Advance.
func TestManual_ChainedTimersWithinAdvance(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	count := 0
	var arm func()
	arm = func() {
		count++
		if count < 3 {
			_, _ = m.AfterFunc(10*time.Millisecond, arm)
		}
	}
	_, _ = m.AfterFunc(10*time.Millisecond, arm)
	m.Advance(100 * time.Millisecond)
	if count != 3 {
		t.Fatalf("expected 3 chained fires, got %d", count)
	}
}

// TestManual_ClosedRejectsScheduling verifies Close makes AfterFunc fail.
func TestManual_ClosedRejectsScheduling(t *testing.T) {
	m := NewManual(time.Unix(0, 0))
	m.Close()
	if _, err := m.AfterFunc(time.Millisecond, func() {}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

// TestReal_ClosedRejectsScheduling verifies the wall clock refuses timers after Close.
func TestReal_ClosedRejectsScheduling(t *testing.T) {
	r := NewReal()
	timer, err := r.AfterFunc(time.Hour, func() {})
	if err != nil {
		t.Fatalf("AfterFunc failed: %v", err)
	}
	timer.Stop()
	r.Close()
	if _, err := r.AfterFunc(time.Millisecond, func() {}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}
