package gesture

import (
	"math"
	"time"
)

// Movement summarizes the recent trajectory of a held pointer.
type Movement struct {
	DX float64
	DY float64
	// Confidence is |net dx| / horizontal path length, 1 for a straight swipe.
	Confidence float64
}

// Direction returns the horizontal direction of the movement.
func (m Movement) Direction() Direction {
	if m.DX < 0 {
		return Backward
	}
	return Forward
}

type sample struct {
	at time.Time
	x  float64
	y  float64
}

// tracker keeps a rolling window of samples and detects horizontal reversals.
type tracker struct {
	window     time.Duration
	distance   float64
	confidence float64
	cooldown   time.Duration
	samples    []sample
	lastFlip   time.Time
}

// newTracker starts a tracker whose first window opens at anchor.
func newTracker(cfg LongPressSettings, anchor PointerEvent) *tracker {
	return &tracker{
		window:     cfg.DirectionWindow,
		distance:   cfg.DirectionDistance,
		confidence: cfg.DirectionConfidence,
		cooldown:   cfg.DirectionCooldown,
		samples:    []sample{{at: anchor.At, x: anchor.X, y: anchor.Y}},
	}
}

// add appends a sample and drops those older than the window.
func (t *tracker) add(ev PointerEvent) {
	t.samples = append(t.samples, sample{at: ev.At, x: ev.X, y: ev.Y})
	cut := 0
	for cut < len(t.samples)-1 && ev.At.Sub(t.samples[cut].at) > t.window {
		cut++
	}
	t.samples = t.samples[cut:]
}

// movement measures the window.
func (t *tracker) movement() Movement {
	if len(t.samples) < 2 {
		return Movement{}
	}
	first, last := t.samples[0], t.samples[len(t.samples)-1]
	path := 0.0
	for i := 1; i < len(t.samples); i++ {
		path += math.Abs(t.samples[i].x - t.samples[i-1].x)
	}
	m := Movement{DX: last.x - first.x, DY: last.y - first.y}
	if path > 0 {
		m.Confidence = math.Abs(m.DX) / path
	}
	return m
}

// reversal reports a new direction when the window shows a confident swipe
// against current. A flip restarts the window from the latest sample and
// starts the cooldown.
func (t *tracker) reversal(current Direction, now time.Time) (Direction, bool) {
	m := t.movement()
	if math.Abs(m.DX) < t.distance || math.Abs(m.DX) <= math.Abs(m.DY) {
		return current, false
	}
	if m.Confidence < t.confidence {
		return current, false
	}
	dir := m.Direction()
	if dir == current {
		return current, false
	}
	if !t.lastFlip.IsZero() && now.Sub(t.lastFlip) < t.cooldown {
		return current, false
	}
	t.lastFlip = now
	t.samples = t.samples[len(t.samples)-1:]
	return dir, true
}
