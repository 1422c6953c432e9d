// Package telemetry keeps a bounded history of finished gestures.
package telemetry

import (
	"sync"
	"time"

	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/samber/lo"
)

// DefaultCapacity is used when a non-positive capacity is requested.
const DefaultCapacity = 256

// Record is one finished gesture.
type Record struct {
	At         time.Time    `json:"at"`
	Kind       gesture.Kind `json:"kind"`
	Zone       gesture.Zone `json:"zone"`
	Success    bool         `json:"success"`
	Total      float64      `json:"total"`
	DurationMs int64        `json:"duration_ms"`
}

// KindStats aggregates the records of one gesture family.
type KindStats struct {
	Count       int     `json:"count"`
	Successes   int     `json:"successes"`
	SuccessRate float64 `json:"success_rate"`
	MeanTotal   float64 `json:"mean_total"`
}

// Stats aggregates the buffered records.
type Stats struct {
	Count  int                        `json:"count"`
	ByKind map[gesture.Kind]KindStats `json:"by_kind"`
}

// Ring is a gesture.Sink that keeps the last N gesture summaries.
// Only gesture ends are recorded; every other command is ignored.
type Ring struct {
	mu   sync.Mutex
	buf  []Record
	next int
	full bool
	now  func() time.Time
}

var _ gesture.Sink = (*Ring)(nil)

// New returns a ring holding up to capacity records.
func New(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{buf: make([]Record, capacity), now: time.Now}
}

// SetNowFunc overrides the clock used to stamp records.
func (r *Ring) SetNowFunc(fn func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		fn = time.Now
	}
	r.now = fn
}

// Add stores a record, overwriting the oldest when full.
func (r *Ring) Add(rec Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = rec
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

// Len returns the number of buffered records.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lenLocked()
}

// Recent returns up to n records, oldest first. n <= 0 returns everything.
func (r *Ring) Recent(n int) []Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	size := r.lenLocked()
	if n <= 0 || n > size {
		n = size
	}
	out := make([]Record, 0, n)
	start := r.next - n
	if start < 0 {
		start += len(r.buf)
	}
	for i := 0; i < n; i++ {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// Stats aggregates every buffered record by gesture family.
func (r *Ring) Stats() Stats {
	records := r.Recent(0)
	groups := lo.GroupBy(records, func(rec Record) gesture.Kind { return rec.Kind })
	byKind := lo.MapValues(groups, func(recs []Record, _ gesture.Kind) KindStats {
		successes := lo.CountBy(recs, func(rec Record) bool { return rec.Success })
		totals := lo.Map(recs, func(rec Record, _ int) float64 { return rec.Total })
		return KindStats{
			Count:       len(recs),
			Successes:   successes,
			SuccessRate: float64(successes) / float64(len(recs)),
			MeanTotal:   lo.Mean(totals),
		}
	})
	return Stats{Count: len(records), ByKind: byKind}
}

// lenLocked returns the buffered count; r.mu must be held.
func (r *Ring) lenLocked() int {
	if r.full {
		return len(r.buf)
	}
	return r.next
}

// OnGestureEnd records a finished gesture.
func (r *Ring) OnGestureEnd(s gesture.Summary) {
	r.mu.Lock()
	at := r.now()
	r.mu.Unlock()
	r.Add(Record{
		At:         at,
		Kind:       s.Kind,
		Zone:       s.Zone,
		Success:    s.Success,
		Total:      s.Total,
		DurationMs: s.Duration.Milliseconds(),
	})
}

func (r *Ring) OnSeek(time.Duration) {}
func (r *Ring) OnVolumeChange(float64) {}
func (r *Ring) OnBrightnessChange(float64) {}
func (r *Ring) OnSpeedChange(float64, gesture.Direction) {}
func (r *Ring) OnTapAction(gesture.TapAction) {}
func (r *Ring) OnGestureStart(gesture.Kind, gesture.Zone) {}
