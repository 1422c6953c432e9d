package telemetry

import (
	"testing"
	"time"

	"github.com/frudas24/astralgesture/internal/gesture"
)

// TestRing_OverwritesOldest verifies the buffer stays bounded.
func TestRing_OverwritesOldest(t *testing.T) {
	r := New(3)
	for i := 1; i <= 5; i++ {
		r.Add(Record{Total: float64(i)})
	}
	got := r.Recent(0)
	if len(got) != 3 || got[0].Total != 3 || got[2].Total != 5 {
		t.Fatalf("expected [3 4 5], got %+v", got)
	}
	if last := r.Recent(1); len(last) != 1 || last[0].Total != 5 {
		t.Fatalf("expected newest record, got %+v", last)
	}
}

// TestRing_DefaultCapacity verifies non-positive capacities use the default.
func TestRing_DefaultCapacity(t *testing.T) {
	r := New(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		r.Add(Record{})
	}
	if r.Len() != DefaultCapacity {
		t.Fatalf("expected %d records, got %d", DefaultCapacity, r.Len())
	}
}

// TestRing_RecordsOnlyGestureEnds verifies the ring ignores streaming commands.
func TestRing_RecordsOnlyGestureEnds(t *testing.T) {
	r := New(8)
	at := time.Unix(50, 0)
	r.SetNowFunc(func() time.Time { return at })
	gesture.Dispatch(r, []gesture.Command{
		{Type: gesture.CmdGestureStart, Gesture: gesture.KindSeek},
		{Type: gesture.CmdSeek, Seek: time.Second},
		{Type: gesture.CmdGestureEnd, Summary: gesture.Summary{Kind: gesture.KindSeek, Success: true, Total: 1000, Duration: 80 * time.Millisecond}},
	})
	got := r.Recent(0)
	if len(got) != 1 || got[0].Kind != gesture.KindSeek || got[0].DurationMs != 80 || !got[0].At.Equal(at) {
		t.Fatalf("unexpected records %+v", got)
	}
}

// TestRing_Stats verifies per-family aggregates.
func TestRing_Stats(t *testing.T) {
	r := New(8)
	r.Add(Record{Kind: gesture.KindSeek, Success: true, Total: 3000})
	r.Add(Record{Kind: gesture.KindSeek, Success: false, Total: 500})
	r.Add(Record{Kind: gesture.KindTap, Success: true})

	st := r.Stats()
	if st.Count != 3 {
		t.Fatalf("expected 3 records, got %d", st.Count)
	}
	seek := st.ByKind[gesture.KindSeek]
	if seek.Count != 2 || seek.Successes != 1 || seek.SuccessRate != 0.5 || seek.MeanTotal != 1750 {
		t.Fatalf("unexpected seek stats %+v", seek)
	}
	if st.ByKind[gesture.KindTap].Count != 1 {
		t.Fatalf("unexpected tap stats %+v", st.ByKind)
	}
}
