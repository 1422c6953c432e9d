package gesture

import (
	"testing"
	"time"
)

// TestSeekSpan_DynamicBuckets verifies each bucket owns drags below its upper bound.
func TestSeekSpan_DynamicBuckets(t *testing.T) {
	cfg := DefaultSettings().Seek
	cases := []struct {
		frac float64
		want time.Duration
	}{
		{0.05, 10 * time.Second},
		{0.10, 30 * time.Second},
		{0.40, 30 * time.Second},
		{0.50, 60 * time.Second},
		{0.79, 60 * time.Second},
		{0.95, 120 * time.Second},
		{1.00, 120 * time.Second},
	}
	for _, c := range cases {
		if got := seekSpan(c.frac, cfg); got != c.want {
			t.Fatalf("frac=%v: expected %v, got %v", c.frac, c.want, got)
		}
	}
}

// TestSeekSpan_Fixed verifies fixed mode ignores the drag distance.
func TestSeekSpan_Fixed(t *testing.T) {
	cfg := DefaultSettings().Seek
	cfg.RangeMode = SeekRangeFixed
	cfg.FixedRange = 90 * time.Second
	if got := seekSpan(0.05, cfg); got != 90*time.Second {
		t.Fatalf("expected 90s, got %v", got)
	}
}

// TestSeekAllowed_CenterOnly verifies the area restriction.
func TestSeekAllowed_CenterOnly(t *testing.T) {
	cfg := DefaultSettings().Seek
	if !seekAllowed(ZoneLeft, cfg) {
		t.Fatalf("expected seek anywhere to allow left zone")
	}
	cfg.Area = SeekCenterOnly
	if seekAllowed(ZoneLeft, cfg) || !seekAllowed(ZoneCenter, cfg) {
		t.Fatalf("expected center-only seek")
	}
	cfg.Enabled = false
	if seekAllowed(ZoneCenter, cfg) {
		t.Fatalf("expected disabled seek to refuse every zone")
	}
}

// TestSeekDrag_CoalescesAndFlushes verifies sub-step travel is held until release.
func TestSeekDrag_CoalescesAndFlushes(t *testing.T) {
	geo := Geometry{Width: 1000, Height: 1000}
	d := newSeekDrag(PointerEvent{X: 500}, geo, DefaultSettings().Seek)

	if cmds := d.move(501); len(cmds) != 0 {
		t.Fatalf("expected coalesced move, got %v", cmds)
	}
	if cmds := d.move(505); len(cmds) != 0 {
		t.Fatalf("expected coalesced move, got %v", cmds)
	}
	cmds := d.finish(ZoneCenter, Summary{})
	if len(cmds) != 2 || cmds[0].Seek != 50*time.Millisecond {
		t.Fatalf("expected flushed +50ms, got %v", cmds)
	}
	end := cmds[1].Summary
	if end.Total != 50 || end.Success {
		t.Fatalf("expected unsuccessful 50ms seek, got %+v", end)
	}
}

// TestSeekDrag_Backward verifies leftward drags seek backwards.
func TestSeekDrag_Backward(t *testing.T) {
	geo := Geometry{Width: 1000, Height: 1000}
	d := newSeekDrag(PointerEvent{X: 800}, geo, DefaultSettings().Seek)
	cmds := d.move(400)
	if len(cmds) != 1 || cmds[0].Seek != -12*time.Second {
		t.Fatalf("expected -12s, got %v", cmds)
	}
}
