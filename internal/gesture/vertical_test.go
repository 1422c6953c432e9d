package gesture

import (
	"math"
	"testing"
)

// TestVerticalFamily_FollowsVolumeSide verifies the side columns swap with VolumeSide.
func TestVerticalFamily_FollowsVolumeSide(t *testing.T) {
	cfg := DefaultSettings().Level
	if k := verticalFamily(ZoneRight, cfg); k != KindVolume {
		t.Fatalf("expected volume on right, got %q", k)
	}
	if k := verticalFamily(ZoneLeft, cfg); k != KindBrightness {
		t.Fatalf("expected brightness on left, got %q", k)
	}
	if k := verticalFamily(ZoneCenter, cfg); k != "" {
		t.Fatalf("expected no family in center, got %q", k)
	}

	cfg.VolumeSide = SideLeft
	cfg.BrightnessEnabled = false
	if k := verticalFamily(ZoneLeft, cfg); k != KindVolume {
		t.Fatalf("expected volume on left, got %q", k)
	}
	if k := verticalFamily(ZoneRight, cfg); k != "" {
		t.Fatalf("expected disabled brightness, got %q", k)
	}
}

// TestLevelDrag_UpwardIsPositive verifies upward travel raises the level.
func TestLevelDrag_UpwardIsPositive(t *testing.T) {
	cfg := DefaultSettings().Level
	d := newLevelDrag(KindBrightness, PointerEvent{Y: 500}, Geometry{Width: 1000, Height: 1000}, cfg)
	cmds := d.move(400)
	if len(cmds) != 1 || cmds[0].Type != CmdBrightness || math.Abs(cmds[0].Delta-0.1) > 1e-12 {
		t.Fatalf("expected brightness +0.1, got %v", cmds)
	}
	cmds = d.move(600)
	if len(cmds) != 1 || math.Abs(cmds[0].Delta+0.2) > 1e-12 {
		t.Fatalf("expected brightness -0.2, got %v", cmds)
	}
}

// TestLevelDrag_DeltasSumToTotal verifies coalesced remainders are flushed on release.
func TestLevelDrag_DeltasSumToTotal(t *testing.T) {
	cfg := DefaultSettings().Level
	d := newLevelDrag(KindVolume, PointerEvent{Y: 1000}, Geometry{Width: 1000, Height: 1000}, cfg)
	sum := 0.0
	for y := 999.0; y >= 990; y-- {
		for _, c := range d.move(y) {
			sum += c.Delta
		}
	}
	end := d.finish(ZoneRight, cfg, Summary{})
	for _, c := range end {
		if c.Type == CmdVolume {
			sum += c.Delta
		}
	}
	last := end[len(end)-1].Summary
	if math.Abs(sum-0.01) > 1e-12 || math.Abs(last.Total-0.01) > 1e-12 {
		t.Fatalf("expected total 0.01, got sum=%v total=%v", sum, last.Total)
	}
	if !last.Success {
		t.Fatalf("expected success at threshold, got %+v", last)
	}
}

// TestLevelDrag_NotClamped verifies the core leaves range limits to the sink.
func TestLevelDrag_NotClamped(t *testing.T) {
	cfg := DefaultSettings().Level
	cfg.VolumeStep = 3
	d := newLevelDrag(KindVolume, PointerEvent{Y: 1000}, Geometry{Width: 1000, Height: 1000}, cfg)
	cmds := d.move(0)
	if len(cmds) != 1 || math.Abs(cmds[0].Delta-3) > 1e-12 {
		t.Fatalf("expected unclamped +3, got %v", cmds)
	}
}
