package gesture

import (
	"math"
	"time"
)

// horizontalRatio is the minimum |dx|/|dy| for a seek drag.
const horizontalRatio = 2.0

// isHorizontal reports whether a displacement is flat enough for a seek drag.
func isHorizontal(dx, dy float64) bool {
	return math.Abs(dx) >= horizontalRatio*math.Abs(dy)
}

// seekAllowed reports whether a seek drag may start in zone.
func seekAllowed(zone Zone, cfg SeekSettings) bool {
	if !cfg.Enabled {
		return false
	}
	return cfg.Area == SeekAnywhere || zone == ZoneCenter
}

// seekSpan returns the full-width seek span for a drag covering frac of the width.
func seekSpan(frac float64, cfg SeekSettings) time.Duration {
	if cfg.RangeMode == SeekRangeFixed {
		return cfg.FixedRange
	}
	for _, b := range cfg.Buckets {
		if frac < b.UpTo {
			return b.Range
		}
	}
	return cfg.Buckets[len(cfg.Buckets)-1].Range
}

// seekDrag accumulates a horizontal seek. Values are milliseconds.
type seekDrag struct {
	startX  float64
	width   float64
	cfg     SeekSettings
	target  float64
	emitted float64
}

// newSeekDrag starts a seek drag anchored at the session start.
func newSeekDrag(start PointerEvent, geo Geometry, cfg SeekSettings) *seekDrag {
	return &seekDrag{startX: start.X, width: geo.Width, cfg: cfg}
}

// move recomputes the target seek and emits the increment once it reaches MinStep.
func (d *seekDrag) move(x float64) []Command {
	dx := x - d.startX
	span := seekSpan(math.Abs(dx)/d.width, d.cfg)
	d.target = dx / d.width * float64(span.Milliseconds()) * d.cfg.Sensitivity
	rem := math.Round(d.target - d.emitted)
	if rem == 0 || math.Abs(rem) < float64(d.cfg.MinStep.Milliseconds()) {
		return nil
	}
	d.emitted += rem
	return []Command{seekCmd(time.Duration(rem) * time.Millisecond)}
}

// finish flushes the sub-step remainder and reports the total seek.
func (d *seekDrag) finish(zone Zone, s Summary) []Command {
	var out []Command
	if rem := math.Round(d.target - d.emitted); rem != 0 {
		d.emitted += rem
		out = append(out, seekCmd(time.Duration(rem)*time.Millisecond))
	}
	s.Kind = KindSeek
	s.Zone = zone
	s.Total = d.emitted
	s.Success = math.Abs(d.emitted) >= float64(d.cfg.SuccessThreshold.Milliseconds())
	return append(out, endCmd(s))
}
