package gesture

import "math"

// verticalRatio is the minimum |dy|/|dx| for a volume or brightness drag.
const verticalRatio = 1.5

// verticalFamily returns the level gesture owned by a zone, or "" if none.
func verticalFamily(zone Zone, cfg LevelSettings) Kind {
	var side Side
	switch zone {
	case ZoneLeft:
		side = SideLeft
	case ZoneRight:
		side = SideRight
	default:
		return ""
	}
	if side == cfg.VolumeSide {
		if cfg.VolumeEnabled {
			return KindVolume
		}
		return ""
	}
	if cfg.BrightnessEnabled {
		return KindBrightness
	}
	return ""
}

// isVertical reports whether a displacement is steep enough for a level drag.
func isVertical(dx, dy float64) bool {
	return math.Abs(dy) >= verticalRatio*math.Abs(dx)
}

// levelDrag accumulates a volume or brightness drag.
type levelDrag struct {
	kind    Kind
	startY  float64
	height  float64
	scale   float64
	minStep float64
	total   float64
	emitted float64
}

// newLevelDrag starts a level drag anchored at the session start.
func newLevelDrag(kind Kind, start PointerEvent, geo Geometry, cfg LevelSettings) *levelDrag {
	scale := cfg.VolumeStep * cfg.VolumeSensitivity
	if kind == KindBrightness {
		scale = cfg.BrightnessStep * cfg.BrightnessSensitivity
	}
	return &levelDrag{
		kind:    kind,
		startY:  start.Y,
		height:  geo.Height,
		scale:   scale,
		minStep: cfg.MinStep,
	}
}

// move updates the level for a new y and emits once the remainder reaches minStep.
// Upward movement (decreasing y) raises the level.
func (d *levelDrag) move(y float64) []Command {
	d.total = -(y - d.startY) / d.height * d.scale
	rem := d.total - d.emitted
	if rem == 0 || math.Abs(rem) < d.minStep {
		return nil
	}
	d.emitted += rem
	return []Command{levelCmd(d.kind, rem)}
}

// finish flushes the coalesced remainder and reports the session total.
func (d *levelDrag) finish(zone Zone, cfg LevelSettings, s Summary) []Command {
	var out []Command
	if rem := d.total - d.emitted; rem != 0 {
		d.emitted += rem
		out = append(out, levelCmd(d.kind, rem))
	}
	s.Kind = d.kind
	s.Zone = zone
	s.Total = d.total
	s.Success = math.Abs(d.total) >= cfg.SuccessThreshold
	return append(out, endCmd(s))
}
