package gesture

import (
	"fmt"
	"math"
	"time"
)

// Side selects a physical side of the surface.
type Side string

const (
	// SideLeft is the left column.
	SideLeft Side = "left"
	// SideRight is the right column.
	SideRight Side = "right"
)

// SeekArea restricts where a seek drag may start.
type SeekArea string

const (
	// SeekAnywhere lets horizontal drags seek from any live zone.
	SeekAnywhere SeekArea = "anywhere"
	// SeekCenterOnly only accepts seek drags that start in the center column.
	SeekCenterOnly SeekArea = "center"
)

// SeekRangeMode selects how a horizontal drag maps to a seek span.
type SeekRangeMode string

const (
	// SeekRangeFixed maps a full-width sweep to FixedRange.
	SeekRangeFixed SeekRangeMode = "fixed"
	// SeekRangeDynamic picks the span from the drag distance buckets.
	SeekRangeDynamic SeekRangeMode = "dynamic"
)

// SpeedLevel is one rung of the hold-to-seek ladder.
type SpeedLevel struct {
	Speed float64
	// After is the hold time since long-press activation at which the level engages.
	After time.Duration
}

// SeekBucket maps drags shorter than UpTo (fraction of width) to Range.
type SeekBucket struct {
	UpTo  float64
	Range time.Duration
}

// TapSettings tunes tap and double-tap recognition.
type TapSettings struct {
	MaxTapDuration       time.Duration
	DoubleTapTimeout     time.Duration
	MaxDoubleTapDistance float64
	TouchSlop            float64
	DoubleTapEnabled     bool
}

// VolumeBoost lets the sink amplify past 100%.
type VolumeBoost struct {
	Enabled bool
	Ceiling float64
}

// LevelSettings tunes vertical volume and brightness drags.
type LevelSettings struct {
	VolumeEnabled         bool
	BrightnessEnabled     bool
	VolumeSide            Side
	VolumeStep            float64
	BrightnessStep        float64
	VolumeSensitivity     float64
	BrightnessSensitivity float64
	MinStep               float64
	SuccessThreshold      float64
	Boost                 VolumeBoost
}

// SeekSettings tunes horizontal seek drags.
type SeekSettings struct {
	Enabled          bool
	Area             SeekArea
	RangeMode        SeekRangeMode
	FixedRange       time.Duration
	Buckets          []SeekBucket
	Sensitivity      float64
	MinStep          time.Duration
	SuccessThreshold time.Duration
}

// LongPressSettings tunes hold-to-seek and its direction tracker.
type LongPressSettings struct {
	Enabled             bool
	Timeout             time.Duration
	Ladder              []SpeedLevel
	DirectionDistance   float64
	DirectionWindow     time.Duration
	DirectionConfidence float64
	DirectionCooldown   time.Duration
}

// Settings is the read-only configuration snapshot used by one session.
type Settings struct {
	Layout           ZoneLayout
	MinSwipeDistance float64
	Tap              TapSettings
	Level            LevelSettings
	Seek             SeekSettings
	LongPress        LongPressSettings
}

// DefaultSettings returns the stock MX-style configuration.
func DefaultSettings() Settings {
	return Settings{
		Layout:           DefaultZoneLayout(),
		MinSwipeDistance: 50,
		Tap: TapSettings{
			MaxTapDuration:       200 * time.Millisecond,
			DoubleTapTimeout:     300 * time.Millisecond,
			MaxDoubleTapDistance: 100,
			TouchSlop:            24,
			DoubleTapEnabled:     true,
		},
		Level: LevelSettings{
			VolumeEnabled:         true,
			BrightnessEnabled:     true,
			VolumeSide:            SideRight,
			VolumeStep:            1,
			BrightnessStep:        1,
			VolumeSensitivity:     1,
			BrightnessSensitivity: 1,
			MinStep:               0.005,
			SuccessThreshold:      0.01,
			Boost:                 VolumeBoost{Enabled: false, Ceiling: 2},
		},
		Seek: SeekSettings{
			Enabled:          true,
			Area:             SeekAnywhere,
			RangeMode:        SeekRangeDynamic,
			FixedRange:       30 * time.Second,
			Buckets:          DefaultSeekBuckets(),
			Sensitivity:      1,
			MinStep:          100 * time.Millisecond,
			SuccessThreshold: time.Second,
		},
		LongPress: LongPressSettings{
			Enabled:             true,
			Timeout:             500 * time.Millisecond,
			Ladder:              DefaultSpeedLadder(),
			DirectionDistance:   60,
			DirectionWindow:     200 * time.Millisecond,
			DirectionConfidence: 0.7,
			DirectionCooldown:   250 * time.Millisecond,
		},
	}
}

// DefaultSeekBuckets returns the dynamic seek spans keyed by drag distance.
func DefaultSeekBuckets() []SeekBucket {
	return []SeekBucket{
		{UpTo: 0.10, Range: 10 * time.Second},
		{UpTo: 0.50, Range: 30 * time.Second},
		{UpTo: 0.80, Range: 60 * time.Second},
		{UpTo: math.Inf(1), Range: 120 * time.Second},
	}
}

// DefaultSpeedLadder returns 2x..32x, one rung every 1.5s of hold.
func DefaultSpeedLadder() []SpeedLevel {
	return []SpeedLevel{
		{Speed: 2, After: 0},
		{Speed: 4, After: 1500 * time.Millisecond},
		{Speed: 8, After: 3 * time.Second},
		{Speed: 16, After: 4500 * time.Millisecond},
		{Speed: 32, After: 6 * time.Second},
	}
}

// Validate rejects settings that would make recognition ambiguous.
func (s Settings) Validate() error {
	if err := s.Layout.Validate(); err != nil {
		return err
	}
	if !(s.MinSwipeDistance > 0) {
		return invalid("min_swipe_distance must be > 0")
	}

	t := s.Tap
	if t.MaxTapDuration <= 0 {
		return invalid("tap.max_tap_duration must be > 0")
	}
	if t.DoubleTapTimeout <= 0 {
		return invalid("tap.double_tap_timeout must be > 0")
	}
	if t.MaxDoubleTapDistance < 0 || t.TouchSlop < 0 {
		return invalid("tap distances must be >= 0")
	}

	l := s.Level
	if l.VolumeSide != SideLeft && l.VolumeSide != SideRight {
		return invalid("level.volume_side must be %q or %q", SideLeft, SideRight)
	}
	if l.VolumeStep <= 0 || l.BrightnessStep <= 0 {
		return invalid("level steps must be > 0")
	}
	if l.VolumeSensitivity <= 0 || l.BrightnessSensitivity <= 0 {
		return invalid("level sensitivities must be > 0")
	}
	if l.MinStep < 0 || l.SuccessThreshold < 0 {
		return invalid("level thresholds must be >= 0")
	}
	if l.Boost.Enabled && l.Boost.Ceiling <= 1 {
		return invalid("level.boost.ceiling must be > 1 when boost is enabled")
	}

	k := s.Seek
	if k.Area != SeekAnywhere && k.Area != SeekCenterOnly {
		return invalid("seek.area must be %q or %q", SeekAnywhere, SeekCenterOnly)
	}
	switch k.RangeMode {
	case SeekRangeFixed:
		if k.FixedRange <= 0 {
			return invalid("seek.fixed_range must be > 0")
		}
	case SeekRangeDynamic:
		if err := validateBuckets(k.Buckets); err != nil {
			return err
		}
	default:
		return invalid("seek.range must be %q or %q", SeekRangeFixed, SeekRangeDynamic)
	}
	if k.Sensitivity <= 0 {
		return invalid("seek.sensitivity must be > 0")
	}
	if k.MinStep < 0 || k.SuccessThreshold < 0 {
		return invalid("seek thresholds must be >= 0")
	}

	p := s.LongPress
	if p.Enabled {
		if p.Timeout <= 0 {
			return invalid("long_press.timeout must be > 0")
		}
		if err := validateLadder(p.Ladder); err != nil {
			return err
		}
	}
	if p.DirectionDistance <= 0 || p.DirectionWindow <= 0 {
		return invalid("long_press direction distance and window must be > 0")
	}
	if p.DirectionConfidence < 0 || p.DirectionConfidence > 1 {
		return invalid("long_press.direction_confidence must be within [0,1]")
	}
	if p.DirectionCooldown < 0 {
		return invalid("long_press.direction_cooldown must be >= 0")
	}
	return nil
}

// VolumeCeiling is the highest volume level the sink may reach.
func (l LevelSettings) VolumeCeiling() float64 {
	if l.Boost.Enabled {
		return l.Boost.Ceiling
	}
	return 1
}

// clone copies the slices so a snapshot cannot be mutated through the caller's copy.
func (s Settings) clone() Settings {
	s.Seek.Buckets = append([]SeekBucket(nil), s.Seek.Buckets...)
	s.LongPress.Ladder = append([]SpeedLevel(nil), s.LongPress.Ladder...)
	return s
}

// validateBuckets requires increasing upper bounds and positive spans.
func validateBuckets(buckets []SeekBucket) error {
	if len(buckets) == 0 {
		return invalid("seek.buckets must not be empty in dynamic mode")
	}
	prev := 0.0
	for i, b := range buckets {
		if !(b.UpTo > prev) {
			return invalid("seek.buckets[%d].up_to must increase", i)
		}
		if b.Range <= 0 {
			return invalid("seek.buckets[%d].range must be > 0", i)
		}
		prev = b.UpTo
	}
	return nil
}

// validateLadder requires a rung at zero and non-decreasing speeds on increasing thresholds.
func validateLadder(ladder []SpeedLevel) error {
	if len(ladder) == 0 {
		return invalid("long_press.ladder must not be empty")
	}
	if ladder[0].After != 0 {
		return invalid("long_press.ladder[0].after must be 0")
	}
	for i, lvl := range ladder {
		if lvl.Speed < 1 {
			return invalid("long_press.ladder[%d].speed must be >= 1", i)
		}
		if i == 0 {
			continue
		}
		if lvl.Speed < ladder[i-1].Speed {
			return invalid("long_press.ladder speeds must not decrease")
		}
		if lvl.After <= ladder[i-1].After {
			return invalid("long_press.ladder[%d].after must increase", i)
		}
	}
	return nil
}

// invalid wraps ErrInvalidSettings with a field-specific message.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSettings, fmt.Sprintf(format, args...))
}
