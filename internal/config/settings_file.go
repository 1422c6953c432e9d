package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// File is the user-facing gesture settings document.
//
// It maps 1:1 to gesture.Settings but uses YAML-friendly types: durations
// are milliseconds and the last seek bucket may leave up_to at 0 to mean
// "any longer drag".
type File struct {
	Layout           LayoutFile    `yaml:"layout" json:"layout"`
	MinSwipeDistance float64       `yaml:"min_swipe_distance" json:"min_swipe_distance"`
	Tap              TapFile       `yaml:"tap" json:"tap"`
	Level            LevelFile     `yaml:"level" json:"level"`
	Seek             SeekFile      `yaml:"seek" json:"seek"`
	LongPress        LongPressFile `yaml:"long_press" json:"long_press"`
}

type LayoutFile struct {
	DeadZoneTop    float64 `yaml:"dead_zone_top" json:"dead_zone_top"`
	DeadZoneBottom float64 `yaml:"dead_zone_bottom" json:"dead_zone_bottom"`
	LeftZoneWidth  float64 `yaml:"left_zone_width" json:"left_zone_width"`
	RightZoneWidth float64 `yaml:"right_zone_width" json:"right_zone_width"`
}

type TapFile struct {
	MaxTapDurationMS     int     `yaml:"max_tap_duration_ms" json:"max_tap_duration_ms"`
	DoubleTapTimeoutMS   int     `yaml:"double_tap_timeout_ms" json:"double_tap_timeout_ms"`
	MaxDoubleTapDistance float64 `yaml:"max_double_tap_distance" json:"max_double_tap_distance"`
	TouchSlop            float64 `yaml:"touch_slop" json:"touch_slop"`
	DoubleTapEnabled     bool    `yaml:"double_tap_enabled" json:"double_tap_enabled"`
}

type LevelFile struct {
	VolumeEnabled         bool    `yaml:"volume_enabled" json:"volume_enabled"`
	BrightnessEnabled     bool    `yaml:"brightness_enabled" json:"brightness_enabled"`
	VolumeSide            string  `yaml:"volume_side" json:"volume_side"`
	VolumeStep            float64 `yaml:"volume_step" json:"volume_step"`
	BrightnessStep        float64 `yaml:"brightness_step" json:"brightness_step"`
	VolumeSensitivity     float64 `yaml:"volume_sensitivity" json:"volume_sensitivity"`
	BrightnessSensitivity float64 `yaml:"brightness_sensitivity" json:"brightness_sensitivity"`
	MinStep               float64 `yaml:"min_step" json:"min_step"`
	SuccessThreshold      float64 `yaml:"success_threshold" json:"success_threshold"`
	BoostEnabled          bool    `yaml:"boost_enabled" json:"boost_enabled"`
	BoostCeiling          float64 `yaml:"boost_ceiling" json:"boost_ceiling"`
}

type SeekFile struct {
	Enabled            bool             `yaml:"enabled" json:"enabled"`
	Area               string           `yaml:"area" json:"area"`
	Range              string           `yaml:"range" json:"range"`
	FixedRangeMS       int              `yaml:"fixed_range_ms" json:"fixed_range_ms"`
	Buckets            []SeekBucketFile `yaml:"buckets,omitempty" json:"buckets,omitempty"`
	Sensitivity        float64          `yaml:"sensitivity" json:"sensitivity"`
	MinStepMS          int              `yaml:"min_step_ms" json:"min_step_ms"`
	SuccessThresholdMS int              `yaml:"success_threshold_ms" json:"success_threshold_ms"`
}

type SeekBucketFile struct {
	UpTo    float64 `yaml:"up_to,omitempty" json:"up_to,omitempty"`
	RangeMS int     `yaml:"range_ms" json:"range_ms"`
}

type LongPressFile struct {
	Enabled             bool             `yaml:"enabled" json:"enabled"`
	TimeoutMS           int              `yaml:"timeout_ms" json:"timeout_ms"`
	Ladder              []SpeedLevelFile `yaml:"ladder" json:"ladder"`
	DirectionDistance   float64          `yaml:"direction_distance" json:"direction_distance"`
	DirectionWindowMS   int              `yaml:"direction_window_ms" json:"direction_window_ms"`
	DirectionConfidence float64          `yaml:"direction_confidence" json:"direction_confidence"`
	DirectionCooldownMS int              `yaml:"direction_cooldown_ms" json:"direction_cooldown_ms"`
}

type SpeedLevelFile struct {
	Speed   float64 `yaml:"speed" json:"speed"`
	AfterMS int     `yaml:"after_ms" json:"after_ms"`
}

// DefaultFile returns the file form of gesture.DefaultSettings.
func DefaultFile() File {
	return FromSettings(gesture.DefaultSettings())
}

// FromSettings converts engine settings into the file form.
func FromSettings(s gesture.Settings) File {
	return File{
		Layout: LayoutFile{
			DeadZoneTop:    s.Layout.DeadZoneTop,
			DeadZoneBottom: s.Layout.DeadZoneBottom,
			LeftZoneWidth:  s.Layout.LeftZoneWidth,
			RightZoneWidth: s.Layout.RightZoneWidth,
		},
		MinSwipeDistance: s.MinSwipeDistance,
		Tap: TapFile{
			MaxTapDurationMS:     toMS(s.Tap.MaxTapDuration),
			DoubleTapTimeoutMS:   toMS(s.Tap.DoubleTapTimeout),
			MaxDoubleTapDistance: s.Tap.MaxDoubleTapDistance,
			TouchSlop:            s.Tap.TouchSlop,
			DoubleTapEnabled:     s.Tap.DoubleTapEnabled,
		},
		Level: LevelFile{
			VolumeEnabled:         s.Level.VolumeEnabled,
			BrightnessEnabled:     s.Level.BrightnessEnabled,
			VolumeSide:            string(s.Level.VolumeSide),
			VolumeStep:            s.Level.VolumeStep,
			BrightnessStep:        s.Level.BrightnessStep,
			VolumeSensitivity:     s.Level.VolumeSensitivity,
			BrightnessSensitivity: s.Level.BrightnessSensitivity,
			MinStep:               s.Level.MinStep,
			SuccessThreshold:      s.Level.SuccessThreshold,
			BoostEnabled:          s.Level.Boost.Enabled,
			BoostCeiling:          s.Level.Boost.Ceiling,
		},
		Seek: SeekFile{
			Enabled:      s.Seek.Enabled,
			Area:         string(s.Seek.Area),
			Range:        string(s.Seek.RangeMode),
			FixedRangeMS: toMS(s.Seek.FixedRange),
			Buckets: lo.Map(s.Seek.Buckets, func(b gesture.SeekBucket, _ int) SeekBucketFile {
				upTo := b.UpTo
				if math.IsInf(upTo, 1) {
					upTo = 0
				}
				return SeekBucketFile{UpTo: upTo, RangeMS: toMS(b.Range)}
			}),
			Sensitivity:        s.Seek.Sensitivity,
			MinStepMS:          toMS(s.Seek.MinStep),
			SuccessThresholdMS: toMS(s.Seek.SuccessThreshold),
		},
		LongPress: LongPressFile{
			Enabled:   s.LongPress.Enabled,
			TimeoutMS: toMS(s.LongPress.Timeout),
			Ladder: lo.Map(s.LongPress.Ladder, func(l gesture.SpeedLevel, _ int) SpeedLevelFile {
				return SpeedLevelFile{Speed: l.Speed, AfterMS: toMS(l.After)}
			}),
			DirectionDistance:   s.LongPress.DirectionDistance,
			DirectionWindowMS:   toMS(s.LongPress.DirectionWindow),
			DirectionConfidence: s.LongPress.DirectionConfidence,
			DirectionCooldownMS: toMS(s.LongPress.DirectionCooldown),
		},
	}
}

// ToSettings converts the file form into validated engine settings.
func (f File) ToSettings() (gesture.Settings, error) {
	if err := f.checkDurations(); err != nil {
		return gesture.Settings{}, err
	}
	for i, b := range f.Seek.Buckets {
		if b.UpTo == 0 && i != len(f.Seek.Buckets)-1 {
			return gesture.Settings{}, fmt.Errorf("%w: seek.buckets[%d].up_to may only be omitted on the last bucket", gesture.ErrInvalidSettings, i)
		}
	}

	s := gesture.Settings{
		Layout: gesture.ZoneLayout{
			DeadZoneTop:    f.Layout.DeadZoneTop,
			DeadZoneBottom: f.Layout.DeadZoneBottom,
			LeftZoneWidth:  f.Layout.LeftZoneWidth,
			RightZoneWidth: f.Layout.RightZoneWidth,
		},
		MinSwipeDistance: f.MinSwipeDistance,
		Tap: gesture.TapSettings{
			MaxTapDuration:       fromMS(f.Tap.MaxTapDurationMS),
			DoubleTapTimeout:     fromMS(f.Tap.DoubleTapTimeoutMS),
			MaxDoubleTapDistance: f.Tap.MaxDoubleTapDistance,
			TouchSlop:            f.Tap.TouchSlop,
			DoubleTapEnabled:     f.Tap.DoubleTapEnabled,
		},
		Level: gesture.LevelSettings{
			VolumeEnabled:         f.Level.VolumeEnabled,
			BrightnessEnabled:     f.Level.BrightnessEnabled,
			VolumeSide:            gesture.Side(f.Level.VolumeSide),
			VolumeStep:            f.Level.VolumeStep,
			BrightnessStep:        f.Level.BrightnessStep,
			VolumeSensitivity:     f.Level.VolumeSensitivity,
			BrightnessSensitivity: f.Level.BrightnessSensitivity,
			MinStep:               f.Level.MinStep,
			SuccessThreshold:      f.Level.SuccessThreshold,
			Boost: gesture.VolumeBoost{
				Enabled: f.Level.BoostEnabled,
				Ceiling: f.Level.BoostCeiling,
			},
		},
		Seek: gesture.SeekSettings{
			Enabled:    f.Seek.Enabled,
			Area:       gesture.SeekArea(f.Seek.Area),
			RangeMode:  gesture.SeekRangeMode(f.Seek.Range),
			FixedRange: fromMS(f.Seek.FixedRangeMS),
			Buckets: lo.Map(f.Seek.Buckets, func(b SeekBucketFile, _ int) gesture.SeekBucket {
				upTo := b.UpTo
				if upTo == 0 {
					upTo = math.Inf(1)
				}
				return gesture.SeekBucket{UpTo: upTo, Range: fromMS(b.RangeMS)}
			}),
			Sensitivity:      f.Seek.Sensitivity,
			MinStep:          fromMS(f.Seek.MinStepMS),
			SuccessThreshold: fromMS(f.Seek.SuccessThresholdMS),
		},
		LongPress: gesture.LongPressSettings{
			Enabled: f.LongPress.Enabled,
			Timeout: fromMS(f.LongPress.TimeoutMS),
			Ladder: lo.Map(f.LongPress.Ladder, func(l SpeedLevelFile, _ int) gesture.SpeedLevel {
				return gesture.SpeedLevel{Speed: l.Speed, After: fromMS(l.AfterMS)}
			}),
			DirectionDistance:   f.LongPress.DirectionDistance,
			DirectionWindow:     fromMS(f.LongPress.DirectionWindowMS),
			DirectionConfidence: f.LongPress.DirectionConfidence,
			DirectionCooldown:   fromMS(f.LongPress.DirectionCooldownMS),
		},
	}
	if err := s.Validate(); err != nil {
		return gesture.Settings{}, err
	}
	return s, nil
}

// Clone returns a copy that shares no slices with f.
func (f File) Clone() File {
	f.Seek.Buckets = append([]SeekBucketFile(nil), f.Seek.Buckets...)
	f.LongPress.Ladder = append([]SpeedLevelFile(nil), f.LongPress.Ladder...)
	return f
}

// Validate reports whether the file converts into usable settings.
func (f File) Validate() error {
	_, err := f.ToSettings()
	return err
}

// checkDurations rejects negative millisecond fields before conversion.
func (f File) checkDurations() error {
	fields := []struct {
		name  string
		value int
	}{
		{"tap.max_tap_duration_ms", f.Tap.MaxTapDurationMS},
		{"tap.double_tap_timeout_ms", f.Tap.DoubleTapTimeoutMS},
		{"seek.fixed_range_ms", f.Seek.FixedRangeMS},
		{"seek.min_step_ms", f.Seek.MinStepMS},
		{"seek.success_threshold_ms", f.Seek.SuccessThresholdMS},
		{"long_press.timeout_ms", f.LongPress.TimeoutMS},
		{"long_press.direction_window_ms", f.LongPress.DirectionWindowMS},
		{"long_press.direction_cooldown_ms", f.LongPress.DirectionCooldownMS},
	}
	for _, field := range fields {
		if field.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0", gesture.ErrInvalidSettings, field.name)
		}
	}
	return nil
}

// LoadFile reads and parses a YAML settings file on top of DefaultFile.
//
// Unknown fields are rejected so typos surface instead of silently falling
// back to defaults.
func LoadFile(path string) (File, error) {
	if path == "" {
		return File{}, errors.New("settings path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read settings file: %w", err)
	}
	return DecodeFile(bytes.NewReader(b))
}

// DecodeFile parses one YAML settings document on top of DefaultFile.
func DecodeFile(r io.Reader) (File, error) {
	f := DefaultFile()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return f, nil
		}
		return File{}, fmt.Errorf("decode settings yaml: %w", err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return File{}, errors.New("decode settings yaml: unexpected trailing document")
	}
	return f, nil
}

// WriteFile stores f as YAML, replacing path atomically.
func WriteFile(path string, f File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode settings yaml: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// toMS truncates d to whole milliseconds.
func toMS(d time.Duration) int {
	return int(d / time.Millisecond)
}

// fromMS converts a millisecond count to a duration.
func fromMS(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
