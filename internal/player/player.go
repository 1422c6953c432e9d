// Package player keeps a reference playback state driven by gesture commands.
package player

import (
	"sync"
	"time"

	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/samber/lo"
)

// tapSeek is the jump applied by a double tap.
const tapSeek = 10 * time.Second

// Snapshot is a read-only view of the playback state.
type Snapshot struct {
	PositionMs      int64   `json:"position_ms"`
	DurationMs      int64   `json:"duration_ms"`
	Volume          float64 `json:"volume"`
	VolumeCeiling   float64 `json:"volume_ceiling"`
	Brightness      float64 `json:"brightness"`
	Speed           float64 `json:"speed"`
	Direction       string  `json:"direction"`
	ControlsVisible bool    `json:"controls_visible"`
	Gesture         string  `json:"gesture,omitempty"`
}

// State applies gesture commands to a simulated player.
// Position is clamped to [0, duration] when the duration is known.
type State struct {
	mu         sync.RWMutex
	position   time.Duration
	duration   time.Duration
	volume     float64
	ceiling    float64
	brightness float64
	speed      float64
	direction  gesture.Direction
	controls   bool
	gesture    gesture.Kind
}

var _ gesture.Sink = (*State)(nil)

// New returns a player at the start of a title of the given duration.
func New(duration time.Duration) *State {
	return &State{
		duration:   duration,
		volume:     0.5,
		ceiling:    1,
		brightness: 0.5,
		speed:      1,
		direction:  gesture.Forward,
	}
}

// SetVolumeCeiling changes the highest reachable volume, 1 without boost.
func (s *State) SetVolumeCeiling(ceiling float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ceiling < 1 {
		ceiling = 1
	}
	s.ceiling = ceiling
	s.volume = lo.Clamp(s.volume, 0, s.ceiling)
}

// OnSeek moves the playback position.
func (s *State) OnSeek(delta time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seekLocked(delta)
}

// OnVolumeChange adjusts volume within [0, ceiling].
func (s *State) OnVolumeChange(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = lo.Clamp(s.volume+delta, 0, s.ceiling)
}

// OnBrightnessChange adjusts brightness within [0, 1].
func (s *State) OnBrightnessChange(delta float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brightness = lo.Clamp(s.brightness+delta, 0, 1)
}

// OnSpeedChange sets the playback multiplier and direction.
func (s *State) OnSpeedChange(speed float64, dir gesture.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = speed
	s.direction = dir
}

// OnTapAction toggles controls or jumps 10s.
func (s *State) OnTapAction(action gesture.TapAction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch action {
	case gesture.TapToggleControls:
		s.controls = !s.controls
	case gesture.TapSeekBack:
		s.seekLocked(-tapSeek)
	case gesture.TapSeekForward:
		s.seekLocked(tapSeek)
	}
}

// OnGestureStart remembers the gesture in progress.
func (s *State) OnGestureStart(kind gesture.Kind, _ gesture.Zone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture = kind
}

// OnGestureEnd clears the gesture in progress.
func (s *State) OnGestureEnd(gesture.Summary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gesture = ""
}

// Snapshot returns a copy of the playback state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		PositionMs:      s.position.Milliseconds(),
		DurationMs:      s.duration.Milliseconds(),
		Volume:          s.volume,
		VolumeCeiling:   s.ceiling,
		Brightness:      s.brightness,
		Speed:           s.speed,
		Direction:       string(s.direction),
		ControlsVisible: s.controls,
		Gesture:         string(s.gesture),
	}
}

// seekLocked moves the position by delta; s.mu must be held.
func (s *State) seekLocked(delta time.Duration) {
	pos := s.position + delta
	if pos < 0 {
		pos = 0
	}
	if s.duration > 0 && pos > s.duration {
		pos = s.duration
	}
	s.position = pos
}
