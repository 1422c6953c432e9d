package gesture

import (
	"fmt"
	"time"
)

// CommandType identifies the kind of command emitted to the sink.
type CommandType string

const (
	// CmdSeek moves playback by Seek.
	CmdSeek CommandType = "seek"
	// CmdVolume changes volume by Delta.
	CmdVolume CommandType = "volume"
	// CmdBrightness changes brightness by Delta.
	CmdBrightness CommandType = "brightness"
	// CmdSpeed sets the playback multiplier and direction.
	CmdSpeed CommandType = "speed"
	// CmdTap triggers a tap action.
	CmdTap CommandType = "tap"
	// CmdGestureStart reports that a gesture was recognized.
	CmdGestureStart CommandType = "gesture_start"
	// CmdGestureEnd reports that a gesture finished.
	CmdGestureEnd CommandType = "gesture_end"
)

// Kind is a recognized gesture family.
type Kind string

const (
	KindTap        Kind = "tap"
	KindDoubleTap  Kind = "double_tap"
	KindVolume     Kind = "volume"
	KindBrightness Kind = "brightness"
	KindSeek       Kind = "seek"
	KindLongPress  Kind = "long_press"
)

// TapAction is the effect of a tap gesture.
type TapAction string

const (
	// TapToggleControls shows or hides the player controls.
	TapToggleControls TapAction = "toggle_controls"
	// TapSeekBack jumps 10s backwards.
	TapSeekBack TapAction = "seek_back_10s"
	// TapSeekForward jumps 10s forwards.
	TapSeekForward TapAction = "seek_fwd_10s"
)

// Direction is the seek direction of a held long press.
type Direction string

const (
	// Forward plays ahead.
	Forward Direction = "forward"
	// Backward rewinds.
	Backward Direction = "backward"
)

// Opposite returns the reversed direction.
func (d Direction) Opposite() Direction {
	if d == Backward {
		return Forward
	}
	return Backward
}

// Summary describes a finished gesture.
type Summary struct {
	Kind    Kind
	Zone    Zone
	Success bool
	// Total is level units for volume/brightness, milliseconds for seek,
	// and the peak multiplier for long press.
	Total    float64
	Duration time.Duration
}

// Command is a single outbound instruction.
type Command struct {
	Type      CommandType
	Seek      time.Duration
	Delta     float64
	Speed     float64
	Direction Direction
	Tap       TapAction
	Gesture   Kind
	Zone      Zone
	Summary   Summary
}

// String renders the command for logs and the replay tool.
func (c Command) String() string {
	switch c.Type {
	case CmdSeek:
		return fmt.Sprintf("seek %+dms", c.Seek.Milliseconds())
	case CmdVolume, CmdBrightness:
		return fmt.Sprintf("%s %+.4f", c.Type, c.Delta)
	case CmdSpeed:
		return fmt.Sprintf("speed %gx %s", c.Speed, c.Direction)
	case CmdTap:
		return fmt.Sprintf("tap %s", c.Tap)
	case CmdGestureStart:
		return fmt.Sprintf("start %s zone=%s", c.Gesture, c.Zone)
	case CmdGestureEnd:
		return fmt.Sprintf("end %s zone=%s success=%t total=%g", c.Summary.Kind, c.Summary.Zone, c.Summary.Success, c.Summary.Total)
	default:
		return string(c.Type)
	}
}

// seekCmd builds a relative seek.
func seekCmd(d time.Duration) Command {
	return Command{Type: CmdSeek, Seek: d}
}

// levelCmd builds a volume or brightness delta.
func levelCmd(kind Kind, delta float64) Command {
	if kind == KindBrightness {
		return Command{Type: CmdBrightness, Delta: delta}
	}
	return Command{Type: CmdVolume, Delta: delta}
}

// speedCmd builds a speed change.
func speedCmd(speed float64, dir Direction) Command {
	return Command{Type: CmdSpeed, Speed: speed, Direction: dir}
}

// tapCmd builds a tap action.
func tapCmd(action TapAction) Command {
	return Command{Type: CmdTap, Tap: action}
}

// startCmd builds a gesture start.
func startCmd(kind Kind, zone Zone) Command {
	return Command{Type: CmdGestureStart, Gesture: kind, Zone: zone}
}

// endCmd builds a gesture end from its summary.
func endCmd(s Summary) Command {
	return Command{Type: CmdGestureEnd, Gesture: s.Kind, Zone: s.Zone, Summary: s}
}
