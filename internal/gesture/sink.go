package gesture

import (
	"sync"
	"time"

	"github.com/samber/lo"
)

// Sink receives commands in the order their triggering events were observed.
// Implementations must not call back into the Arbitrator.
type Sink interface {
	OnSeek(delta time.Duration)
	OnVolumeChange(delta float64)
	OnBrightnessChange(delta float64)
	OnSpeedChange(speed float64, dir Direction)
	OnTapAction(action TapAction)
	OnGestureStart(kind Kind, zone Zone)
	OnGestureEnd(summary Summary)
}

// Dispatch delivers cmds to s in order.
func Dispatch(s Sink, cmds []Command) {
	if s == nil {
		return
	}
	for _, c := range cmds {
		switch c.Type {
		case CmdSeek:
			s.OnSeek(c.Seek)
		case CmdVolume:
			s.OnVolumeChange(c.Delta)
		case CmdBrightness:
			s.OnBrightnessChange(c.Delta)
		case CmdSpeed:
			s.OnSpeedChange(c.Speed, c.Direction)
		case CmdTap:
			s.OnTapAction(c.Tap)
		case CmdGestureStart:
			s.OnGestureStart(c.Gesture, c.Zone)
		case CmdGestureEnd:
			s.OnGestureEnd(c.Summary)
		}
	}
}

// NopSink discards every command.
type NopSink struct{}

func (NopSink) OnSeek(time.Duration) {}
func (NopSink) OnVolumeChange(float64) {}
func (NopSink) OnBrightnessChange(float64) {}
func (NopSink) OnSpeedChange(float64, Direction) {}
func (NopSink) OnTapAction(TapAction) {}
func (NopSink) OnGestureStart(Kind, Zone) {}
func (NopSink) OnGestureEnd(Summary) {}

type fanout []Sink

// Fanout returns a Sink that forwards every command to each non-nil sink in order.
func Fanout(sinks ...Sink) Sink {
	return fanout(lo.Compact(sinks))
}

// OnSeek forwards a seek to every sink.
func (f fanout) OnSeek(d time.Duration) {
	for _, s := range f {
		s.OnSeek(d)
	}
}

// OnVolumeChange forwards a volume delta to every sink.
func (f fanout) OnVolumeChange(delta float64) {
	for _, s := range f {
		s.OnVolumeChange(delta)
	}
}

// OnBrightnessChange forwards a brightness delta to every sink.
func (f fanout) OnBrightnessChange(delta float64) {
	for _, s := range f {
		s.OnBrightnessChange(delta)
	}
}

// OnSpeedChange forwards a speed change to every sink.
func (f fanout) OnSpeedChange(speed float64, dir Direction) {
	for _, s := range f {
		s.OnSpeedChange(speed, dir)
	}
}

// OnTapAction forwards a tap action to every sink.
func (f fanout) OnTapAction(action TapAction) {
	for _, s := range f {
		s.OnTapAction(action)
	}
}

// OnGestureStart forwards a gesture start to every sink.
func (f fanout) OnGestureStart(kind Kind, zone Zone) {
	for _, s := range f {
		s.OnGestureStart(kind, zone)
	}
}

// OnGestureEnd forwards a gesture end to every sink.
func (f fanout) OnGestureEnd(summary Summary) {
	for _, s := range f {
		s.OnGestureEnd(summary)
	}
}

// Recorder is a Sink that keeps every command it receives.
type Recorder struct {
	mu   sync.Mutex
	cmds []Command
}

// Commands returns a copy of the recorded commands.
func (r *Recorder) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Command(nil), r.cmds...)
}

// Reset drops everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.cmds = nil
	r.mu.Unlock()
}

// add appends c under the recorder lock.
func (r *Recorder) add(c Command) {
	r.mu.Lock()
	r.cmds = append(r.cmds, c)
	r.mu.Unlock()
}

// OnSeek records a seek.
func (r *Recorder) OnSeek(d time.Duration) { r.add(seekCmd(d)) }

// OnVolumeChange records a volume delta.
func (r *Recorder) OnVolumeChange(delta float64) { r.add(levelCmd(KindVolume, delta)) }

// OnBrightnessChange records a brightness delta.
func (r *Recorder) OnBrightnessChange(delta float64) { r.add(levelCmd(KindBrightness, delta)) }

// OnSpeedChange records a speed change.
func (r *Recorder) OnSpeedChange(speed float64, dir Direction) { r.add(speedCmd(speed, dir)) }

// OnTapAction records a tap action.
func (r *Recorder) OnTapAction(action TapAction) { r.add(tapCmd(action)) }

// OnGestureStart records a gesture start.
func (r *Recorder) OnGestureStart(kind Kind, zone Zone) { r.add(startCmd(kind, zone)) }

// OnGestureEnd records a gesture end.
func (r *Recorder) OnGestureEnd(summary Summary) { r.add(endCmd(summary)) }

// Observer is a Sink that hands every command to a callback as it is emitted.
type Observer func(Command)

func (o Observer) OnSeek(d time.Duration) { o(seekCmd(d)) }
func (o Observer) OnVolumeChange(delta float64) { o(levelCmd(KindVolume, delta)) }
func (o Observer) OnBrightnessChange(delta float64) { o(levelCmd(KindBrightness, delta)) }
func (o Observer) OnSpeedChange(speed float64, d Direction) { o(speedCmd(speed, d)) }
func (o Observer) OnTapAction(action TapAction) { o(tapCmd(action)) }
func (o Observer) OnGestureStart(kind Kind, zone Zone) { o(startCmd(kind, zone)) }
func (o Observer) OnGestureEnd(summary Summary) { o(endCmd(summary)) }
