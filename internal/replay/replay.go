// Package replay drives the gesture engine from a recorded pointer trace on a
// manual clock, so a session can be reproduced without a device.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/frudas24/astralgesture/internal/clock"
	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// defaultTail is how long the clock keeps running after the last step.
const defaultTail = time.Second

// StepCancel abandons the open contact.
const StepCancel = "cancel"

// Trace is a recorded pointer stream.
type Trace struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// TailMS keeps the clock running after the last step so pending
	// deadlines (single tap, speed ladder) can fire. Zero means one second.
	TailMS int    `yaml:"tail_ms,omitempty"`
	Steps  []Step `yaml:"steps"`
}

// Step is one pointer sample, or a cancel, at a millisecond offset.
type Step struct {
	AtMS int     `yaml:"at_ms"`
	Kind string  `yaml:"kind"`
	ID   int     `yaml:"id,omitempty"`
	X    float64 `yaml:"x,omitempty"`
	Y    float64 `yaml:"y,omitempty"`
}

// Line is one emitted command, or a rejected step, at its offset from the trace start.
type Line struct {
	At      time.Duration
	Command gesture.Command
	Err     error
}

// String renders the line for terminal output.
func (l Line) String() string {
	if l.Err != nil {
		return fmt.Sprintf("%6dms  ! %v", l.At.Milliseconds(), l.Err)
	}
	return fmt.Sprintf("%6dms  %s", l.At.Milliseconds(), l.Command)
}

// Load reads a YAML trace file.
func Load(path string) (Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return Trace{}, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a YAML trace and checks its shape.
func Decode(r io.Reader) (Trace, error) {
	var t Trace
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		return Trace{}, fmt.Errorf("decode trace yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Trace{}, err
	}
	return t, nil
}

// Validate checks the surface size and step offsets.
func (t Trace) Validate() error {
	if err := (gesture.Geometry{Width: t.Width, Height: t.Height}).Validate(); err != nil {
		return err
	}
	if len(t.Steps) == 0 {
		return errors.New("trace has no steps")
	}
	if t.TailMS < 0 {
		return errors.New("trace tail_ms must be >= 0")
	}
	prev := 0
	for i, s := range t.Steps {
		if s.AtMS < prev {
			return fmt.Errorf("steps[%d].at_ms must not go backwards", i)
		}
		switch s.Kind {
		case string(gesture.EventDown), string(gesture.EventMove), string(gesture.EventUp), StepCancel:
		default:
			return fmt.Errorf("steps[%d].kind %q is not down, move, up or cancel", i, s.Kind)
		}
		prev = s.AtMS
	}
	return nil
}

// Run replays t against a fresh arbitrator and returns every emitted command
// in order, interleaved with the steps the engine rejected.
func Run(t Trace, settings gesture.Settings, log logrus.FieldLogger) ([]Line, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	start := time.Unix(0, 0).UTC()
	clk := clock.NewManual(start)
	defer clk.Close()

	var lines []Line
	engine, err := gesture.New(gesture.Options{
		Settings: settings,
		Geometry: gesture.Geometry{Width: t.Width, Height: t.Height},
		Sink: gesture.Observer(func(c gesture.Command) {
			lines = append(lines, Line{At: clk.Now().Sub(start), Command: c})
		}),
		Clock:  clk,
		Logger: log,
	})
	if err != nil {
		return nil, err
	}

	for _, s := range t.Steps {
		at := start.Add(time.Duration(s.AtMS) * time.Millisecond)
		clk.AdvanceTo(at)
		if s.Kind == StepCancel {
			engine.Cancel()
			continue
		}
		ev := gesture.PointerEvent{ID: s.ID, Kind: gesture.EventKind(s.Kind), X: s.X, Y: s.Y, At: at}
		if err := engine.Handle(ev); err != nil {
			lines = append(lines, Line{At: at.Sub(start), Err: err})
		}
	}

	tail := defaultTail
	if t.TailMS > 0 {
		tail = time.Duration(t.TailMS) * time.Millisecond
	}
	clk.Advance(tail)
	return lines, nil
}
