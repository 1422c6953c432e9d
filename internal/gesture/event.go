// Package gesture turns a single-pointer event stream into playback commands.
package gesture

import (
	"fmt"
	"math"
	"time"
)

// EventKind identifies the phase of a pointer sample.
type EventKind string

const (
	// EventDown starts a contact.
	EventDown EventKind = "down"
	// EventMove reports a new position while pressed.
	EventMove EventKind = "move"
	// EventUp ends a contact.
	EventUp EventKind = "up"
)

// Point is a position in surface pixels.
type Point struct {
	X float64
	Y float64
}

// PointerEvent is a single input sample from the platform layer.
type PointerEvent struct {
	ID   int
	Kind EventKind
	X    float64
	Y    float64
	// At is stamped with the arbitrator clock when zero.
	At time.Time
}

// Point returns the event position.
func (e PointerEvent) Point() Point {
	return Point{X: e.X, Y: e.Y}
}

// Geometry is the size of the interactive surface in pixels.
type Geometry struct {
	Width  float64
	Height float64
}

// Validate rejects empty or non-finite surfaces.
func (g Geometry) Validate() error {
	if !(g.Width > 0) || !(g.Height > 0) || math.IsInf(g.Width, 0) || math.IsInf(g.Height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidGeometry, g.Width, g.Height)
	}
	return nil
}

// distance returns the euclidean distance between two points.
func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}
