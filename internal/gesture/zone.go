package gesture

import (
	"fmt"
	"math"
)

// Zone names a region of the surface.
type Zone string

const (
	// ZoneDead is the top or bottom band where gestures are ignored.
	ZoneDead Zone = "dead"
	// ZoneLeft is the left drag column.
	ZoneLeft Zone = "left"
	// ZoneCenter is the middle drag column.
	ZoneCenter Zone = "center"
	// ZoneRight is the right drag column.
	ZoneRight Zone = "right"
)

// ZoneLayout holds fractional zone boundaries.
type ZoneLayout struct {
	DeadZoneTop    float64
	DeadZoneBottom float64
	LeftZoneWidth  float64
	RightZoneWidth float64
}

// DefaultZoneLayout returns the 8% dead bands and 40/20/40 column split.
func DefaultZoneLayout() ZoneLayout {
	return ZoneLayout{
		DeadZoneTop:    0.08,
		DeadZoneBottom: 0.08,
		LeftZoneWidth:  0.4,
		RightZoneWidth: 0.4,
	}
}

// CenterZoneWidth returns the width left over between the side columns.
func (l ZoneLayout) CenterZoneWidth() float64 {
	return 1 - l.LeftZoneWidth - l.RightZoneWidth
}

// Validate checks the fractions describe a usable surface.
func (l ZoneLayout) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"layout.dead_zone_top", l.DeadZoneTop},
		{"layout.dead_zone_bottom", l.DeadZoneBottom},
		{"layout.left_zone_width", l.LeftZoneWidth},
		{"layout.right_zone_width", l.RightZoneWidth},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || f.value < 0 || f.value > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %g", ErrInvalidSettings, f.name, f.value)
		}
	}
	if l.DeadZoneTop+l.DeadZoneBottom >= 1 {
		return fmt.Errorf("%w: layout.dead_zone_top + layout.dead_zone_bottom must be < 1", ErrInvalidSettings)
	}
	if l.LeftZoneWidth+l.RightZoneWidth > 1 {
		return fmt.Errorf("%w: layout.left_zone_width + layout.right_zone_width must be <= 1", ErrInvalidSettings)
	}
	return nil
}

// Classify maps a point to its zone.
//
// Every band owns its lower edge: y == top is live, y == 1-bottom is dead,
// x == left is center and x == 1-right is right.
func Classify(p Point, g Geometry, l ZoneLayout) Zone {
	if g.Width <= 0 || g.Height <= 0 {
		return ZoneDead
	}
	y := p.Y / g.Height
	if y < l.DeadZoneTop || y >= 1-l.DeadZoneBottom {
		return ZoneDead
	}
	x := p.X / g.Width
	switch {
	case x < l.LeftZoneWidth:
		return ZoneLeft
	case x >= 1-l.RightZoneWidth:
		return ZoneRight
	default:
		return ZoneCenter
	}
}

// HalfOf splits the surface into two halves for double-tap seeking.
func HalfOf(p Point, g Geometry) Zone {
	if p.X < g.Width/2 {
		return ZoneLeft
	}
	return ZoneRight
}
