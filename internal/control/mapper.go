package control

import (
	"math"

	"github.com/frudas24/astralgesture/internal/gesture"
)

// NormToSurface maps normalized coordinates to surface pixels.
func NormToSurface(xn, yn float64, g gesture.Geometry) (float64, float64) {
	return normToPixels(clamp01(xn), g.Width), normToPixels(clamp01(yn), g.Height)
}

// normToPixels maps a [0,1] coordinate onto the last pixel index of span.
func normToPixels(norm float64, span float64) float64 {
	if span <= 1 {
		return 0
	}
	return math.Round(norm * (span - 1))
}

// clamp01 bounds a float to the [0..1] range.
func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
