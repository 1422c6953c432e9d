package control

import (
	"testing"

	"github.com/frudas24/astralgesture/internal/gesture"
)

// TestNormToSurface_TopLeft verifies the top-left mapping.
func TestNormToSurface_TopLeft(t *testing.T) {
	x, y := NormToSurface(0, 0, gesture.Geometry{Width: 301, Height: 401})
	if x != 0 || y != 0 {
		t.Fatalf("expected (0,0), got (%v,%v)", x, y)
	}
}

// TestNormToSurface_Center verifies center mapping.
func TestNormToSurface_Center(t *testing.T) {
	x, y := NormToSurface(0.5, 0.5, gesture.Geometry{Width: 301, Height: 401})
	if x != 150 || y != 200 {
		t.Fatalf("expected (150,200), got (%v,%v)", x, y)
	}
}

// TestNormToSurface_BottomRight verifies bottom-right mapping stays on the last pixel.
func TestNormToSurface_BottomRight(t *testing.T) {
	x, y := NormToSurface(1, 1, gesture.Geometry{Width: 1920, Height: 1080})
	if x != 1919 || y != 1079 {
		t.Fatalf("expected (1919,1079), got (%v,%v)", x, y)
	}
}

// TestNormToSurface_ClampOutOfRange verifies normalization clamps out-of-range values.
func TestNormToSurface_ClampOutOfRange(t *testing.T) {
	x, y := NormToSurface(-1, 2, gesture.Geometry{Width: 301, Height: 401})
	if x != 0 || y != 400 {
		t.Fatalf("expected clamped (0,400), got (%v,%v)", x, y)
	}
}

// TestNormToSurface_EmptyGeometry verifies an unknown surface maps to the origin.
func TestNormToSurface_EmptyGeometry(t *testing.T) {
	x, y := NormToSurface(0.5, 0.5, gesture.Geometry{})
	if x != 0 || y != 0 {
		t.Fatalf("expected (0,0), got (%v,%v)", x, y)
	}
}
