package control

import "math"

// minMoveDelta is the smallest travel, in pixels, forwarded as a move.
const minMoveDelta = 1.0

// moveFilter drops moves that did not change the pixel position.
type moveFilter struct {
	active  bool
	pointer int
	lastX   float64
	lastY   float64
}

// start tracks a new contact.
func (f *moveFilter) start(pointer int, x, y float64) {
	f.active = true
	f.pointer = pointer
	f.lastX = x
	f.lastY = y
}

// allow reports whether a move should be forwarded and remembers it if so.
// Moves from untracked pointers pass through so the engine can flag them.
func (f *moveFilter) allow(pointer int, x, y float64) bool {
	if !f.active || f.pointer != pointer {
		return true
	}
	if math.Abs(x-f.lastX) < minMoveDelta && math.Abs(y-f.lastY) < minMoveDelta {
		return false
	}
	f.lastX = x
	f.lastY = y
	return true
}

// reset forgets the tracked contact.
func (f *moveFilter) reset() {
	*f = moveFilter{}
}
