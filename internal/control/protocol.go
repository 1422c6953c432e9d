// Package control carries pointer input and gesture commands over a websocket.
package control

import (
	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/samber/lo"
)

// Inbound message types.
const (
	MsgDown         = "down"
	MsgMove         = "move"
	MsgUp           = "up"
	MsgCancel       = "cancel"
	MsgGeometry     = "geometry"
	MsgInputEnabled = "inputEnabled"
)

// FrameError reports a rejected message back to the client.
const FrameError = "error"

// Message is an inbound control websocket payload.
// X and Y are normalized to [0,1]; W and H are surface pixels.
type Message struct {
	T       string  `json:"t"`
	ID      int     `json:"id,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	W       float64 `json:"w,omitempty"`
	H       float64 `json:"h,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// Frame is an outbound command payload.
type Frame struct {
	T          string  `json:"t"`
	Ms         int64   `json:"ms,omitempty"`
	Delta      float64 `json:"delta,omitempty"`
	Speed      float64 `json:"speed,omitempty"`
	Dir        string  `json:"dir,omitempty"`
	Action     string  `json:"action,omitempty"`
	Gesture    string  `json:"gesture,omitempty"`
	Zone       string  `json:"zone,omitempty"`
	Success    *bool   `json:"success,omitempty"`
	Total      float64 `json:"total,omitempty"`
	DurationMs int64   `json:"durationMs,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// FrameFor encodes a gesture command for the wire.
func FrameFor(c gesture.Command) Frame {
	f := Frame{T: string(c.Type)}
	switch c.Type {
	case gesture.CmdSeek:
		f.Ms = c.Seek.Milliseconds()
	case gesture.CmdVolume, gesture.CmdBrightness:
		f.Delta = c.Delta
	case gesture.CmdSpeed:
		f.Speed = c.Speed
		f.Dir = string(c.Direction)
	case gesture.CmdTap:
		f.Action = string(c.Tap)
	case gesture.CmdGestureStart:
		f.Gesture = string(c.Gesture)
		f.Zone = string(c.Zone)
	case gesture.CmdGestureEnd:
		f.Gesture = string(c.Summary.Kind)
		f.Zone = string(c.Summary.Zone)
		f.Success = lo.ToPtr(c.Summary.Success)
		f.Total = c.Summary.Total
		f.DurationMs = c.Summary.Duration.Milliseconds()
	}
	return f
}
