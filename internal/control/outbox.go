package control

import (
	"sync"
	"time"

	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// writeWait bounds a single frame write.
const writeWait = time.Second

// Outbox is a gesture.Sink that writes command frames to the active control connection.
// Frames are dropped while no client is connected.
type Outbox struct {
	mu   sync.Mutex
	conn *websocket.Conn
	log  logrus.FieldLogger
}

var _ gesture.Sink = (*Outbox)(nil)

// NewOutbox returns an outbox with no connection attached.
func NewOutbox(log logrus.FieldLogger) *Outbox {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Outbox{log: log}
}

// attach routes frames to conn.
func (o *Outbox) attach(conn *websocket.Conn) {
	o.mu.Lock()
	o.conn = conn
	o.mu.Unlock()
}

// detach stops routing frames to conn if it is still attached.
func (o *Outbox) detach(conn *websocket.Conn) {
	o.mu.Lock()
	if o.conn == conn {
		o.conn = nil
	}
	o.mu.Unlock()
}

// Send writes a frame and reports whether it reached a connection.
func (o *Outbox) Send(f Frame) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.conn == nil {
		return false
	}
	_ = o.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := o.conn.WriteJSON(f); err != nil {
		o.log.WithError(err).WithField("t", f.T).Debug("control: frame write failed")
		return false
	}
	return true
}

// command sends c as a frame, dropping it when no client is attached.
func (o *Outbox) command(c gesture.Command) {
	o.Send(FrameFor(c))
}

// OnSeek forwards a seek.
func (o *Outbox) OnSeek(d time.Duration) {
	o.command(gesture.Command{Type: gesture.CmdSeek, Seek: d})
}

// OnVolumeChange forwards a volume delta.
func (o *Outbox) OnVolumeChange(delta float64) {
	o.command(gesture.Command{Type: gesture.CmdVolume, Delta: delta})
}

// OnBrightnessChange forwards a brightness delta.
func (o *Outbox) OnBrightnessChange(delta float64) {
	o.command(gesture.Command{Type: gesture.CmdBrightness, Delta: delta})
}

// OnSpeedChange forwards a speed change.
func (o *Outbox) OnSpeedChange(speed float64, dir gesture.Direction) {
	o.command(gesture.Command{Type: gesture.CmdSpeed, Speed: speed, Direction: dir})
}

// OnTapAction forwards a tap action.
func (o *Outbox) OnTapAction(action gesture.TapAction) {
	o.command(gesture.Command{Type: gesture.CmdTap, Tap: action})
}

// OnGestureStart forwards a gesture start.
func (o *Outbox) OnGestureStart(kind gesture.Kind, zone gesture.Zone) {
	o.command(gesture.Command{Type: gesture.CmdGestureStart, Gesture: kind, Zone: zone})
}

// OnGestureEnd forwards a gesture end.
func (o *Outbox) OnGestureEnd(s gesture.Summary) {
	o.command(gesture.Command{Type: gesture.CmdGestureEnd, Gesture: s.Kind, Zone: s.Zone, Summary: s})
}
