package control

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/frudas24/astralgesture/internal/gesture"
)

// TestProtocol_Down verifies decoding a down message.
func TestProtocol_Down(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"t":"down","id":1,"x":0.5,"y":0.2}`), &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.T != MsgDown || msg.ID != 1 || msg.X != 0.5 || msg.Y != 0.2 {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

// TestProtocol_Geometry verifies decoding a geometry message.
func TestProtocol_Geometry(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"t":"geometry","w":1920,"h":1080}`), &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.T != MsgGeometry || msg.W != 1920 || msg.H != 1080 {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

// TestProtocol_InputEnabled verifies the kill switch keeps an explicit false.
func TestProtocol_InputEnabled(t *testing.T) {
	var msg Message
	if err := json.Unmarshal([]byte(`{"t":"inputEnabled","enabled":false}`), &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.Enabled == nil || *msg.Enabled {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

// TestFrameFor_Seek verifies seek frames carry milliseconds.
func TestFrameFor_Seek(t *testing.T) {
	data, err := json.Marshal(FrameFor(gesture.Command{Type: gesture.CmdSeek, Seek: -1200 * time.Millisecond}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"t":"seek","ms":-1200}` {
		t.Fatalf("unexpected frame %s", data)
	}
}

// TestFrameFor_Speed verifies speed frames carry direction.
func TestFrameFor_Speed(t *testing.T) {
	data, err := json.Marshal(FrameFor(gesture.Command{Type: gesture.CmdSpeed, Speed: 4, Direction: gesture.Backward}))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"t":"speed","speed":4,"dir":"backward"}` {
		t.Fatalf("unexpected frame %s", data)
	}
}

// TestFrameFor_GestureEnd verifies a failed gesture still reports success=false.
func TestFrameFor_GestureEnd(t *testing.T) {
	cmd := gesture.Command{
		Type:    gesture.CmdGestureEnd,
		Summary: gesture.Summary{Kind: gesture.KindVolume, Zone: gesture.ZoneRight, Total: 0.001, Duration: 60 * time.Millisecond},
	}
	data, err := json.Marshal(FrameFor(cmd))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"t":"gesture_end","gesture":"volume","zone":"right","success":false,"total":0.001,"durationMs":60}`
	if string(data) != want {
		t.Fatalf("expected %s, got %s", want, data)
	}
}
