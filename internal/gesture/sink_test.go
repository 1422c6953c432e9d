package gesture

import (
	"testing"
	"time"
)

// TestFanout_SkipsNilAndKeepsOrder verifies every sink sees the same ordered stream.
func TestFanout_SkipsNilAndKeepsOrder(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	s := Fanout(a, nil, b)
	cmds := []Command{
		startCmd(KindSeek, ZoneCenter),
		seekCmd(1500 * time.Millisecond),
		endCmd(Summary{Kind: KindSeek, Zone: ZoneCenter, Total: 1500, Success: true}),
	}
	Dispatch(s, cmds)

	for _, r := range []*Recorder{a, b} {
		got := r.Commands()
		if len(got) != 3 {
			t.Fatalf("expected 3 commands, got %v", got)
		}
		for i := range cmds {
			if got[i].String() != cmds[i].String() {
				t.Fatalf("command %d: expected %s, got %s", i, cmds[i], got[i])
			}
		}
	}
}

// TestDispatch_NilSink verifies a nil sink is ignored.
func TestDispatch_NilSink(t *testing.T) {
	Dispatch(nil, []Command{tapCmd(TapToggleControls)})
	Dispatch(NopSink{}, []Command{speedCmd(2, Forward), levelCmd(KindBrightness, 0.1)})
}

// TestRecorder_Reset verifies recorded commands can be cleared.
func TestRecorder_Reset(t *testing.T) {
	r := &Recorder{}
	r.OnVolumeChange(0.2)
	r.OnSpeedChange(4, Backward)
	if got := r.Commands(); len(got) != 2 || got[1].Direction != Backward {
		t.Fatalf("unexpected commands %v", got)
	}
	r.Reset()
	if got := r.Commands(); len(got) != 0 {
		t.Fatalf("expected empty recorder, got %v", got)
	}
}

// TestObserver_ReceivesCommands verifies the callback sees each command in order.
func TestObserver_ReceivesCommands(t *testing.T) {
	var got []string
	obs := Observer(func(c Command) { got = append(got, c.String()) })
	Dispatch(obs, []Command{speedCmd(4, Backward), tapCmd(TapSeekBack)})
	want := []string{speedCmd(4, Backward).String(), tapCmd(TapSeekBack).String()}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
