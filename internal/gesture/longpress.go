package gesture

import (
	"time"

	"github.com/frudas24/astralgesture/internal/clock"
)

// baseSpeed is the multiplier restored on release.
const baseSpeed = 1.0

// longPress drives the speed ladder for one held contact.
type longPress struct {
	ladder    []SpeedLevel
	level     int
	peak      float64
	dir       Direction
	startedAt time.Time
	tracker   *tracker
	timer     clock.Timer
}

// newLongPress starts the ladder at its first rung.
func newLongPress(cfg LongPressSettings, now time.Time, anchor PointerEvent) *longPress {
	anchor.At = now
	return &longPress{
		ladder:    cfg.Ladder,
		dir:       Forward,
		startedAt: now,
		tracker:   newTracker(cfg, anchor),
	}
}

// begin enters the first rung.
func (l *longPress) begin(zone Zone) []Command {
	l.peak = l.ladder[0].Speed
	return []Command{
		startCmd(KindLongPress, zone),
		speedCmd(l.ladder[0].Speed, l.dir),
	}
}

// nextDelay returns the wait until the next rung, or false at the top.
func (l *longPress) nextDelay(now time.Time) (time.Duration, bool) {
	if l.level+1 >= len(l.ladder) {
		return 0, false
	}
	d := l.ladder[l.level+1].After - now.Sub(l.startedAt)
	if d < 0 {
		d = 0
	}
	return d, true
}

// advance moves up one rung.
func (l *longPress) advance() []Command {
	if l.level+1 >= len(l.ladder) {
		return nil
	}
	l.level++
	speed := l.ladder[l.level].Speed
	if speed > l.peak {
		l.peak = speed
	}
	return []Command{speedCmd(speed, l.dir)}
}

// move feeds the tracker and flips direction without touching the level.
func (l *longPress) move(ev PointerEvent) []Command {
	l.tracker.add(ev)
	dir, flipped := l.tracker.reversal(l.dir, ev.At)
	if !flipped {
		return nil
	}
	l.dir = dir
	return []Command{speedCmd(l.ladder[l.level].Speed, l.dir)}
}

// stop cancels the pending rung timer.
func (l *longPress) stop() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// finish restores normal speed and reports the peak multiplier.
func (l *longPress) finish(zone Zone, now time.Time, success bool) []Command {
	l.stop()
	return []Command{
		speedCmd(baseSpeed, Forward),
		endCmd(Summary{
			Kind:     KindLongPress,
			Zone:     zone,
			Success:  success,
			Total:    l.peak,
			Duration: now.Sub(l.startedAt),
		}),
	}
}
