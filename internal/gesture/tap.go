package gesture

import (
	"time"

	"github.com/frudas24/astralgesture/internal/clock"
)

// pendingTap is a completed tap waiting on the double-tap window.
type pendingTap struct {
	at    time.Time
	pos   Point
	zone  Zone
	dur   time.Duration
	timer clock.Timer
}

// tapDetector tracks taps across sessions.
//
// pending is a first tap whose single-tap timer is armed. held is a first tap
// whose timer was cancelled because a second contact landed close enough in
// time and space; it resolves to a double tap or is flushed as a single tap.
type tapDetector struct {
	pending *pendingTap
	held    *pendingTap
}

// isTap reports whether a contact qualifies as a tap.
func isTap(down, up PointerEvent, maxDist float64, cfg TapSettings) bool {
	return up.At.Sub(down.At) <= cfg.MaxTapDuration && maxDist <= cfg.TouchSlop
}

// onDown resolves a pending tap against a new contact.
func (d *tapDetector) onDown(ev PointerEvent, cfg TapSettings) []Command {
	p := d.pending
	if p == nil {
		return nil
	}
	d.pending = nil
	if p.timer != nil {
		p.timer.Stop()
	}
	if ev.At.Sub(p.at) <= cfg.DoubleTapTimeout && distance(p.pos, ev.Point()) <= cfg.MaxDoubleTapDistance {
		d.held = p
		return nil
	}
	return singleTap(p)
}

// disqualify flushes a held first tap when the second contact is not a tap.
func (d *tapDetector) disqualify() []Command {
	p := d.held
	if p == nil {
		return nil
	}
	d.held = nil
	return singleTap(p)
}

// completeDouble turns a held first tap plus this tap into a double tap.
func (d *tapDetector) completeDouble(up PointerEvent, geo Geometry, zone Zone, dur time.Duration) ([]Command, bool) {
	if d.held == nil {
		return nil, false
	}
	d.held = nil
	action := TapSeekForward
	if HalfOf(up.Point(), geo) == ZoneLeft {
		action = TapSeekBack
	}
	return []Command{
		startCmd(KindDoubleTap, zone),
		tapCmd(action),
		endCmd(Summary{Kind: KindDoubleTap, Zone: zone, Success: true, Duration: dur}),
	}, true
}

// reset stops the single-tap timer and forgets every tap.
func (d *tapDetector) reset() {
	if d.pending != nil && d.pending.timer != nil {
		d.pending.timer.Stop()
	}
	d.pending = nil
	d.held = nil
}

// singleTap renders a held tap as its command triple.
func singleTap(p *pendingTap) []Command {
	return []Command{
		startCmd(KindTap, p.zone),
		tapCmd(TapToggleControls),
		endCmd(Summary{Kind: KindTap, Zone: p.zone, Success: true, Duration: p.dur}),
	}
}
