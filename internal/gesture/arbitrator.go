package gesture

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/frudas24/astralgesture/internal/clock"
	"github.com/sirupsen/logrus"
)

// Options configures an Arbitrator.
type Options struct {
	Settings Settings
	Geometry Geometry
	Sink     Sink
	Clock    clock.Clock
	Logger   logrus.FieldLogger
}

// Stats counts session outcomes since the arbitrator was created.
type Stats struct {
	Sessions   uint64
	DeadZone   uint64
	Violations uint64
	Aborted    uint64
	Cancelled  uint64
}

// session is the state of one contact, from down to up.
type session struct {
	id      int
	start   PointerEvent
	last    PointerEvent
	zone    Zone
	geo     Geometry
	cfg     Settings
	active  Kind
	maxDist float64
	tapOK   bool
	aborted bool
	// longWait is the armed long-press timer; nil once the candidate is gone.
	longWait clock.Timer
	level    *levelDrag
	seek     *seekDrag
	long     *longPress
}

// Arbitrator runs every detector over one pointer stream and lets a single
// gesture family win each contact.
type Arbitrator struct {
	mu       sync.Mutex
	clock    clock.Clock
	sink     Sink
	log      logrus.FieldLogger
	settings Settings
	geometry Geometry
	sess     *session
	ignored  *int
	taps     tapDetector
	lastAt   time.Time
	stats    Stats
}

// New validates the settings and returns an idle arbitrator.
func New(opts Options) (*Arbitrator, error) {
	if err := opts.Settings.Validate(); err != nil {
		return nil, err
	}
	if opts.Sink == nil {
		opts.Sink = NopSink{}
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Arbitrator{
		clock:    opts.Clock,
		sink:     opts.Sink,
		log:      opts.Logger,
		settings: opts.Settings.clone(),
		geometry: opts.Geometry,
	}, nil
}

// SetSettings swaps the configuration used by the next session.
func (a *Arbitrator) SetSettings(s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	a.settings = s.clone()
	a.mu.Unlock()
	return nil
}

// Settings returns the configuration for the next session.
func (a *Arbitrator) Settings() Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings.clone()
}

// SetGeometry swaps the surface size used by the next session.
func (a *Arbitrator) SetGeometry(g Geometry) error {
	if err := g.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	a.geometry = g
	a.mu.Unlock()
	return nil
}

// Geometry returns the surface size for the next session.
func (a *Arbitrator) Geometry() Geometry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.geometry
}

// Active returns the gesture the open session locked onto, or "".
func (a *Arbitrator) Active() Kind {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sess == nil {
		return ""
	}
	return a.sess.active
}

// Stats returns a copy of the counters.
func (a *Arbitrator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Handle feeds one pointer event. Malformed events are dropped and reported
// with ErrMalformedSequence; nothing is emitted for them.
func (a *Arbitrator) Handle(ev PointerEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if ev.At.IsZero() {
		ev.At = a.clock.Now()
	}
	if !a.lastAt.IsZero() && ev.At.Before(a.lastAt) {
		return a.violation(ev, "timestamp precedes previous event")
	}

	var err error
	switch ev.Kind {
	case EventDown:
		err = a.down(ev)
	case EventMove:
		err = a.move(ev)
	case EventUp:
		err = a.up(ev)
	default:
		return a.violation(ev, fmt.Sprintf("unknown event kind %q", ev.Kind))
	}
	if errors.Is(err, ErrMalformedSequence) {
		return err
	}
	a.lastAt = ev.At
	return err
}

// Cancel tears down the open session and the pending tap without emitting anything.
func (a *Arbitrator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if s := a.sess; s != nil {
		a.stopTimers(s)
		a.sess = nil
		a.stats.Cancelled++
	}
	a.ignored = nil
	a.taps.reset()
}

// down opens a session unless the contact starts in a dead band.
func (a *Arbitrator) down(ev PointerEvent) error {
	if a.sess != nil || a.ignored != nil {
		return a.violation(ev, "down while another contact is pressed")
	}
	if err := a.geometry.Validate(); err != nil {
		a.log.WithError(err).Warn("gesture: refusing session")
		return err
	}

	cfg := a.settings
	zone := Classify(ev.Point(), a.geometry, cfg.Layout)
	if zone == ZoneDead {
		id := ev.ID
		a.ignored = &id
		a.stats.DeadZone++
		return nil
	}

	s := &session{
		id:    ev.ID,
		start: ev,
		last:  ev,
		zone:  zone,
		geo:   a.geometry,
		cfg:   cfg,
		tapOK: true,
	}
	a.sess = s
	a.stats.Sessions++
	a.emit(a.taps.onDown(ev, cfg.Tap))

	if cfg.LongPress.Enabled {
		t, err := a.clock.AfterFunc(cfg.LongPress.Timeout, func() { a.longPressDue(s) })
		if err != nil {
			return a.abort(s, fmt.Errorf("schedule long press: %w", err))
		}
		s.longWait = t
	}
	return nil
}

// move updates the session with a new position.
func (a *Arbitrator) move(ev PointerEvent) error {
	if a.swallowIgnored(ev) {
		return nil
	}
	s, err := a.current(ev)
	if err != nil {
		return err
	}
	if s.aborted {
		s.last = ev
		return nil
	}
	a.track(s, ev)
	return nil
}

// up finalizes whichever gesture won, or resolves a tap.
func (a *Arbitrator) up(ev PointerEvent) error {
	if a.swallowIgnored(ev) {
		a.ignored = nil
		return nil
	}
	s, err := a.current(ev)
	if err != nil {
		return err
	}
	a.sess = nil
	a.stopTimers(s)
	if s.aborted {
		return nil
	}
	if ev.X != s.last.X || ev.Y != s.last.Y {
		a.track(s, ev)
	}

	dur := ev.At.Sub(s.start.At)
	switch s.active {
	case KindVolume, KindBrightness:
		a.emit(s.level.finish(s.zone, s.cfg.Level, Summary{Duration: dur}))
	case KindSeek:
		a.emit(s.seek.finish(s.zone, Summary{Duration: dur}))
	case KindLongPress:
		a.emit(s.long.finish(s.zone, ev.At, true))
	default:
		if s.tapOK && isTap(s.start, ev, s.maxDist, s.cfg.Tap) {
			a.completeTap(s, ev, dur)
			return nil
		}
		a.emit(a.taps.disqualify())
	}
	return nil
}

// track applies a position to the session, activating a drag once one qualifies.
func (a *Arbitrator) track(s *session, ev PointerEvent) {
	s.last = ev
	dx, dy := ev.X-s.start.X, ev.Y-s.start.Y
	dist := math.Hypot(dx, dy)
	if dist > s.maxDist {
		s.maxDist = dist
	}

	switch s.active {
	case KindVolume, KindBrightness:
		a.emit(s.level.move(ev.Y))
		return
	case KindSeek:
		a.emit(s.seek.move(ev.X))
		return
	case KindLongPress:
		a.emit(s.long.move(ev))
		return
	}

	if s.maxDist > s.cfg.Tap.TouchSlop {
		a.dropTap(s)
		a.dropLongPress(s)
	}
	if dist < s.cfg.MinSwipeDistance {
		return
	}

	if kind := verticalFamily(s.zone, s.cfg.Level); kind != "" && isVertical(dx, dy) {
		a.activate(s, kind)
		s.level = newLevelDrag(kind, s.start, s.geo, s.cfg.Level)
		a.emit(s.level.move(ev.Y))
		return
	}
	if seekAllowed(s.zone, s.cfg.Seek) && isHorizontal(dx, dy) {
		a.activate(s, KindSeek)
		s.seek = newSeekDrag(s.start, s.geo, s.cfg.Seek)
		a.emit(s.seek.move(ev.X))
	}
}

// activate locks the session onto kind and rules out every other family.
func (a *Arbitrator) activate(s *session, kind Kind) {
	a.dropTap(s)
	a.dropLongPress(s)
	s.active = kind
	a.emit([]Command{startCmd(kind, s.zone)})
}

// completeTap emits a double tap or arms the single-tap window.
func (a *Arbitrator) completeTap(s *session, ev PointerEvent, dur time.Duration) {
	if cmds, ok := a.taps.completeDouble(ev, s.geo, s.zone, dur); ok {
		a.emit(cmds)
		return
	}
	p := &pendingTap{at: ev.At, pos: ev.Point(), zone: s.zone, dur: dur}
	if !s.cfg.Tap.DoubleTapEnabled {
		a.emit(singleTap(p))
		return
	}
	t, err := a.clock.AfterFunc(s.cfg.Tap.DoubleTapTimeout, func() { a.tapDue(p) })
	if err != nil {
		a.stats.Aborted++
		a.log.WithError(err).Warn("gesture: dropping tap, cannot arm double-tap window")
		return
	}
	p.timer = t
	a.taps.pending = p
}

// tapDue confirms a single tap once the double-tap window closed.
func (a *Arbitrator) tapDue(p *pendingTap) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.taps.pending != p {
		return
	}
	a.taps.pending = nil
	a.emit(singleTap(p))
}

// longPressDue activates the long press if the contact is still a candidate.
func (a *Arbitrator) longPressDue(s *session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sess != s || s.aborted || s.active != "" || s.longWait == nil {
		return
	}
	s.longWait = nil
	now := a.clock.Now()
	a.dropTap(s)
	s.active = KindLongPress
	s.long = newLongPress(s.cfg.LongPress, now, s.last)
	a.emit(s.long.begin(s.zone))
	a.armLevel(s, now)
}

// armLevel schedules the next rung of the speed ladder.
func (a *Arbitrator) armLevel(s *session, now time.Time) {
	delay, ok := s.long.nextDelay(now)
	if !ok {
		return
	}
	level := s.long.level
	t, err := a.clock.AfterFunc(delay, func() { a.levelDue(s, level) })
	if err != nil {
		_ = a.abort(s, fmt.Errorf("schedule speed level: %w", err))
		return
	}
	s.long.timer = t
}

// levelDue escalates the speed if the hold is still the same rung.
func (a *Arbitrator) levelDue(s *session, level int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.sess != s || s.aborted || s.active != KindLongPress || s.long.level != level {
		return
	}
	s.long.timer = nil
	now := a.clock.Now()
	a.emit(s.long.advance())
	a.armLevel(s, now)
}

// abort gives up on a session whose timers could not be scheduled.
// The rest of the contact is swallowed; an active long press is returned to normal speed.
func (a *Arbitrator) abort(s *session, cause error) error {
	a.stats.Aborted++
	a.stopTimers(s)
	s.aborted = true
	if s.active == KindLongPress {
		a.emit(s.long.finish(s.zone, a.clock.Now(), false))
	}
	s.tapOK = false
	a.emit(a.taps.disqualify())
	a.log.WithError(cause).WithField("pointer", s.id).Warn("gesture: session aborted")
	return fmt.Errorf("%w: %w", ErrSessionAborted, cause)
}

// dropTap rules out a tap for this contact and flushes a held first tap.
func (a *Arbitrator) dropTap(s *session) {
	if !s.tapOK {
		return
	}
	s.tapOK = false
	a.emit(a.taps.disqualify())
}

// dropLongPress cancels the long-press timer.
func (a *Arbitrator) dropLongPress(s *session) {
	if s.longWait != nil {
		s.longWait.Stop()
		s.longWait = nil
	}
}

// stopTimers cancels every timer the session owns.
func (a *Arbitrator) stopTimers(s *session) {
	a.dropLongPress(s)
	if s.long != nil {
		s.long.stop()
	}
}

// current returns the open session if ev belongs to it.
func (a *Arbitrator) current(ev PointerEvent) (*session, error) {
	s := a.sess
	if s == nil {
		return nil, a.violation(ev, fmt.Sprintf("%s without down", ev.Kind))
	}
	if ev.ID != s.id {
		return nil, a.violation(ev, fmt.Sprintf("%s from pointer %d while %d is pressed", ev.Kind, ev.ID, s.id))
	}
	return s, nil
}

// swallowIgnored reports whether ev belongs to a contact that started in a dead band.
func (a *Arbitrator) swallowIgnored(ev PointerEvent) bool {
	return a.sess == nil && a.ignored != nil && *a.ignored == ev.ID
}

// violation logs and counts a dropped event.
func (a *Arbitrator) violation(ev PointerEvent, msg string) error {
	a.stats.Violations++
	a.log.WithFields(logrus.Fields{
		"violation": msg,
		"pointer":   ev.ID,
		"kind":      ev.Kind,
	}).Warn("gesture: dropped event")
	return fmt.Errorf("%w: %s", ErrMalformedSequence, msg)
}

// emit hands cmds to the sink; a.mu must be held.
func (a *Arbitrator) emit(cmds []Command) {
	if len(cmds) == 0 {
		return
	}
	Dispatch(a.sink, cmds)
}
