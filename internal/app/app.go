// Package app wires the gesture engine, its sinks, and the HTTP surface together.
package app

import (
	"errors"
	"sync"

	"github.com/frudas24/astralgesture/internal/clock"
	"github.com/frudas24/astralgesture/internal/config"
	"github.com/frudas24/astralgesture/internal/control"
	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/frudas24/astralgesture/internal/player"
	"github.com/frudas24/astralgesture/internal/session"
	"github.com/frudas24/astralgesture/internal/telemetry"
	"github.com/sirupsen/logrus"
)

// App coordinates the HTTP API, the control websocket, and the gesture engine.
type App struct {
	mu          sync.Mutex
	cfg         config.Config
	log         logrus.FieldLogger
	clock       *clock.Real
	session     *session.Session
	engine      *gesture.Arbitrator
	player      *player.State
	telemetry   *telemetry.Ring
	control     *control.Server
	file        config.File
	defaultFile config.File
}

// New creates an application with its dependencies wired.
// file is the settings document loaded at startup; a settings reset returns to it.
func New(cfg config.Config, sess *session.Session, file config.File, log logrus.FieldLogger) (*App, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	settings, err := file.ToSettings()
	if err != nil {
		return nil, err
	}

	clk := clock.NewReal()
	state := player.New(0)
	state.SetVolumeCeiling(settings.Level.VolumeCeiling())
	ring := telemetry.New(cfg.TelemetryCapacity)
	outbox := control.NewOutbox(log.WithField("component", "outbox"))

	engine, err := gesture.New(gesture.Options{
		Settings: settings,
		Geometry: sess.Geometry(),
		Sink:     gesture.Fanout(state, ring, outbox),
		Clock:    clk,
		Logger:   log.WithField("component", "gesture"),
	})
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		clock:       clk,
		session:     sess,
		engine:      engine,
		player:      state,
		telemetry:   ring,
		control:     control.NewServer(sess, engine, outbox, log.WithField("component", "control")),
		file:        file,
		defaultFile: file,
	}, nil
}

// ApplySettings swaps the engine configuration; the session in progress keeps its snapshot.
func (a *App) ApplySettings(s gesture.Settings) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.engine.SetSettings(s); err != nil {
		return err
	}
	a.player.SetVolumeCeiling(s.Level.VolumeCeiling())
	a.file = config.FromSettings(s)
	return nil
}

// SettingsFile returns the settings document currently applied.
func (a *App) SettingsFile() config.File {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.file
}

// Engine returns the gesture arbitrator.
func (a *App) Engine() *gesture.Arbitrator {
	return a.engine
}

// Control returns the control websocket handler.
func (a *App) Control() *control.Server {
	return a.control
}

// Stop abandons any gesture in progress and stops scheduling new timers.
func (a *App) Stop() error {
	a.engine.Cancel()
	a.clock.Close()
	return nil
}
