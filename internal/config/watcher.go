package config

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// ApplyFunc receives every settings edit that validated.
type ApplyFunc func(gesture.Settings)

// Watcher reloads the settings file when it changes on disk.
type Watcher struct {
	path  string
	apply ApplyFunc
	log   logrus.FieldLogger
	fsw   *fsnotify.Watcher
}

// NewWatcher watches the directory holding path; editors that replace the
// file by rename are seen as a create of the same name.
func NewWatcher(path string, apply ApplyFunc, log logrus.FieldLogger) (*Watcher, error) {
	if apply == nil {
		return nil, errors.New("apply func is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return &Watcher{
		path:  filepath.Clean(path),
		apply: apply,
		log:   log.WithField("settings", path),
		fsw:   fsw,
	}, nil
}

// Run dispatches file events until ctx ends or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if err := w.Reload(); err != nil {
				w.log.WithError(err).Warn("settings: edit ignored")
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("settings: watch error")
		}
	}
}

// Reload reads the file and applies it when valid.
func (w *Watcher) Reload() error {
	f, err := LoadFile(w.path)
	if err != nil {
		return err
	}
	s, err := f.ToSettings()
	if err != nil {
		return err
	}
	w.apply(s)
	w.log.Info("settings: reloaded")
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
