package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/frudas24/astralgesture/internal/app"
	"github.com/frudas24/astralgesture/internal/config"
	"github.com/frudas24/astralgesture/internal/gesture"
	"github.com/frudas24/astralgesture/internal/logging"
	"github.com/frudas24/astralgesture/internal/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveDebug bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the control websocket and HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable verbose debug logging")
}

// runServe wires the application and blocks until shutdown.
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveDebug {
		cfg.LogLevel = "debug"
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogJSON)
	logStartup(log, cfg)

	file, err := loadOrCreateSettings(log, cfg.SettingsPath)
	if err != nil {
		return err
	}

	geo := gesture.Geometry{Width: float64(cfg.ScreenWidth), Height: float64(cfg.ScreenHeight)}
	sess := session.New(cfg.UIPassword, geo)
	appInstance, err := app.New(cfg, sess, file, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := appInstance.Stop(); err != nil {
			log.WithError(err).Warn("shutdown")
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := config.NewWatcher(cfg.SettingsPath, func(s gesture.Settings) {
		if err := appInstance.ApplySettings(s); err != nil {
			log.WithError(err).Warn("settings: reload rejected")
		}
	}, log)
	if err != nil {
		log.WithError(err).Warn("settings: hot reload disabled")
	} else {
		defer watcher.Close()
		go func() {
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Warn("settings: watcher stopped")
			}
		}()
	}

	mux := http.NewServeMux()
	appInstance.RegisterRoutes(mux)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadOrCreateSettings reads the settings file, writing the defaults on first run.
func loadOrCreateSettings(log logrus.FieldLogger, path string) (config.File, error) {
	if !fileExists(path) {
		file := config.DefaultFile()
		if err := config.WriteFile(path, file); err != nil {
			return config.File{}, err
		}
		log.WithField("path", path).Info("settings: wrote defaults")
		return file, nil
	}
	file, err := config.LoadFile(path)
	if err != nil {
		return config.File{}, err
	}
	if err := file.Validate(); err != nil {
		return config.File{}, err
	}
	return file, nil
}

// logStartup prints startup checks and connection info.
func logStartup(log logrus.FieldLogger, cfg config.Config) {
	envPath := filepath.Join(cfg.DataDir, ".env")
	log.WithFields(logrus.Fields{
		"env":      fileExists(envPath),
		"settings": cfg.SettingsPath,
		"screen":   []int{cfg.ScreenWidth, cfg.ScreenHeight},
	}).Info("astralgestured starting")
	logListenStatus(log, cfg.ListenAddr)
}

// logListenStatus reports the listen address and a local URL helper.
func logListenStatus(log logrus.FieldLogger, addr string) {
	entry := log.WithField("addr", addr)
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		entry.Info("listening")
		return
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	entry.WithField("url", "http://"+net.JoinHostPort(host, port)).Info("listening")
}

// fileExists reports whether a path exists and is a file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
