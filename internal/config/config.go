// Package config loads environment configuration and the gesture settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr        = "0.0.0.0:8787"
	defaultDataDir           = "./data"
	defaultSettingsFile      = "gestures.yaml"
	defaultLogLevel          = "info"
	defaultScreenWidth       = 1920
	defaultScreenHeight      = 1080
	defaultTelemetryCapacity = 256
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr        string
	UIPassword        string
	DataDir           string
	SettingsPath      string
	LogLevel          string
	LogJSON           bool
	ScreenWidth       int
	ScreenHeight      int
	TelemetryCapacity int
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	return LoadFrom(defaultDataDir)
}

// LoadFrom reads configuration from dataDir/.env and environment variables.
func LoadFrom(dataDir string) (Config, error) {
	cfg := Config{
		ListenAddr:        defaultListenAddr,
		DataDir:           dataDir,
		LogLevel:          defaultLogLevel,
		ScreenWidth:       defaultScreenWidth,
		ScreenHeight:      defaultScreenHeight,
		TelemetryCapacity: defaultTelemetryCapacity,
	}

	if err := loadEnvFile(filepath.Join(cfg.DataDir, ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.SettingsPath = envString("SETTINGS_PATH", filepath.Join(cfg.DataDir, defaultSettingsFile))
	cfg.LogLevel = envString("LOG_LEVEL", cfg.LogLevel)
	cfg.LogJSON = envBool("LOG_JSON", cfg.LogJSON)
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))

	width, err := envInt("SCREEN_WIDTH", cfg.ScreenWidth)
	if err != nil {
		return Config{}, err
	}
	if width <= 0 {
		return Config{}, fmt.Errorf("SCREEN_WIDTH must be > 0")
	}
	cfg.ScreenWidth = width

	height, err := envInt("SCREEN_HEIGHT", cfg.ScreenHeight)
	if err != nil {
		return Config{}, err
	}
	if height <= 0 {
		return Config{}, fmt.Errorf("SCREEN_HEIGHT must be > 0")
	}
	cfg.ScreenHeight = height

	capacity, err := envInt("TELEMETRY_CAPACITY", cfg.TelemetryCapacity)
	if err != nil {
		return Config{}, err
	}
	if capacity <= 0 {
		return Config{}, fmt.Errorf("TELEMETRY_CAPACITY must be > 0")
	}
	cfg.TelemetryCapacity = capacity

	if cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required")
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file without overriding the process env.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.Trim(strings.TrimSpace(value), `"'`), true
}
