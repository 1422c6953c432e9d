package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envKeys = []string{
	"LISTEN_ADDR", "DATA_DIR", "SETTINGS_PATH", "UI_PASSWORD", "LOG_LEVEL",
	"LOG_JSON", "SCREEN_WIDTH", "SCREEN_HEIGHT", "TELEMETRY_CAPACITY",
}

// clearEnv unsets every config key for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

// TestLoadFrom_Defaults verifies defaults apply when only the password is set.
func TestLoadFrom_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("UI_PASSWORD", "secret")
	dir := t.TempDir()

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.ListenAddr != defaultListenAddr || cfg.LogLevel != "info" || cfg.LogJSON {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.SettingsPath != filepath.Join(dir, "gestures.yaml") {
		t.Fatalf("settings path = %q", cfg.SettingsPath)
	}
	if cfg.ScreenWidth != 1920 || cfg.ScreenHeight != 1080 || cfg.TelemetryCapacity != 256 {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
}

// TestLoadFrom_RequiresPassword verifies UI_PASSWORD is mandatory.
func TestLoadFrom_RequiresPassword(t *testing.T) {
	clearEnv(t)
	if _, err := LoadFrom(t.TempDir()); err == nil {
		t.Fatalf("expected error without UI_PASSWORD")
	}
}

// TestLoadFrom_EnvOverrides verifies env values replace defaults.
func TestLoadFrom_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("UI_PASSWORD", "secret")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("LOG_JSON", "yes")
	t.Setenv("SCREEN_WIDTH", "2400")
	t.Setenv("SCREEN_HEIGHT", "1080")
	t.Setenv("SETTINGS_PATH", "/etc/astral/gestures.yaml")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.ListenAddr != "127.0.0.1:9000" || !cfg.LogJSON || cfg.ScreenWidth != 2400 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.SettingsPath != "/etc/astral/gestures.yaml" {
		t.Fatalf("settings path = %q", cfg.SettingsPath)
	}
}

// TestLoadFrom_RejectsBadNumbers verifies integer parsing and range checks.
func TestLoadFrom_RejectsBadNumbers(t *testing.T) {
	cases := map[string]string{
		"SCREEN_WIDTH":       "wide",
		"SCREEN_HEIGHT":      "0",
		"TELEMETRY_CAPACITY": "-1",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("UI_PASSWORD", "secret")
			t.Setenv(key, value)
			if _, err := LoadFrom(t.TempDir()); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}
}

// TestLoadFrom_EnvFile verifies .env values fill unset keys only.
func TestLoadFrom_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "warn")
	dir := t.TempDir()
	env := "# local\nexport UI_PASSWORD=\"fromfile\"\nLOG_LEVEL=debug\nnot a pair\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.UIPassword != "fromfile" {
		t.Fatalf("password = %q", cfg.UIPassword)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("process env should win, got %q", cfg.LogLevel)
	}
}

// TestParseEnvLine verifies comment, export and quote handling.
func TestParseEnvLine(t *testing.T) {
	cases := []struct {
		line  string
		key   string
		value string
		ok    bool
	}{
		{"A=1", "A", "1", true},
		{"export B = 'two'", "B", "two", true},
		{"# C=3", "", "", false},
		{"=4", "", "", false},
		{"novalue", "", "", false},
		{"D=x=y", "D", "x=y", true},
	}
	for _, tc := range cases {
		key, value, ok := parseEnvLine(tc.line)
		if key != tc.key || value != tc.value || ok != tc.ok {
			t.Fatalf("parseEnvLine(%q) = %q, %q, %v", tc.line, key, value, ok)
		}
	}
}
