package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/frudas24/astralgesture/internal/config"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// writeTemp writes body to a file in a per-test directory.
func writeTemp(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// TestValidate_AcceptsDefaults verifies a written default file validates.
func TestValidate_AcceptsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gestures.yaml")
	if err := config.WriteFile(path, config.DefaultFile()); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out, err := execute(t, "validate", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "ok") {
		t.Fatalf("unexpected output: %q", out)
	}
}

// TestValidate_RejectsInvalid verifies validation errors fail the command.
func TestValidate_RejectsInvalid(t *testing.T) {
	path := writeTemp(t, "bad.yaml", "level:\n  volume_side: middle\n")
	if _, err := execute(t, "validate", path); err == nil {
		t.Fatalf("expected validation error")
	}
}

// TestReplay_PrintsCommands verifies a traced double tap prints its commands.
func TestReplay_PrintsCommands(t *testing.T) {
	path := writeTemp(t, "trace.yaml", `
width: 1000
height: 1000
steps:
  - {at_ms: 0, kind: down, id: 1, x: 800, y: 500}
  - {at_ms: 50, kind: up, id: 1, x: 800, y: 500}
  - {at_ms: 200, kind: down, id: 1, x: 805, y: 500}
  - {at_ms: 250, kind: up, id: 1, x: 805, y: 500}
`)
	out, err := execute(t, "replay", path)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !strings.Contains(out, "tap seek_fwd_10s") {
		t.Fatalf("expected forward seek tap, got:\n%s", out)
	}
	if strings.Contains(out, "toggle_controls") {
		t.Fatalf("double tap must not emit a single tap:\n%s", out)
	}
}
