package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
)

// TestNew_JSONOutput verifies JSON formatting carries fields.
func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn", true)
	log.WithField("violation", "move without down").Warn("gesture: dropped event")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["violation"] != "move without down" || entry["level"] != "warning" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

// TestNew_LevelFilters verifies entries below the level are dropped.
func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "error", false)
	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}
}

// TestNew_UnknownLevelFallsBack verifies a typo does not silence logging.
func TestNew_UnknownLevelFallsBack(t *testing.T) {
	log := New(&bytes.Buffer{}, "loud", false)
	if log.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", log.GetLevel())
	}
}
