// ABOUTME: Tests for logger construction.
// ABOUTME: Checks level filtering and the json/console encoders.
package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "info", Format: "json", Output: &buf})

	log.Debug("hidden")
	log.Info("store loaded", zap.Int("bikes", 2))
	_ = log.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "store loaded" || entry["level"] != "info" {
		t.Errorf("unexpected entry %v", entry)
	}
	if entry["bikes"] != float64(2) {
		t.Errorf("bikes field = %v", entry["bikes"])
	}
}

func TestNewDefaultsToWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "loud", Output: &buf})

	log.Info("quiet")
	log.Warn("persisted snapshot unreadable")
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info should be filtered at the default level")
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "persisted snapshot unreadable") {
		t.Errorf("expected console warning, got %q", out)
	}
}
