package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"mercator-hq/gambit/pkg/config"
)

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupWithWriter(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("SetupWithWriter: %v", err)
	}

	logger.Info("probe served", "depth", 4)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "probe served" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["depth"] != float64(4) {
		t.Errorf("depth = %v", entry["depth"])
	}
}

func TestSetup_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger, err := SetupWithWriter(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("SetupWithWriter: %v", err)
	}

	logger.Info("suppressed below warn")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "suppressed") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing from output: %q", out)
	}
}

func TestSetup_RejectsUnknownSettings(t *testing.T) {
	if _, err := SetupWithWriter(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{}); err == nil {
		t.Error("unknown level must be rejected")
	}
	if _, err := SetupWithWriter(config.LoggingConfig{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Error("unknown format must be rejected")
	}
}

func TestParseLevel_Defaults(t *testing.T) {
	lvl, err := ParseLevel("")
	if err != nil || lvl != slog.LevelInfo {
		t.Errorf("empty level = %v, %v; want info", lvl, err)
	}
}
