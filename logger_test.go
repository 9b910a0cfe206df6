package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger_WritesJSONRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	logger.Debug("capture.stats", "frames", 3)
	if buf.Len() != 0 {
		t.Fatalf("debug record emitted below the configured level: %q", buf.String())
	}

	logger.Info("capture.start", "fps", 30)
	var rec map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec); err != nil {
		t.Fatalf("output is not a JSON record: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "capture.start" || rec["fps"] != float64(30) {
		t.Fatalf("unexpected record: %v", rec)
	}
}
