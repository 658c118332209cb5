package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_JSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: INFO, Output: &buf, Service: "reservations"})

	log.Info("Reservation created", "id", 1001)
	log.Debug("dropped at info level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if record[SERVICE] != "reservations" {
		t.Errorf("expected service attribute, got %v", record[SERVICE])
	}
	if record["msg"] != "Reservation created" {
		t.Errorf("unexpected msg %v", record["msg"])
	}
	if record["id"] != float64(1001) {
		t.Errorf("expected id 1001, got %v", record["id"])
	}
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: DEBUG, Format: TEXT, Output: &buf})

	log.With("room", 101).Debug("room checked")

	out := buf.String()
	if !strings.Contains(out, "msg=\"room checked\"") || !strings.Contains(out, "room=101") {
		t.Errorf("unexpected text output %q", out)
	}
}
