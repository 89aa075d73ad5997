package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "warn", Format: "json", Console: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Info("hidden")
	log.Warn("shown", zap.Int("track", 7))
	_ = log.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains info record below level: %s", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"track":7`) {
		t.Errorf("output = %s, want warn record with track field", out)
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "groove.log")
	log, err := New(Config{Level: "debug", File: path, MaxSizeMB: 1})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	log.Debug("to file")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q, want record", data)
	}
}

func TestNewNop(t *testing.T) {
	log, err := New(Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("no-op logger reports enabled level")
	}
}
