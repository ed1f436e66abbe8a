package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"ERROR", log.ErrorLevel},
		{"nonsense", log.InfoLevel},
		{"", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := ParseLevel(tt.level); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("not shown")
	logger.Warn("image fetch failed")

	out := buf.String()
	if strings.Contains(out, "not shown") {
		t.Errorf("info message leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "image fetch failed") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestDefault(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() must return the same logger on every call")
	}
}
