package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)
	log.Debug("hidden")
	log.Warn("shown", "glob", "*.ts")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line leaked: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "glob=*.ts") {
		t.Errorf("missing warn line: %q", out)
	}
}

func TestVerdictPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	Verdict(&buf, true)
	Verdict(&buf, false)
	if got := buf.String(); got != "lint-time success\nlint-time failed\n" {
		t.Errorf("Verdict output = %q", got)
	}
}

func TestUseColor(t *testing.T) {
	var buf bytes.Buffer
	if UseColor(&buf) {
		t.Error("a buffer is not a terminal")
	}

	t.Setenv("CLICOLOR_FORCE", "1")
	t.Setenv("NO_COLOR", "1")
	if UseColor(&buf) {
		t.Error("NO_COLOR should win over CLICOLOR_FORCE")
	}
}
