// Package logging sets up diagnostics and the styled run verdict.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss/v2"
)

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel converts "debug", "info", "warn" or "error" to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level: %q", s)
	}
	return l, nil
}

var (
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Verdict prints the final run result, colored when UseColor allows it.
func Verdict(w io.Writer, ok bool) {
	msg, style := "lint-time failed", failureStyle
	if ok {
		msg, style = "lint-time success", successStyle
	}
	if UseColor(w) {
		msg = style.Render(msg)
	}
	fmt.Fprintln(w, msg)
}

// UseColor reports whether styled output should be written to w. It is
// false for non-terminals and when NO_COLOR or TERM=dumb is set.
func UseColor(w io.Writer) bool {
	switch colorprofile.Detect(w, os.Environ()) {
	case colorprofile.NoTTY, colorprofile.Ascii:
		return false
	}
	return true
}
