// Package logging provides the leveled stderr logger used across
// itemsync, with redaction support so secret field values never reach
// the terminal or CI logs.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Logger writes leveled, optionally colored messages to stderr.
type Logger struct {
	out     io.Writer
	debug   bool
	noColor bool
}

// New creates a logger. Debug messages are dropped unless debug is
// set; colors are suppressed when noColor is set.
func New(debug, noColor bool) *Logger {
	return &Logger{out: os.Stderr, debug: debug, noColor: noColor}
}

// NewWithWriter creates a logger writing to the given writer. Used in
// tests.
func NewWithWriter(w io.Writer, debug bool) *Logger {
	return &Logger{out: w, debug: debug, noColor: true}
}

func (l *Logger) emit(color, mark, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if l.noColor {
		fmt.Fprintf(l.out, "%s %s\n", mark, msg)
		return
	}
	fmt.Fprintf(l.out, "%s%s\033[0m %s\n", color, mark, msg)
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	l.emit("\033[32m", "✓", format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...any) {
	l.emit("\033[33m", "⚠", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...any) {
	l.emit("\033[31m", "✗", format, args...)
}

// Debug logs a debug message when debug mode is enabled.
func (l *Logger) Debug(format string, args ...any) {
	if !l.debug {
		return
	}
	l.emit("\033[36m", "[DEBUG]", format, args...)
}

// Secret wraps a sensitive value so any formatting of it is redacted.
type Secret string

// String implements fmt.Stringer, always returning a redacted value.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer for %#v formatting.
func (s Secret) GoString() string { return "[REDACTED]" }

// Redact replaces occurrences of the given secrets in s.
func Redact(s string, secrets []string) string {
	for _, secret := range secrets {
		// Trivially short values are skipped so common substrings are
		// not mangled.
		if len(secret) > 3 {
			s = strings.ReplaceAll(s, secret, "[REDACTED]")
		}
	}
	return s
}
