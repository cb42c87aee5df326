package logging

import (
	"fmt"
	"io"
	"os"
)

// Logger writes human-readable progress to stderr. Output that belongs to the
// settings artifact contract is written elsewhere; everything here is
// commentary for the operator.
type Logger struct {
	out     io.Writer
	debug   bool
	noColor bool
}

// New creates a logger writing to stderr.
func New(debug, noColor bool) *Logger {
	return &Logger{out: os.Stderr, debug: debug, noColor: noColor}
}

// NewWithWriter creates a logger writing to the given writer (for tests).
func NewWithWriter(w io.Writer, debug, noColor bool) *Logger {
	return &Logger{out: w, debug: debug, noColor: noColor}
}

// Info logs a progress message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit("\033[32m✓\033[0m", "✓", format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit("\033[33m⚠\033[0m", "⚠", format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit("\033[31m✗\033[0m", "✗", format, args...)
}

// Debug logs a message only when debug mode is enabled.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.emit("\033[36m[DEBUG]\033[0m", "[DEBUG]", format, args...)
}

func (l *Logger) emit(colored, plain, format string, args ...interface{}) {
	prefix := colored
	if l.noColor {
		prefix = plain
	}
	fmt.Fprintf(l.out, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Secret is a credential value that must never appear in log output.
type Secret string

// String implements fmt.Stringer, always returning a redacted value.
func (s Secret) String() string {
	return "[REDACTED]"
}

// GoString implements fmt.GoStringer for %#v formatting.
func (s Secret) GoString() string {
	return "[REDACTED]"
}
