package log

import (
	"fmt"
	"strings"
)

// Logger is a structured, leveled logger.
type Logger interface {
	// Debug logs low-level detail such as request and response sizes.
	Debug(msg string, keysAndValues ...any)
	// Info logs routine events.
	Info(msg string, keysAndValues ...any)
	// Warn logs unexpected but recoverable situations.
	Warn(msg string, keysAndValues ...any)
	// Error logs failures.
	Error(msg string, keysAndValues ...any)
	// Fatal logs an unrecoverable failure and may terminate the program.
	Fatal(msg string, keysAndValues ...any)
	// WithKV returns a logger that adds key=value to every entry.
	WithKV(key string, value any) Logger
	// GetAllKV returns the persistent key/value pairs of this logger.
	GetAllKV() []any
	// WithName returns a logger named after a component. Names nest with dots.
	WithName(name string) Logger
	// Name returns the logger's name.
	Name() string
	// AddCallerSkip returns a logger that skips extra stack frames when
	// reporting the caller. Implementations without caller info return themselves.
	AddCallerSkip(skip int) Logger
}

// Level is the severity of a log entry.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
	LevelFatal Level = "fatal"
)

// ParseLevel converts a case-insensitive level name into a Level.
func ParseLevel(s string) (Level, error) {
	switch lvl := Level(strings.ToLower(strings.TrimSpace(s))); lvl {
	case LevelDebug, LevelInfo, LevelWarn, LevelError, LevelFatal:
		return lvl, nil
	case "warning":
		return LevelWarn, nil
	default:
		return "", fmt.Errorf("unknown log level %q", s)
	}
}

// SpanEventRecorder records log entries on a trace span.
type SpanEventRecorder interface {
	TraceID() string
	SpanID() string

	// RecordEvent adds an event with key/value attributes to the span.
	RecordEvent(name string, keysAndValues ...any)
	// RecordError adds an event and marks the span as failed.
	RecordError(name string, keysAndValues ...any)
}
