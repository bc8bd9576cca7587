// Package logger is the structured logging layer shared by the API server,
// the report commands and the analytics engine. Entries carry the request,
// operation and category they belong to so a single insights computation can
// be followed across the loader, the engine and the storage backend.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"
)

// Level represents log severity levels
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a configured level name to a Level. Unknown names
// fall back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field is one structured key/value attached to an entry
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration fields are written as "<key>_ms" in fractional milliseconds
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Category names the activity category an entry concerns
func Category(name string) Field {
	return Field{Key: categoryField, Value: name}
}

// Backend names the storage driver an entry concerns
func Backend(name string) Field {
	return Field{Key: "backend", Value: name}
}

// WindowDays records the trailing window an engine call used
func WindowDays(days int) Field {
	return Field{Key: "window_days", Value: days}
}

// Logger is implemented by the slog backend and by anything tests substitute
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a Logger that adds fields to every entry
	With(fields ...Field) Logger
	// WithContext returns a Logger carrying the request ID, client IP,
	// operation and category stored in ctx
	WithContext(ctx context.Context) Logger

	// Enabled reports whether entries at level are written
	Enabled(level Level) bool
}

// Config holds logging configuration
type Config struct {
	// Level is the minimum level written
	Level Level
	// Format is "json" or "text"
	Format string
	// Component is attached to every entry ("api", "cli")
	Component string
	// Output defaults to stderr
	Output io.Writer
}

// Discard returns a Logger that drops everything; used by tests
func Discard() Logger {
	return NewSlogLogger(Config{Level: LevelError, Format: "text", Output: io.Discard})
}

var defaultLogger Logger

// SetDefault replaces the process-wide logger returned by Default and used
// when a context carries none
func SetDefault(l Logger) {
	defaultLogger = l
}

// Default returns the process-wide logger
func Default() Logger {
	if defaultLogger == nil {
		defaultLogger = NewSlogLogger(Config{Level: LevelInfo, Format: "json", Output: os.Stderr})
	}
	return defaultLogger
}
