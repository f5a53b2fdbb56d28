// Package logger provides structured JSON logging for sheet-events.
//
// The logger supports multiple log levels (DEBUG, INFO, WARN, ERROR) and outputs
// one JSON object per line through zerolog. All logs include timestamps and can
// include arbitrary structured fields. Fields attached to a context with
// WithFields are merged into entries logged through the *Ctx helpers.
//
// Example usage:
//
//	logger.Info("Feed loaded", logger.Fields{
//	    "events": 12,
//	    "source": "feed",
//	})
//
//	logger.Error("Fetching events failed", logger.Fields{
//	    "url": feedURL,
//	}, err)
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

// ParseLevel converts a level name such as "info" or "WARN" to a Level
func ParseLevel(s string) (Level, error) {
	switch Level(strings.ToUpper(strings.TrimSpace(s))) {
	case LevelDebug:
		return LevelDebug, nil
	case LevelInfo, "":
		return LevelInfo, nil
	case LevelWarn, "WARNING":
		return LevelWarn, nil
	case LevelError:
		return LevelError, nil
	}
	return "", fmt.Errorf("unknown log level: %q", s)
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger provides structured logging
type Logger struct {
	zl zerolog.Logger
}

// Fields represents structured log fields
type Fields map[string]interface{}

var defaultLogger *Logger

func init() {
	zerolog.TimestampFieldName = "timestamp"
	zerolog.TimeFieldFormat = time.RFC3339
	defaultLogger = New(LevelInfo, os.Stderr)
}

// New creates a JSON logger with the specified minimum log level and output destination.
// Messages below the minimum level will be discarded.
func New(level Level, output io.Writer) *Logger {
	return &Logger{
		zl: zerolog.New(output).Level(level.zerolog()).With().Timestamp().Logger(),
	}
}

// NewConsole creates a logger with human-readable, colorless console output
func NewConsole(level Level, output io.Writer) *Logger {
	w := zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339, NoColor: true}
	return &Logger{
		zl: zerolog.New(w).Level(level.zerolog()).With().Timestamp().Logger(),
	}
}

// SetDefault sets the default package-level logger used by the convenience functions
// (Debug, Info, Warn, Error). This allows centralizing logger configuration.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// Default returns the package-level logger
func Default() *Logger {
	return defaultLogger
}

// log writes a structured log entry
func (l *Logger) log(level Level, message string, fields Fields, err error) {
	evt := l.zl.WithLevel(level.zerolog())
	if evt == nil {
		return
	}
	if len(fields) > 0 {
		evt = evt.Fields(map[string]interface{}(fields))
	}
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg(message)
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs an informational message with optional structured fields.
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs a warning message with optional structured fields.
// Warning messages indicate potential issues that don't prevent operation.
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs an error message with optional structured fields and an error object.
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

// Debug logs a debug message with the default logger
func Debug(message string, fields Fields) {
	defaultLogger.Debug(message, fields)
}

// Info logs an info message with the default logger
func Info(message string, fields Fields) {
	defaultLogger.Info(message, fields)
}

// Warn logs a warning message with the default logger
func Warn(message string, fields Fields) {
	defaultLogger.Warn(message, fields)
}

// Error logs an error message with the default logger
func Error(message string, fields Fields, err error) {
	defaultLogger.Error(message, fields, err)
}

type fieldsKey struct{}

// WithFields returns a context carrying fields that the *Ctx helpers add to every entry
func WithFields(ctx context.Context, fields Fields) context.Context {
	merged := Fields{}
	for k, v := range ContextFields(ctx) {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// ContextFields returns the fields attached to ctx, or nil
func ContextFields(ctx context.Context) Fields {
	if ctx == nil {
		return nil
	}
	f, _ := ctx.Value(fieldsKey{}).(Fields)
	return f
}

func merge(ctx context.Context, fields Fields) Fields {
	base := ContextFields(ctx)
	if len(base) == 0 {
		return fields
	}
	out := make(Fields, len(base)+len(fields))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// DebugCtx logs a debug message with the context fields merged in
func DebugCtx(ctx context.Context, message string, fields Fields) {
	defaultLogger.Debug(message, merge(ctx, fields))
}

// InfoCtx logs an info message with the context fields merged in
func InfoCtx(ctx context.Context, message string, fields Fields) {
	defaultLogger.Info(message, merge(ctx, fields))
}

// WarnCtx logs a warning with the context fields merged in
func WarnCtx(ctx context.Context, message string, fields Fields) {
	defaultLogger.Warn(message, merge(ctx, fields))
}

// ErrorCtx logs an error with the context fields merged in
func ErrorCtx(ctx context.Context, message string, fields Fields, err error) {
	defaultLogger.Error(message, merge(ctx, fields), err)
}
