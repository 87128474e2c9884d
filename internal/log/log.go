// Package log provides structured logging for the gossipguard transport
// adapter. It wraps Go's log/slog with per-module child loggers so each
// subsystem's entries carry a stable "module" field, and a Decision
// helper that gives the one event the adapter emits on every message —
// a validation outcome — a single, consistent field shape instead of
// letting each call site build its own key-value list by hand.
package log

import (
	"log/slog"
	"os"
	"sync"
)

// Logger wraps slog.Logger with module-scoped context.
type Logger struct {
	inner *slog.Logger
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler. This
// is useful for testing or for writing to a custom destination.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

var (
	defaultMu     sync.Mutex
	defaultLogger *Logger
)

// Default returns the process-wide logger used by callers that do not
// construct their own, lazily initialized at LevelInfo on first use so
// that a SetDefault call made before any logging happens never gets
// clobbered by an eager package init.
func Default() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = New(slog.LevelInfo)
	}
	return defaultLogger
}

// SetDefault replaces the process-wide default logger.
func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

// Module returns a child logger with an additional "module" attribute. This
// is the primary way subsystems (transport, validator, config, ...) obtain
// their own contextual logger.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// Decision logs one validation outcome. Rejections log at Warn (they
// represent an active penalty applied to a peer); everything else logs
// at Debug. target and score are omitted from the Debug case since
// Accept/Ignore decisions never carry a scoring event.
func (l *Logger) Decision(acceptance, reason, target string, score float64) {
	if acceptance == "reject" {
		l.inner.Warn("message rejected", "reason", reason, "target", target, "score", score)
		return
	}
	l.inner.Debug("message validated", "acceptance", acceptance, "reason", reason)
}
