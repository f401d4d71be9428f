// Package logging provides structured logger construction and the
// request-scoped event logger used by the HTTP middleware pipeline.
//
// Logger construction:
//
//	base := logging.New("info", "json", os.Stderr)
//	logger := logging.NewRequestLogger(base, "home-infrastructure")
//
// Every emission is a single JSON line shaped as a log event:
//
//	{"severity":"info","message":"client_received_request","detail":{...},"timestamp":1716230400.123}
//
// The detail mapping carries the service name, the request target, the
// sanitized payload, the x-forwarded-for header, and the correlation id.
// Fields with no value are omitted entirely.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"
)

// contextKey is the unexported key type for storing loggers in context.
type contextKey struct{}

// requestIDKey is the context key for the per-request correlation id.
type requestIDKey struct{}

// New creates a configured *slog.Logger emitting log events.
//
// The level parameter sets the minimum log level. Valid values are "debug",
// "info", "warn", and "error". Unrecognized values default to info.
//
// The format parameter selects the output handler. "text" uses
// slog.NewTextHandler; all other values (including "json") use
// slog.NewJSONHandler.
//
// The built-in slog keys are renamed to the log event shape: time becomes a
// numeric "timestamp" (epoch seconds), level becomes a lowercase "severity",
// and msg becomes "message". Sensitive header values are redacted via masq.
func New(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       parseLevel(level),
		ReplaceAttr: newReplaceAttr(),
	}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler)
}

// WithLogger returns a new context with the given logger stored in it.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a *slog.Logger from the context.
// If no logger is stored, it returns slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithRequestID returns a new context carrying the correlation id generated
// for the current request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext extracts the correlation id from the context.
// Returns an empty string if none is stored.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// newReplaceAttr renames the slog built-in keys to the log event shape and
// delegates everything else to the masq redaction layer.
func newReplaceAttr() func([]string, slog.Attr) slog.Attr {
	redact := newRedactAttr()

	return func(groups []string, a slog.Attr) slog.Attr {
		if len(groups) == 0 {
			switch a.Key {
			case slog.TimeKey:
				ts := float64(a.Value.Time().UnixNano()) / float64(time.Second)
				return slog.Float64("timestamp", ts)
			case slog.LevelKey:
				if lvl, ok := a.Value.Any().(slog.Level); ok {
					return slog.String("severity", strings.ToLower(lvl.String()))
				}
				return a
			case slog.MessageKey:
				return slog.Attr{Key: "message", Value: a.Value}
			}
		}
		return redact(groups, a)
	}
}

// parseLevel converts a level string to slog.Level.
// Unrecognized values default to slog.LevelInfo.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
