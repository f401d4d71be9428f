package logging

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// openapiPath is excluded from info-level request logging to keep the noise
// of documentation polling out of the log stream.
const openapiPath = "/openapi.json"

// RequestLogger emits log events enriched with request context. It is
// constructed once at startup and shared by the middleware pipeline and the
// error translator; all state is read-only after construction.
type RequestLogger struct {
	base        *slog.Logger
	serviceName string
}

// NewRequestLogger creates a RequestLogger writing through the given base
// logger under the given service name.
func NewRequestLogger(base *slog.Logger, serviceName string) *RequestLogger {
	return &RequestLogger{base: base, serviceName: serviceName}
}

// ServiceName returns the log namespace this logger was constructed with.
func (l *RequestLogger) ServiceName() string {
	return l.serviceName
}

// Info emits an info log event. Requests for the OpenAPI document are
// suppressed entirely.
func (l *RequestLogger) Info(r *http.Request, payload any, message string) {
	if r.URL.Path == openapiPath {
		return
	}
	l.log(r, slog.LevelInfo, payload, message, nil)
}

// Error emits an error log event.
func (l *RequestLogger) Error(r *http.Request, payload any, message string) {
	l.log(r, slog.LevelError, payload, message, nil)
}

// Exception emits an error log event carrying the current goroutine stack.
// Used for recovered panics and other unclassified failures.
func (l *RequestLogger) Exception(r *http.Request, payload any, message string) {
	l.log(r, slog.LevelError, payload, message, debug.Stack())
}

func (l *RequestLogger) log(r *http.Request, level slog.Level, payload any, message string, stack []byte) {
	attrs := []slog.Attr{slog.Any("detail", l.detail(r, payload))}
	if stack != nil {
		attrs = append(attrs, slog.String("stack", string(stack)))
	}
	l.base.LogAttrs(r.Context(), level, message, attrs...)
}

// detail builds the log event detail mapping. Fields with no value are
// omitted rather than emitted as null.
func (l *RequestLogger) detail(r *http.Request, payload any) map[string]any {
	detail := map[string]any{
		"service_name": l.serviceName,
		"target":       r.Method + " " + r.URL.String(),
	}

	if sanitized := Sanitize(payload); sanitized != nil {
		detail["payload"] = sanitized
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		detail["x-forwarded-for"] = forwarded
	}
	if id := l.requestID(r); id != "" {
		detail["request_id"] = id
	}

	return detail
}

// requestID resolves the correlation id for the request: the id generated by
// the observability middleware when present, else one supplied by the caller
// in the request_id header.
func (l *RequestLogger) requestID(r *http.Request) string {
	if id := RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("request_id")
}
