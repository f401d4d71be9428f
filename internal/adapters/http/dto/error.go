package dto

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferrivbe/home-infrastructure/internal/domain"
	"github.com/ferrivbe/home-infrastructure/internal/platform/logging"
)

// ErrorResponse is the uniform error envelope returned on every failure path.
// Detail is free-form: a string for most errors, a field list for validation
// failures. All four fields are always serialized.
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Detail    any    `json:"detail"`
	Target    string `json:"target"`
}

// Fixed envelopes for the non-typed error categories.
const (
	codeValidation        = "RequestValidationError"
	msgValidation         = "There are errors in the request."
	codeGenericException  = "GenericExceptionRaised"
	msgGenericException   = "Something went wrong inside a process."
	codeInternalServer    = "InternalServerError"
	msgInternalServer     = "Something went wrong!"
	contentTypeJSON       = "application/json"
	headerContentTypeName = "Content-Type"
)

// Target formats the error envelope target for a request as "METHOD|path".
func Target(r *http.Request) string {
	return r.Method + "|" + r.URL.Path
}

// NewErrorResponse translates an error into its envelope and HTTP status.
// Three categories are distinguished: typed application errors surface their
// own status/code/message/detail; validation errors become a 400 with the
// field list as structured detail; everything else becomes a generic 500 with
// the error text as detail.
func NewErrorResponse(r *http.Request, err error) (ErrorResponse, int) {
	target := Target(r)

	var appErr *domain.Error
	if errors.As(err, &appErr) {
		return ErrorResponse{
			ErrorCode: appErr.Code,
			Message:   appErr.Message,
			Detail:    appErr.Detail,
			Target:    target,
		}, appErr.Status
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return ErrorResponse{
			ErrorCode: codeValidation,
			Message:   msgValidation,
			Detail:    valErr.Fields,
			Target:    target,
		}, http.StatusBadRequest
	}

	return ErrorResponse{
		ErrorCode: codeInternalServer,
		Message:   msgInternalServer,
		Detail:    err.Error(),
		Target:    target,
	}, http.StatusInternalServerError
}

// NewInternalServerResponse builds the fixed 500 envelope used when the
// observability middleware cannot inspect or replay a response body.
func NewInternalServerResponse(r *http.Request, detail string) ErrorResponse {
	return ErrorResponse{
		ErrorCode: codeInternalServer,
		Message:   msgInternalServer,
		Detail:    detail,
		Target:    target500(r),
	}
}

// target500 mirrors Target but includes the full URL, matching the shape the
// observability middleware has always logged for replaced responses.
func target500(r *http.Request) string {
	return r.Method + "|" + r.URL.String()
}

// NewFrameworkErrorResponse builds the envelope for routing-layer errors
// (unknown route, wrong method) that never reach a handler. The original
// status code is preserved; code and message are fixed.
func NewFrameworkErrorResponse(r *http.Request, status int) ErrorResponse {
	return ErrorResponse{
		ErrorCode: codeGenericException,
		Message:   msgGenericException,
		Detail:    http.StatusText(status),
		Target:    Target(r),
	}
}

// WriteError translates err, logs the envelope exactly once, and writes the
// JSON error response. This is the single exit point for every failure path
// behind the observability middleware.
func WriteError(w http.ResponseWriter, r *http.Request, logger *logging.RequestLogger, err error) {
	resp, status := NewErrorResponse(r, err)
	logger.Error(r, resp.Payload(), "event")
	WriteJSON(w, r, status, resp)
}

// WriteFrameworkError logs and writes a routing-layer error envelope with the
// given status.
func WriteFrameworkError(w http.ResponseWriter, r *http.Request, logger *logging.RequestLogger, status int) {
	resp := NewFrameworkErrorResponse(r, status)
	logger.Error(r, resp.Payload(), "event")
	WriteJSON(w, r, status, resp)
}

// Payload renders the envelope as the mapping shape the payload sanitizer
// operates on.
func (e ErrorResponse) Payload() map[string]any {
	return map[string]any{
		"error_code": e.ErrorCode,
		"message":    e.Message,
		"detail":     e.Detail,
		"target":     e.Target,
	}
}

// WriteJSON writes v as a JSON response with the given status code. Encoding
// failures are logged and otherwise swallowed; by that point the status line
// has already been committed.
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set(headerContentTypeName, contentTypeJSON)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "failed to encode response",
			slog.Any("error", err),
		)
	}
}
