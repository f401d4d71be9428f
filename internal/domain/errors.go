package domain

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is a typed application error carrying the HTTP status and error code
// that the error translator surfaces verbatim to the client. It is distinct
// from framework routing errors and from unclassified runtime errors, which
// take their own translation paths.
type Error struct {
	Status  int
	Code    string
	Message string
	Detail  any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNotFoundError creates a 404 application error.
func NewNotFoundError(code, message string, detail any) *Error {
	return &Error{Status: http.StatusNotFound, Code: code, Message: message, Detail: detail}
}

// NewUnprocessableEntityError creates a 422 application error for payloads
// that parse but violate entity rules.
func NewUnprocessableEntityError(code, message string, detail any) *Error {
	return &Error{Status: http.StatusUnprocessableEntity, Code: code, Message: message, Detail: detail}
}

// NewFailedDependencyError creates a 424 application error for upstream
// collaborator failures.
func NewFailedDependencyError(code, message string, detail any) *Error {
	return &Error{Status: http.StatusFailedDependency, Code: code, Message: message, Detail: detail}
}

// NewInternalServerError creates a 500 application error.
func NewInternalServerError(code, message string, detail any) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: code, Message: message, Detail: detail}
}

// FieldError describes a single failed constraint on a request field.
type FieldError struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// ValidationError carries per-field request validation failures. The error
// translator renders it as a 400 RequestValidationError envelope with the
// field list as structured detail.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Location+": "+f.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}
