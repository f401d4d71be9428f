// Package domain contains the core entity and error types shared across the
// service. It holds the Source entity, the typed application error used for
// HTTP error translation, and the field-level validation error type.
package domain
