package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// SensitiveHeaders is the canonical set of HTTP header names (lowercase) that
// carry credentials and must never reach the log sink in clear text. Payload
// field masking is handled separately by Sanitize; this layer only guards
// header values that escape call-site handling.
var SensitiveHeaders = map[string]bool{
	"authorization": true,
	"x-api-key":     true,
	"cookie":        true,
}

// bearerPattern matches "Bearer <token>" strings that appear as raw values.
var bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)

// newRedactAttr returns a masq-powered ReplaceAttr function for use in
// slog.HandlerOptions. It redacts by field name for sensitive headers and by
// regex for raw bearer tokens. Payload keys (password, access_token, ...) are
// deliberately not listed here: the payload sanitizer owns those with its
// shallow top-level semantics, and adding them to masq would deep-mask nested
// structures the sanitizer leaves alone.
func newRedactAttr() func([]string, slog.Attr) slog.Attr {
	opts := make([]masq.Option, 0, 1+len(SensitiveHeaders))

	for name := range SensitiveHeaders {
		opts = append(opts, masq.WithFieldName(name))
	}
	opts = append(opts, masq.WithRegex(bearerPattern))

	return masq.New(opts...)
}
