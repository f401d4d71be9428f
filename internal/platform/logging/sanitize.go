package logging

// maskMarker replaces the value of masked payload fields entirely.
const maskMarker = "[masked]"

// trimLimit is the maximum length of trimmable string values before they are
// truncated with an ellipsis marker.
const trimLimit = 100

// maskProperties are payload field names whose values are credentials and are
// replaced with maskMarker.
var maskProperties = map[string]bool{
	"password":      true,
	"access_token":  true,
	"refresh_token": true,
	"id_token":      true,
}

// trimProperties are payload field names whose string values tend to be large
// and are truncated to trimLimit characters.
var trimProperties = map[string]bool{
	"file_content": true,
	"text":         true,
	"url":          true,
}

// Sanitize masks and trims known fields of a decoded JSON payload before it
// is logged. Only the top-level keys of a JSON object are inspected; nested
// objects pass through untouched. A nil payload yields nil, and non-object
// payloads (arrays, scalars) pass through unchanged. The input is never
// mutated.
func Sanitize(payload any) any {
	if payload == nil {
		return nil
	}

	m, ok := payload.(map[string]any)
	if !ok {
		return payload
	}

	out := make(map[string]any, len(m))
	for key, value := range m {
		switch {
		case maskProperties[key]:
			out[key] = maskMarker
		case trimProperties[key]:
			if s, ok := value.(string); ok && len(s) > trimLimit {
				out[key] = s[:trimLimit] + "..."
			} else {
				out[key] = value
			}
		default:
			out[key] = value
		}
	}
	return out
}
