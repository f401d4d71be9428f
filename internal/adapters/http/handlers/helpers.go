package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/dto"
	"github.com/ferrivbe/home-infrastructure/internal/domain"
	"github.com/ferrivbe/home-infrastructure/internal/platform/logging"
)

// maxJSONBodyBytes is the maximum allowed size for a JSON request body (1 MB).
const maxJSONBodyBytes = 1 << 20

// validatable is implemented by request DTOs that support validation.
type validatable interface {
	Validate() error
}

// decodeAndValidate decodes the JSON request body into dst and validates it.
// On decode or validation failure it writes the validation error envelope and
// returns false.
func decodeAndValidate[T validatable](w http.ResponseWriter, r *http.Request, log *logging.RequestLogger, dst T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		dto.WriteError(w, r, log, &domain.ValidationError{
			Fields: []domain.FieldError{{Location: "body", Message: "invalid JSON"}},
		})
		return false
	}

	if err := dst.Validate(); err != nil {
		dto.WriteError(w, r, log, err)
		return false
	}
	return true
}
