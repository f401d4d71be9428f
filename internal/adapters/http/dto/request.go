// Package dto provides HTTP request/response data transfer objects and the
// uniform error envelope for the inbound HTTP adapter layer.
package dto

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ferrivbe/home-infrastructure/internal/domain"
)

// entityTextPattern restricts names and descriptions to letters, digits,
// whitespace, and hyphens.
var entityTextPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-]+$`)

// passwordSpecials is the set of characters accepted as the special-character
// class in password complexity checks.
const passwordSpecials = "!@#$%^&*()_+-=[]{}|;:,.<>?/`~"

// validate is the process-wide validator instance. Field names in validation
// errors come from the json tag so envelope detail matches the wire shape.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// entity_text: the constrained character set for names and descriptions.
	_ = v.RegisterValidation("entity_text", func(fl validator.FieldLevel) bool {
		return entityTextPattern.MatchString(fl.Field().String())
	})

	// password_strength: lowercase, uppercase, digit, and special character.
	_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
		var lower, upper, digit, special bool
		for _, c := range fl.Field().String() {
			switch {
			case c >= 'a' && c <= 'z':
				lower = true
			case c >= 'A' && c <= 'Z':
				upper = true
			case c >= '0' && c <= '9':
				digit = true
			case strings.ContainsRune(passwordSpecials, c):
				special = true
			}
		}
		return lower && upper && digit && special
	})

	return v
}

// NewSourceRequest represents the JSON body for creating or replacing a
// source endpoint.
type NewSourceRequest struct {
	Name        string `json:"name"        validate:"required,max=32,entity_text"`
	Description string `json:"description,omitempty" validate:"omitempty,max=128,entity_text"`
	Address     string `json:"address"     validate:"required,ipv4"`
	Port        int    `json:"port"        validate:"required,gte=1,lte=65535"`
	Username    string `json:"username"    validate:"required,email"`
	Password    string `json:"password"    validate:"required,min=8,password_strength"`
	Protocol    string `json:"protocol"    validate:"required,oneof=rtsp"`
}

// Validate checks the request against its field constraints.
// Returns a *domain.ValidationError listing every failed field.
func (r *NewSourceRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return &domain.ValidationError{Fields: []domain.FieldError{
			{Location: "body", Message: err.Error()},
		}}
	}

	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{
			Location: "body." + fe.Field(),
			Message:  constraintMessage(fe),
		})
	}
	return &domain.ValidationError{Fields: fields}
}

// ToDomain converts the request to a Source entity. Identifier and timestamps
// are assigned by the service layer.
func (r *NewSourceRequest) ToDomain() *domain.Source {
	return &domain.Source{
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Port:        r.Port,
		Username:    r.Username,
		Password:    r.Password,
		Protocol:    domain.Protocol(r.Protocol),
	}
}

// constraintMessage renders a validator constraint failure as a short human
// message for the envelope detail.
func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "ipv4":
		return "must be a valid IPv4 address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "entity_text":
		return "must contain only letters, digits, spaces, and hyphens"
	case "password_strength":
		return "must contain lowercase, uppercase, digit, and special characters"
	default:
		return "failed constraint " + fe.Tag()
	}
}
