package handler

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/99minutos/auth-gateway/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Field names in errors are the JSON names of the request fields.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. It reports the first
// failing field as a *domain.ValidationError.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		return &domain.ValidationError{Field: fe.Field(), Message: fieldError(fe)}
	}
	return err
}

// fieldMessages holds the client facing message for each validated field.
var fieldMessages = map[string]map[string]string{
	"email": {
		"required": "Invalid email format",
		"email":    "Invalid email format",
		"max":      "Email too long",
	},
	"password": {
		"min": "Password must be 6-128 characters",
		"max": "Password must be 6-128 characters",
	},
	"username": {
		"min": "Username must be 3-50 characters",
		"max": "Username must be 3-50 characters",
	},
	"phone_country_code": {"max": "Country code too long"},
	"phone_number":       {"max": "Phone number too long"},
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()][fe.Tag()]; ok {
		return msg
	}
	return "Validation failed"
}
