// Package validate wraps go-playground/validator for usecase request structs.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgerrors "twitter-api/pkg/errors"
)

// Validator validates request structs and reports failures as *pkgerrors.ValidationError.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator.
func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Struct validates s. A nil return means s is valid.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	return format(err)
}

// format converts validator.ValidationErrors into a human-readable error message.
func format(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return pkgerrors.NewValidationError("", err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
		case "datetime":
			messages = append(messages, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", e.Field()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}

	field := ""
	if len(validationErrors) == 1 {
		field = validationErrors[0].Field()
	}
	return pkgerrors.NewValidationError(field, strings.Join(messages, ", "))
}
