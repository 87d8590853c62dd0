package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/deploylab/user-api/internal/errs"
	"github.com/go-playground/validator/v10"
)

// extractValidationError converts validator (or custom) errors into
// user-friendly field errors.
func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		if customValidationErrors, ok := err.(CustomValidationErrors); ok {
			for _, cerr := range customValidationErrors {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: cerr.Field,
					Error: cerr.Message,
				})
			}
			return "Validation failed", fieldErrors
		}

		return "Validation failed", []errs.FieldError{{Field: "", Error: err.Error()}}
	}

	for _, verr := range validationErrors {
		field := strings.ToLower(verr.Field())
		var msg string

		switch verr.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if verr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", verr.Param())
			}

		case "max":
			if verr.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", verr.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", verr.Param())

		case "email":
			msg = "must be a valid email address"

		default:
			if verr.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, verr.Tag(), verr.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, verr.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return "Validation failed", fieldErrors
}
