// Package validation binds and validates request payloads.
//
// Request types carry validator struct tags (e.g. `validate:"required,email"`)
// and implement Validatable; failures are extracted into field-level errors
// the client can act on.
package validation

import (
	"strings"

	"github.com/deploylab/user-api/internal/errs"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to
// validate themselves, typically by running validator.Struct on their tags.
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue that cannot be
// expressed through validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors satisfying
// the error interface.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// BindAndValidate populates payload from the request (body, path, and query
// params) and validates it. Returns a 400 *errs.HTTPError carrying
// field-level errors when validation fails.
//
// payload must be a pointer type so echo's Bind can mutate it.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		// Echo bind errors read "code=400, message=..."; surface just
		// the message part.
		message := err.Error()
		if idx := strings.Index(message, "message="); idx >= 0 {
			message = strings.SplitN(message[idx+len("message="):], ",", 2)[0]
		}
		return errs.NewBadRequestError(message, false, nil, nil, nil)
	}

	if msg, fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(msg, true, nil, fieldErrors, nil)
	}

	return nil
}

func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}
