package errs

import "strings"

// FieldError describes a single field-level validation problem,
// e.g. { "field": "email", "error": "must be a valid email address" }.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType names an instruction the client should act on.
type ActionType string

const (
	// ActionTypeRedirect tells the client to navigate elsewhere;
	// Action.Value holds the target URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional "what the client should do next" hint.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the application error type carried up to the HTTP boundary.
//
// Code is a stable machine-readable identifier (e.g. "CONFLICT",
// "USER_ALREADY_EXISTS"). Override tells the error handler whether the
// message is safe to show verbatim to end users.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`
	Action   *Action      `json:"action,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, so callers can write
// errors.Is(err, &errs.HTTPError{}) to test for any application error.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with only the message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores turns HTTP status text into a stable code,
// e.g. "Bad Request" -> "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
