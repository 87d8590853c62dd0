// Package response builds the uniform JSON envelope every endpoint returns.
//
// Shape:
//
//	{ "success": bool, "message": "...", "data": ..., "error": "...",
//	  "errors": [...], "code": "...", "timestamp": "RFC-3339" }
//
// Success responses carry data (and optionally a message); error responses
// carry the message in both "message" and "error" plus an optional list of
// field-level validation problems. The package knows nothing about the
// domain; handlers and the global error handler are its only callers.
package response

import (
	"time"

	"github.com/deploylab/user-api/internal/errs"
)

// Envelope is the wire format for every API response.
type Envelope struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message,omitempty"`
	Data      interface{}       `json:"data,omitempty"`
	Error     string            `json:"error,omitempty"`
	Errors    []errs.FieldError `json:"errors,omitempty"`
	Code      string            `json:"code,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// Success wraps a payload in a success envelope.
func Success(data interface{}) Envelope {
	return Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// SuccessMessage wraps a payload in a success envelope with a human-readable
// message. data may be nil (e.g. after a delete).
func SuccessMessage(message string, data interface{}) Envelope {
	return Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// Error builds an error envelope. The message is duplicated into both the
// message and error fields so clients can read either.
func Error(code, message string, fieldErrors []errs.FieldError) Envelope {
	return Envelope{
		Success:   false,
		Message:   message,
		Error:     message,
		Errors:    fieldErrors,
		Code:      code,
		Timestamp: time.Now().UTC(),
	}
}
