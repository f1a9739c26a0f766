// Package errs builds the client-facing error payloads of the library API
// from validation results. The response-formatting layer serializes an
// [HTTPError] as is.
package errs

import "strings"

// FieldError is one field-level failure.
//
//	{ "field": "available_copies", "error": "exceeds total_copies", "category": "cross_field_violation" }
type FieldError struct {
	// Field is the JSON name of the field, dotted for nested fields.
	Field string `json:"field"`

	// Error is the human-readable reason.
	Error string `json:"error"`

	// Category classifies the failure, e.g. "missing_field".
	Category string `json:"category,omitempty"`
}

// HTTPError is the error body sent to clients.
//   - Code: machine-friendly error code (e.g. "UNPROCESSABLE_ENTITY").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: lets the formatting layer replace the message.
//   - Errors: per-field failures.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError, whatever its code.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of e with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
