package errs

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Gobd/librarian"
)

// NewValidationError creates a 422 Unprocessable Entity HTTPError listing
// every violation.
func NewValidationError(vs librarian.Violations) *HTTPError {
	fields := make([]FieldError, len(vs))
	for i, v := range vs {
		fields[i] = FieldError{
			Field:    v.Field,
			Error:    v.Reason,
			Category: string(v.Category),
		}
	}
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusUnprocessableEntity)),
		Message: "Validation failed",
		Status:  http.StatusUnprocessableEntity,
		Errors:  fields,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError. A nil code
// defaults to "BAD_REQUEST".
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}
	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewInternalServerError creates a 500 HTTPError carrying only the generic
// status text.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// FromError maps an error returned by the validation layer to its payload:
//   - violations become a 422 listing every field
//   - a body that is empty, not a JSON object or followed by more data
//     becomes a 400
//   - an *HTTPError is returned as is
//   - anything else is a 500
//
// A nil error maps to nil.
func FromError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	if vs, ok := librarian.AsViolations(err); ok {
		return NewValidationError(vs)
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return NewBadRequestError("Request body is empty or truncated", false, nil, nil)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, librarian.ErrTrailingData) {
		return NewBadRequestError("Malformed request body: "+err.Error(), false, nil, nil)
	}
	return NewInternalServerError()
}
