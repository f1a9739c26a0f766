package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/Gobd/librarian"
	"github.com/Gobd/librarian/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromError_Nil(t *testing.T) {
	assert.Nil(t, errs.FromError(nil))
}

func TestFromError_Violations(t *testing.T) {
	vs := librarian.Violations{
		{Field: "available_copies", Category: librarian.CrossFieldViolation, Reason: "exceeds total_copies"},
		{Field: "title", Category: librarian.MissingField, Reason: "is required"},
	}

	he := errs.FromError(fmt.Errorf("create book: %w", vs))
	require.NotNil(t, he)
	assert.Equal(t, http.StatusUnprocessableEntity, he.Status)
	assert.Equal(t, "UNPROCESSABLE_ENTITY", he.Code)
	assert.Equal(t, "Validation failed", he.Message)
	assert.Equal(t, []errs.FieldError{
		{Field: "available_copies", Error: "exceeds total_copies", Category: "cross_field_violation"},
		{Field: "title", Error: "is required", Category: "missing_field"},
	}, he.Errors)
}

type book struct {
	Title string `json:"title"`
}

func (b *book) Rules() []*librarian.FieldRules {
	return []*librarian.FieldRules{
		librarian.Field(&b.Title, librarian.Required),
	}
}

func TestFromError_DecodeResults(t *testing.T) {
	for _, tc := range []struct {
		name   string
		body   string
		status int
	}{
		{"missing field", `{}`, http.StatusUnprocessableEntity},
		{"empty body", ``, http.StatusBadRequest},
		{"truncated", `{"title":`, http.StatusBadRequest},
		{"not an object", `["Dune"]`, http.StatusBadRequest},
		{"syntax", `{"title" "Dune"}`, http.StatusBadRequest},
		{"second object", `{"title":"Dune"} {"title":""}`, http.StatusBadRequest},
		{"trailing garbage", `{"title":"Dune"} garbage`, http.StatusBadRequest},
		{"trailing whitespace", "{}\n\t ", http.StatusUnprocessableEntity},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var b book
			err := librarian.UnmarshalAndValidate([]byte(tc.body), &b)
			require.Error(t, err)
			assert.Equal(t, tc.status, errs.FromError(err).Status)
		})
	}
}

func TestFromError_PassesHTTPErrorThrough(t *testing.T) {
	code := "BOOK_UNAVAILABLE"
	he := errs.NewBadRequestError("no copies left", true, &code, nil)
	got := errs.FromError(fmt.Errorf("borrow: %w", he))
	assert.Same(t, he, got)
	assert.Equal(t, "BOOK_UNAVAILABLE", got.Code)
	assert.True(t, got.Override)
}

func TestFromError_Internal(t *testing.T) {
	he := errs.FromError(errors.New("decode target must be a non-nil pointer to a struct, got int"))
	assert.Equal(t, http.StatusInternalServerError, he.Status)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", he.Code)
	assert.Equal(t, "Internal Server Error", he.Message)
	assert.Empty(t, he.Errors)
}

func TestFromError_EOF(t *testing.T) {
	he := errs.FromError(io.EOF)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	assert.Equal(t, "BAD_REQUEST", he.Code)
}

func TestHTTPError_Is(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", errs.NewInternalServerError())
	assert.True(t, errors.Is(err, &errs.HTTPError{}))
	assert.False(t, errors.Is(io.EOF, &errs.HTTPError{}))
}

func TestHTTPError_WithMessage(t *testing.T) {
	orig := errs.NewValidationError(librarian.Violations{{Field: "email", Reason: "must be a valid email address"}})
	copied := orig.WithMessage("Check the highlighted fields")

	assert.Equal(t, "Validation failed", orig.Message)
	assert.Equal(t, "Check the highlighted fields", copied.Error())
	assert.Equal(t, orig.Errors, copied.Errors)
	assert.Equal(t, orig.Status, copied.Status)
}

func TestHTTPError_JSON(t *testing.T) {
	he := errs.NewValidationError(librarian.Violations{{
		Field:    "due_date",
		Category: librarian.RangeViolation,
		Reason:   "must be between 1000-01-01 and 2100-12-31",
	}})
	b, err := json.Marshal(he)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"code": "UNPROCESSABLE_ENTITY",
		"message": "Validation failed",
		"status": 422,
		"override": false,
		"errors": [{
			"field": "due_date",
			"error": "must be between 1000-01-01 and 2100-12-31",
			"category": "range_violation"
		}]
	}`, string(b))
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", errs.MakeUpperCaseWithUnderscores("Not Found"))
	assert.Equal(t, "OK", errs.MakeUpperCaseWithUnderscores("ok"))
}
