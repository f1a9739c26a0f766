package librarian

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// In returns a validation rule that checks if a value is one of the allowed values.
func In(values ...any) Rule {
	return &inRule{
		validation.In(values...).ErrorObject(inError(values...)),
		values,
	}
}

// inRule is a validation rule that validates if a value can be found in the given list of values.
type inRule struct {
	validation.InRule
	values []any
}

func (r *inRule) Validate(value any) error {
	err := r.InRule.Validate(value)
	if e, ok := err.(validation.Error); ok {
		got, _ := validation.Indirect(value)
		return e.SetMessage(fmt.Sprintf("%s, got '%v'", e.Message(), got))
	}
	return err
}

func (r *inRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	enum := make([]any, len(r.values))
	for i := range r.values {
		enum[i] = plainValue(r.values[i])
	}
	ref.Value.Enum = enum
	return nil
}

// plainValue converts named strings and numbers to string and float64, the
// types schema documents are checked with.
func plainValue(a any) any {
	rv := reflect.ValueOf(a)
	switch {
	case !rv.IsValid():
		return a
	case rv.Kind() == reflect.String:
		return rv.String()
	case rv.Kind() == reflect.Bool:
		return rv.Bool()
	case rv.CanConvert(floatType):
		return rv.Convert(floatType).Float()
	}
	return a
}

func inError[T any](values ...T) validation.Error {
	want := make([]string, len(values))
	for i := range values {
		want[i] = fmt.Sprintf("'%v'", values[i])
	}
	return validation.ErrInInvalid.SetMessage(fmt.Sprintf("must be one of %s", strings.Join(want, ", ")))
}

// OneOf converts a raw string into one of the allowed enumeration values.
// It is meant for UnmarshalText implementations of closed string types, so
// that anything else is rejected at the decoding boundary with the same
// error [In] reports.
func OneOf[T ~string](raw string, allowed ...T) (T, error) {
	for _, a := range allowed {
		if string(a) == raw {
			return a, nil
		}
	}
	e := inError(allowed...)
	var zero T
	return zero, e.SetMessage(fmt.Sprintf("%s, got '%s'", e.Message(), raw))
}
