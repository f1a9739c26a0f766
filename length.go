package librarian

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type lengthRule struct {
	validation.LengthRule
	min, max int
}

// Length returns a validation rule that checks if a string's rune length is within the specified range.
// A max of 0 means no upper bound. Unlike ozzo's rule, a present empty string
// is checked against min; only unset values are skipped.
func Length(lo, hi int) Rule {
	return &lengthRule{
		validation.RuneLength(lo, hi),
		lo,
		hi,
	}
}

func (r *lengthRule) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	if validation.IsEmpty(value) && r.min > 0 {
		if r.max == 0 {
			return validation.ErrLengthTooShort.SetParams(map[string]any{"min": r.min})
		}
		return validation.ErrLengthOutOfRange.SetParams(map[string]any{"min": r.min, "max": r.max})
	}
	return r.LengthRule.Validate(value)
}

func (r *lengthRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.MinLength = uint64(r.min)
	if r.max > 0 {
		maxLen := uint64(r.max)
		ref.Value.MaxLength = &maxLen
	}
	return nil
}
