package librarian

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category classifies a violation.
type Category string

const (
	// MissingField means a required field was absent or null.
	MissingField Category = "missing_field"
	// TypeMismatch means the raw value could not be converted to the field's type.
	TypeMismatch Category = "type_mismatch"
	// RangeViolation covers string length, numeric and date bounds.
	RangeViolation Category = "range_violation"
	// PatternMismatch covers enumerations and formats such as email.
	PatternMismatch Category = "pattern_mismatch"
	// CrossFieldViolation means a constraint spanning several fields failed.
	CrossFieldViolation Category = "cross_field_violation"
	// Invalid is reported for rule errors that carry no known code.
	Invalid Category = "invalid"
)

// Error codes produced by this package. The remaining codes come from
// ozzo-validation.
const (
	CodeTypeMismatch = "validation_type_mismatch"
	CodeNotNull      = "validation_not_null"
	CodeCrossField   = "validation_cross_field"
	CodeEmail        = "validation_is_email"
	CodeDateRange    = "validation_date_out_of_range"
)

var categoryByCode = map[string]Category{
	"validation_required":                        MissingField,
	"validation_not_nil_required":                MissingField,
	"validation_nil_or_not_empty_required":       MissingField,
	CodeTypeMismatch:                             TypeMismatch,
	CodeNotNull:                                  TypeMismatch,
	"validation_length_out_of_range":             RangeViolation,
	"validation_length_too_long":                 RangeViolation,
	"validation_length_too_short":                RangeViolation,
	"validation_length_invalid":                  RangeViolation,
	"validation_length_empty_required":           RangeViolation,
	"validation_min_greater_equal_than_required": RangeViolation,
	"validation_min_greater_than_required":       RangeViolation,
	"validation_max_less_equal_than_required":    RangeViolation,
	"validation_max_less_than_required":          RangeViolation,
	CodeDateRange:                                RangeViolation,
	"validation_in_invalid":                      PatternMismatch,
	"validation_match_invalid":                   PatternMismatch,
	"validation_date_invalid":                    PatternMismatch,
	CodeEmail:                                    PatternMismatch,
	CodeCrossField:                               CrossFieldViolation,
}

// CategoryOf returns the category of an ozzo-validation error code.
func CategoryOf(code string) Category {
	if c, ok := categoryByCode[code]; ok {
		return c
	}
	return Invalid
}

// Violation is a single field-level validation failure.
type Violation struct {
	Field    string   `json:"field"`
	Category Category `json:"category"`
	Code     string   `json:"code,omitempty"`
	Reason   string   `json:"reason"`
}

// Violations is the aggregated result of one validation pass, sorted by field.
type Violations []Violation

// Error renders the violations the same way ozzo-validation renders its
// error maps: "field: reason; field: reason."
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	var s strings.Builder
	for i, v := range vs {
		if i > 0 {
			s.WriteString("; ")
		}
		s.WriteString(v.Field)
		s.WriteString(": ")
		s.WriteString(v.Reason)
	}
	s.WriteString(".")
	return s.String()
}

// Fields returns the names of the violated fields.
func (vs Violations) Fields() []string {
	out := make([]string, len(vs))
	for i := range vs {
		out[i] = vs[i].Field
	}
	return out
}

// Get returns the violation recorded for field.
func (vs Violations) Get(field string) (Violation, bool) {
	for _, v := range vs {
		if v.Field == field {
			return v, true
		}
	}
	return Violation{}, false
}

// AsViolations extracts the violations carried by err.
func AsViolations(err error) (Violations, bool) {
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	var ve validation.Errors
	if errors.As(err, &ve) {
		return newViolations(ve), true
	}
	return nil, false
}

// newViolations flattens an ozzo error map, including nested maps and nested
// Violations, into a sorted violation list. Nested keys are joined with dots.
func newViolations(errs validation.Errors) Violations {
	var out Violations
	flattenInto(&out, "", errs)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}

func flattenInto(out *Violations, prefix string, errs validation.Errors) {
	for key, err := range errs {
		if err == nil {
			continue
		}
		field := key
		if prefix != "" {
			field = prefix + "." + key
		}
		var nested validation.Errors
		var nestedV Violations
		switch {
		case errors.As(err, &nestedV):
			for _, v := range nestedV {
				v.Field = field + "." + v.Field
				*out = append(*out, v)
			}
		case errors.As(err, &nested):
			flattenInto(out, field, nested)
		default:
			*out = append(*out, violationOf(field, err))
		}
	}
}

func violationOf(field string, err error) Violation {
	var ve validation.Error
	if errors.As(err, &ve) {
		return Violation{
			Field:    field,
			Category: CategoryOf(ve.Code()),
			Code:     ve.Code(),
			Reason:   ve.Error(),
		}
	}
	return Violation{Field: field, Category: Invalid, Reason: err.Error()}
}
