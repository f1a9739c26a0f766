package librarian

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// dependentRule is implemented by cross-field rules. They run after every
// single-field rule and only when the fields they read passed.
type dependentRule interface {
	Rule
	dependsOn() []any
}

type atMostRule struct {
	other     any
	otherName string
}

// AtMost returns a cross-field rule that fails when the value is greater than
// the field other points to. The violation is reported on the validated field
// with the reason "exceeds <otherName>". Unset values on either side skip the
// check.
func AtMost(other any, otherName string) Rule {
	return &atMostRule{other: other, otherName: otherName}
}

func (r *atMostRule) dependsOn() []any {
	return []any{r.other}
}

func (r *atMostRule) Validate(value any) error {
	v, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	o, isNil := validation.Indirect(r.other)
	if isNil {
		return nil
	}
	c, err := compareNumbers(v, o)
	if err != nil {
		return err
	}
	if c > 0 {
		return validation.NewError(CodeCrossField, "exceeds {{.other}}").
			SetParams(map[string]any{"other": r.otherName})
	}
	return nil
}

func (r *atMostRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if ref.Value.Description != "" && !strings.HasSuffix(ref.Value.Description, " ") {
		ref.Value.Description += " "
	}
	ref.Value.Description += "must not exceed " + r.otherName
	return nil
}

// compareNumbers returns -1, 0 or 1. Integers are compared exactly, anything
// else numeric as float64.
func compareNumbers(a, b any) (int, error) {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if isInt(ra.Kind()) && isInt(rb.Kind()) {
		x, y := ra.Int(), rb.Int()
		switch {
		case x < y:
			return -1, nil
		case x > y:
			return 1, nil
		}
		return 0, nil
	}
	if !ra.CanConvert(floatType) || !rb.CanConvert(floatType) {
		return 0, fmt.Errorf("cannot compare %T with %T", a, b)
	}
	x, y := ra.Convert(floatType).Float(), rb.Convert(floatType).Float()
	switch {
	case x < y:
		return -1, nil
	case x > y:
		return 1, nil
	}
	return 0, nil
}

func isInt(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
