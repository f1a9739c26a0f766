package librarian

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate is the single entry point for validating an already typed value.
// If value implements Ruler, validates struct fields via Rules().
// If value implements ValueRuler, applies its rules to the value directly.
// Collection elements implementing Ruler are auto-validated.
//
// Struct failures are returned as [Violations].
func Validate(value any) error {
	return validateCore(context.Background(), value)
}

// ValidateCtx is like Validate but passes a context to ContextRuler.Rules().
func ValidateCtx(ctx context.Context, value any) error {
	return validateCore(ctx, value)
}

// ValidateStruct validates a struct with explicit field rules.
// Prefer Validate for types implementing Ruler.
func ValidateStruct(structPtr any, fields []*FieldRules) error {
	return validateStruct(context.Background(), structPtr, fields, validation.Errors{})
}

// UnmarshalAndValidate decodes a JSON object from b into dst through
// [DecodeMap], so missing fields, type mismatches, defaults and optional
// fields are handled the same way as for raw maps.
func UnmarshalAndValidate(b []byte, dst any) error {
	return UnmarshalAndValidateCtx(context.Background(), b, dst)
}

// UnmarshalAndValidateCtx is like UnmarshalAndValidate but passes a context to
// ContextNormalizer.Normalize and ContextRuler.Rules.
func UnmarshalAndValidateCtx(ctx context.Context, b []byte, dst any) error {
	return DecodeAndValidateContext(ctx, bytes.NewReader(b), dst)
}

// DecodeAndValidate reads a JSON object from r and decodes it into dst
// through [DecodeMap]. Use this instead of [UnmarshalAndValidate] when reading
// directly from an [io.Reader] such as an HTTP request body.
func DecodeAndValidate(r io.Reader, dst any) error {
	return DecodeAndValidateContext(context.Background(), r, dst)
}

// DecodeAndValidateContext is like DecodeAndValidate but passes a context to
// ContextNormalizer.Normalize and ContextRuler.Rules.
func DecodeAndValidateContext(ctx context.Context, r io.Reader, dst any) error {
	raw, err := ReadObject(r)
	if err != nil {
		return err
	}
	return DecodeMapCtx(ctx, raw, dst)
}

// ErrTrailingData is returned when a JSON body holds anything but whitespace
// after its object.
var ErrTrailingData = errors.New("unexpected data after top-level JSON object")

// ReadObject reads a single JSON object from r, keeping numbers as
// [json.Number]. A literal null yields a nil map. Anything after the object
// other than whitespace is rejected with the decoder's syntax error or
// [ErrTrailingData].
func ReadObject(r io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return raw, nil
}

func validateCore(ctx context.Context, value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil
	}

	// Ruler/ContextRuler: validate struct fields.
	if fields, ok := rulesOf(ctx, value); ok {
		return validateStruct(ctx, value, fields, validation.Errors{})
	}
	// Non-pointer struct value: check if *T implements Ruler/ContextRuler.
	// This happens when ozzo passes a struct field value to the bridge rule.
	if rv.Kind() == reflect.Struct {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		pi := ptr.Interface()
		if fields, ok := rulesOf(ctx, pi); ok {
			return validateStruct(ctx, pi, fields, validation.Errors{})
		}
	}

	// ValueRuler: non-struct types with their own validation rules.
	if vr, ok := value.(ValueRuler); ok {
		return validateValueRules(value, vr.ValueRules())
	}

	// Auto-validate collection elements that implement Ruler.
	if (rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil() {
		return nil
	}

	rv = reflect.Indirect(rv)

	switch rv.Kind() {
	case reflect.Map:
		if shouldAutoValidate(rv.Type().Elem()) {
			return validateMap(ctx, rv)
		}
	case reflect.Slice, reflect.Array:
		if shouldAutoValidate(rv.Type().Elem()) {
			return validateSlice(ctx, rv)
		}
	case reflect.Ptr, reflect.Interface:
		return validateCore(ctx, rv.Elem().Interface())
	}

	return nil
}

// validateStruct runs the single-field rules of every field not already in
// errs, then the cross-field rules of fields that passed and whose
// dependencies passed. errs carries decoding failures in and all failures out.
func validateStruct(ctx context.Context, structPtr any, fields []*FieldRules, errs validation.Errors) error {
	flat := ExpandFields(ctx, structPtr, fields)
	structVal := reflect.Indirect(reflect.ValueOf(structPtr))
	if structVal.Kind() != reflect.Struct {
		return fmt.Errorf("validation target must be a pointer to a struct, got %T", structPtr)
	}
	if err := mapFieldsToTags(flat, structVal); err != nil {
		return err
	}

	var single, cross []*FieldRules
	for _, fr := range flat {
		if _, failed := errs[fr.tag]; failed {
			continue
		}
		s, c := splitRules(fr.rules)
		single = append(single, &FieldRules{fieldPtr: fr.fieldPtr, tag: fr.tag, rules: s})
		if len(c) > 0 {
			cross = append(cross, &FieldRules{fieldPtr: fr.fieldPtr, tag: fr.tag, rules: c})
		}
	}

	if err := mergeErrors(errs, validation.ValidateStruct(structPtr, convertFieldRules(ctx, single)...)); err != nil {
		return err
	}

	var ready []*FieldRules
	for _, fr := range cross {
		if dependenciesPassed(structVal, fr, errs) {
			ready = append(ready, fr)
		}
	}
	if err := mergeErrors(errs, validation.ValidateStruct(structPtr, convertRulesOnly(ready)...)); err != nil {
		return err
	}

	if len(errs) == 0 {
		return nil
	}
	return newViolations(errs)
}

func splitRules(rules []Rule) (single, cross []Rule) {
	for _, r := range rules {
		if _, ok := r.(dependentRule); ok {
			cross = append(cross, r)
			continue
		}
		single = append(single, r)
	}
	return single, cross
}

func dependenciesPassed(structVal reflect.Value, fr *FieldRules, errs validation.Errors) bool {
	if _, failed := errs[fr.tag]; failed {
		return false
	}
	for _, r := range fr.rules {
		for _, dep := range r.(dependentRule).dependsOn() {
			if tag := tagOf(structVal, dep); tag != "" {
				if _, failed := errs[tag]; failed {
					return false
				}
			}
		}
	}
	return true
}

// mergeErrors copies the field errors of err into errs. Anything other than a
// field error map is an internal error and is returned as-is.
func mergeErrors(errs validation.Errors, err error) error {
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if !errors.As(err, &ve) {
		return err
	}
	for k, e := range ve {
		errs[k] = e
	}
	return nil
}

// validateValueRules applies a set of rules to a single value.
// Used for ValueRuler types (non-struct types with their own rules).
func validateValueRules(value any, rules []Rule) error {
	for _, rule := range rules {
		if err := rule.Validate(value); err != nil {
			return err
		}
	}
	return nil
}

// shouldAutoValidate checks if elements of the given type can be auto-validated.
// Recurses into nested collections (e.g. map[string][]Ruler).
func shouldAutoValidate(elemType reflect.Type) bool {
	if elemType.Kind() == reflect.Struct {
		if _, ok := reflect.New(elemType).Interface().(Ruler); ok {
			return true
		}
		if _, ok := reflect.New(elemType).Interface().(ContextRuler); ok {
			return true
		}
	}
	if elemType.Kind() == reflect.Slice || elemType.Kind() == reflect.Array {
		return shouldAutoValidate(elemType.Elem())
	}
	if elemType.Kind() == reflect.Map {
		return shouldAutoValidate(elemType.Elem())
	}
	return false
}

// validateElement validates a single collection element.
// Ruler structs are validated via validateCore. Nested collections are recursed.
func validateElement(ctx context.Context, v reflect.Value) error {
	if (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) && v.IsNil() {
		return nil
	}

	// Get a pointer for pointer-receiver interfaces.
	var ptr reflect.Value
	if v.CanAddr() {
		ptr = v.Addr()
	} else if v.Type().Kind() == reflect.Struct {
		ptr = reflect.New(v.Type())
		ptr.Elem().Set(v)
	}

	if ptr.IsValid() {
		pi := ptr.Interface()
		if _, ok := rulesOf(ctx, pi); ok {
			return validateCore(ctx, pi)
		}
	}

	// Nested collections (e.g. map[string][]Ruler): delegate to validateCore.
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return validateCore(ctx, v.Interface())
	}

	return nil
}

func validateSlice(ctx context.Context, rv reflect.Value) error {
	errs := validation.Errors{}
	for i := range rv.Len() {
		if err := validateElement(ctx, rv.Index(i)); err != nil {
			errs[strconv.Itoa(i)] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateMap(ctx context.Context, rv reflect.Value) error {
	errs := validation.Errors{}
	for _, key := range rv.MapKeys() {
		if err := validateElement(ctx, rv.MapIndex(key)); err != nil {
			errs[fmt.Sprintf("%v", key.Interface())] = err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// rulerBridge is an ozzo validation.Rule that bridges Ruler fields back into
// our validateCore. When ozzo validates a struct field, this rule fires and
// recursively validates Ruler structs, []Ruler slices, map[K]Ruler maps and
// ValueRuler values, looking through Optional and pointers.
type rulerBridge struct {
	ctx context.Context
}

func (b *rulerBridge) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	return validateCore(b.ctx, value)
}

// convertFieldRules translates our FieldRules into ozzo's FieldRules.
// A rulerBridge is appended to each field so ozzo recurses into Ruler children.
func convertFieldRules(ctx context.Context, fields []*FieldRules) []*validation.FieldRules {
	vFields := make([]*validation.FieldRules, len(fields))
	for i, fr := range fields {
		rules := make([]validation.Rule, len(fr.rules), len(fr.rules)+1)
		for j, r := range fr.rules {
			rules[j] = validation.Rule(r)
		}
		rules = append(rules, &rulerBridge{ctx: ctx})
		vFields[i] = validation.Field(fr.fieldPtr, rules...)
	}
	return vFields
}

func convertRulesOnly(fields []*FieldRules) []*validation.FieldRules {
	vFields := make([]*validation.FieldRules, len(fields))
	for i, fr := range fields {
		vFields[i] = validation.Field(fr.fieldPtr, convertRules(fr.rules...)...)
	}
	return vFields
}

func convertRules(rules ...Rule) []validation.Rule {
	vRules := make([]validation.Rule, len(rules))
	for i := range rules {
		vRules[i] = validation.Rule(rules[i])
	}
	return vRules
}
