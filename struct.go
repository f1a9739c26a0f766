package librarian

import (
	"context"
	"fmt"
	"reflect"
	"strings"
)

// Field creates a FieldRules binding a struct field pointer to its validation rules.
func Field[T any](fieldPtr *T, rules ...Rule) *FieldRules {
	return &FieldRules{
		fieldPtr: fieldPtr,
		rules:    rules,
	}
}

// rulesOf returns the field rules declared by structPtr, or false when it
// implements neither Ruler nor ContextRuler.
func rulesOf(ctx context.Context, structPtr any) ([]*FieldRules, bool) {
	switch r := structPtr.(type) {
	case Ruler:
		return r.Rules(), true
	case ContextRuler:
		return r.Rules(ctx), true
	}
	return nil, false
}

// ExpandFields flattens embedded Ruler/ContextRuler field rules into the parent's rule set.
// Non-embedded fields are returned as-is. Embedded Ruler fields have their Rules() inlined
// recursively, so error keys and schema properties are flat (not nested under the embedded name).
func ExpandFields(ctx context.Context, structPtr any, fields []*FieldRules) []*FieldRules {
	structVal := reflect.Indirect(reflect.ValueOf(structPtr))
	if !structVal.IsValid() || structVal.Kind() != reflect.Struct {
		return fields
	}

	result := make([]*FieldRules, 0, len(fields))
	for _, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() == reflect.Ptr {
			if sf := FindStructField(structVal, fv); sf != nil && sf.Anonymous {
				embeddedPtr := fv.Interface()
				if inner, ok := rulesOf(ctx, embeddedPtr); ok {
					result = append(result, ExpandFields(ctx, embeddedPtr, inner)...)
					continue
				}
			}
		}
		result = append(result, fr)
	}
	return result
}

// FindStructField looks for the field of structValue (or of a struct embedded
// in it) whose address equals fieldValue.
func FindStructField(structValue, fieldValue reflect.Value) *reflect.StructField {
	ptr := fieldValue.Pointer()
	for i := structValue.NumField() - 1; i >= 0; i-- {
		sf := structValue.Type().Field(i)
		if ptr == structValue.Field(i).UnsafeAddr() {
			// An embedded struct shares its address with its first field.
			if sf.Type == fieldValue.Elem().Type() {
				return &sf
			}
		}
		if sf.Anonymous {
			fi := structValue.Field(i)
			if sf.Type.Kind() == reflect.Ptr {
				fi = fi.Elem()
			}
			if fi.Kind() == reflect.Struct {
				if f := FindStructField(fi, fieldValue); f != nil {
					return f
				}
			}
		}
	}
	return nil
}

// mapFieldsToTags resolves each FieldRules' fieldPtr to its JSON name
// using struct field address comparison.
func mapFieldsToTags(fields []*FieldRules, structVal reflect.Value) error {
	for i, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() != reflect.Ptr {
			return fmt.Errorf("rule target for field index %d must be a pointer, got %s", i, fv.Kind())
		}
		sf := FindStructField(structVal, fv)
		if sf == nil {
			return fmt.Errorf("rule target for field index %d not found in struct %s", i, structVal.Type())
		}
		if sf.Anonymous {
			fields[i].tag = ""
			continue
		}
		fields[i].tag = fieldKey(*sf)
	}
	return nil
}

// tagOf returns the JSON name of the field fieldPtr points to, or "" when it
// is not a field of structVal.
func tagOf(structVal reflect.Value, fieldPtr any) string {
	fv := reflect.ValueOf(fieldPtr)
	if fv.Kind() != reflect.Ptr {
		return ""
	}
	sf := FindStructField(structVal, fv)
	if sf == nil {
		return ""
	}
	return fieldKey(*sf)
}

// fieldKey returns the json tag name if present, otherwise the Go field name.
func fieldKey(sf reflect.StructField) string {
	tag := strings.Split(sf.Tag.Get("json"), ",")[0]
	if tag != "" && tag != "-" {
		return tag
	}
	return sf.Name
}

// walkFields calls fn for every exported, JSON-visible field of rv, descending
// into embedded structs the way encoding/json flattens them.
func walkFields(rv reflect.Value, fn func(sf reflect.StructField, fv reflect.Value)) {
	for i := range rv.NumField() {
		sf := rv.Type().Field(i)
		fv := rv.Field(i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			walkFields(fv, fn)
			continue
		}
		if !sf.IsExported() || strings.Split(sf.Tag.Get("json"), ",")[0] == "-" {
			continue
		}
		fn(sf, fv)
	}
}
