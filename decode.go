package librarian

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"time"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	errMissing     = validation.ErrRequired.SetMessage("is required")
	errInvalidUTF8 = validation.NewError(CodeTypeMismatch, "must be valid UTF-8 text")
)

// DecodeMap decodes a raw field map (decoded JSON, YAML or form values) into
// the schema struct dst, then validates it. See [DecodeMapCtx].
func DecodeMap(raw map[string]any, dst any) error {
	return DecodeMapCtx(context.Background(), raw, dst)
}

// DecodeMapCtx decodes raw into dst field by field and validates the result.
//
// Every JSON-visible field of dst is looked up by its JSON name:
//   - absent, or null, and bound to [Required] or [Present]: missing field
//   - absent with a [Default] rule: set to the default
//   - absent otherwise: left untouched, so an [Optional] stays unset
//   - present but not convertible to the field type, or holding a string
//     that is not valid UTF-8: type mismatch
//
// Nested schema structs sent as objects, and arrays of them, are decoded the
// same way, with their violations reported under dotted names such as
// "author.name" or "new_books.0.title". Keys that match no field are
// ignored. After decoding, Normalizer hooks run, then the field rules of every
// field that decoded cleanly. All failures are returned together as
// [Violations]; any other error means dst or its rules are malformed.
func DecodeMapCtx(ctx context.Context, raw map[string]any, dst any) error {
	errs, err := decodeFields(ctx, raw, dst)
	if err != nil {
		return err
	}
	normalizeRecursive(ctx, dst)
	fields, ok := rulesOf(ctx, dst)
	if !ok {
		if len(errs) > 0 {
			return newViolations(errs)
		}
		return nil
	}
	return validateStruct(ctx, dst, fields, errs)
}

func decodeFields(ctx context.Context, raw map[string]any, dst any) (validation.Errors, error) {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("decode target must be a non-nil pointer to a struct, got %T", dst)
	}
	structVal := rv.Elem()

	byTag := map[string]*FieldRules{}
	if fields, ok := rulesOf(ctx, dst); ok {
		flat := ExpandFields(ctx, dst, fields)
		if err := mapFieldsToTags(flat, structVal); err != nil {
			return nil, err
		}
		for _, fr := range flat {
			if fr.tag != "" {
				byTag[fr.tag] = fr
			}
		}
	}

	errs := validation.Errors{}
	var internal error
	walkFields(structVal, func(sf reflect.StructField, fv reflect.Value) {
		if internal != nil {
			return
		}
		tag := fieldKey(sf)
		fr := byTag[tag]
		value, present := raw[tag]

		if !present || value == nil {
			if fr != nil && fr.required() {
				errs[tag] = errMissing
				return
			}
			if !present {
				if fr == nil {
					return
				}
				if d, ok := fr.defaultValue(); ok {
					internal = setJSON(d, fv)
				}
				return
			}
		}

		if m, ok := value.(map[string]any); ok {
			if target, ok := nestedSchema(ctx, fv); ok {
				if err := DecodeMapCtx(ctx, m, target); err != nil {
					if _, ok := err.(Violations); !ok {
						internal = err
						return
					}
					errs[tag] = err
				}
				return
			}
		}

		if items, ok := value.([]any); ok && isSchemaSlice(ctx, fv.Type()) {
			elemErrs, err := decodeSchemaSlice(ctx, items, fv)
			if err != nil {
				internal = err
				return
			}
			if len(elemErrs) > 0 {
				errs[tag] = elemErrs
			}
			return
		}

		if !validUTF8(value) {
			errs[tag] = errInvalidUTF8
			return
		}
		if err := setJSON(value, fv); err != nil {
			errs[tag] = typeMismatch(err, fv.Type())
		}
	})
	if internal != nil {
		return nil, internal
	}
	return errs, nil
}

// nestedSchema returns a pointer to the struct held by fv when that struct is
// itself a schema, allocating it for pointer fields.
func nestedSchema(ctx context.Context, fv reflect.Value) (any, bool) {
	target := fv
	if target.Kind() == reflect.Ptr {
		if target.Type().Elem().Kind() != reflect.Struct {
			return nil, false
		}
		if target.IsNil() {
			target.Set(reflect.New(target.Type().Elem()))
		}
		target = target.Elem()
	}
	if target.Kind() != reflect.Struct {
		return nil, false
	}
	ptr := target.Addr().Interface()
	if _, ok := rulesOf(ctx, ptr); !ok {
		return nil, false
	}
	return ptr, true
}

// isSchemaSlice reports whether t is a slice of schema structs or of
// pointers to them.
func isSchemaSlice(ctx context.Context, t reflect.Type) bool {
	if t.Kind() != reflect.Slice {
		return false
	}
	et := t.Elem()
	if et.Kind() == reflect.Ptr {
		et = et.Elem()
	}
	if et.Kind() != reflect.Struct {
		return false
	}
	_, ok := rulesOf(ctx, reflect.New(et).Interface())
	return ok
}

// decodeSchemaSlice decodes every element of items through [DecodeMapCtx]
// and stores the result in fv. Failures are keyed by element index.
func decodeSchemaSlice(ctx context.Context, items []any, fv reflect.Value) (validation.Errors, error) {
	out := reflect.MakeSlice(fv.Type(), len(items), len(items))
	errs := validation.Errors{}
	for i, item := range items {
		key := strconv.Itoa(i)
		elem := out.Index(i)
		m, ok := item.(map[string]any)
		if !ok {
			errs[key] = typeMismatch(nil, elem.Type())
			continue
		}
		if elem.Kind() == reflect.Ptr {
			elem.Set(reflect.New(elem.Type().Elem()))
			elem = elem.Elem()
		}
		if err := DecodeMapCtx(ctx, m, elem.Addr().Interface()); err != nil {
			if _, ok := err.(Violations); !ok {
				return nil, err
			}
			errs[key] = err
		}
	}
	fv.Set(out)
	return errs, nil
}

// validUTF8 reports whether every string in value, map keys included, is
// valid UTF-8. Encoding to JSON would silently replace the bad bytes.
func validUTF8(value any) bool {
	switch x := value.(type) {
	case string:
		return utf8.ValidString(x)
	case []any:
		for _, e := range x {
			if !validUTF8(e) {
				return false
			}
		}
	case map[string]any:
		for k, e := range x {
			if !utf8.ValidString(k) || !validUTF8(e) {
				return false
			}
		}
	}
	return true
}

// setJSON converts value into fv through its JSON form, so every type with a
// JSON decoding (Optional, Date, enums, time.Time) accepts the same input here.
func setJSON(value any, fv reflect.Value) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, fv.Addr().Interface())
}

func typeMismatch(err error, t reflect.Type) error {
	var ve validation.Error
	if errors.As(err, &ve) {
		return ve
	}
	return validation.NewError(CodeTypeMismatch, "must be {{.type}}").
		SetParams(map[string]any{"type": typeName(t)})
}

var timeType = reflect.TypeOf(time.Time{})

func typeName(t reflect.Type) string {
	zero := reflect.New(t).Elem().Interface()
	if o, ok := zero.(interface{ elemType() reflect.Type }); ok {
		return typeName(o.elemType())
	}
	if n, ok := zero.(interface{ TypeName() string }); ok {
		return "a " + n.TypeName()
	}
	if t == timeType {
		return "an RFC 3339 timestamp"
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Ptr:
		return typeName(t.Elem())
	}
	return "an object"
}
