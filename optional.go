package librarian

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Optional holds a field that may be unset, explicitly null, or present.
//
// The zero value is unset. Unset fields are omitted when marshaled with the
// omitzero option and are left untouched when an update is applied; null is
// an explicit request to clear the field.
//
// Optional implements [driver.Valuer], so validation rules see the wrapped
// value when present and skip the field otherwise.
type Optional[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true, null: true}
}

// FromPtr returns Null for a nil pointer and Some(*p) otherwise, matching how
// nullable columns are read back from storage.
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return Null[T]()
	}
	return Some(*p)
}

// Get returns the wrapped value and whether it is present and not null.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set && !o.null
}

// OrElse returns the wrapped value, or d when unset or null.
func (o Optional[T]) OrElse(d T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return d
}

// Ptr returns a pointer to a copy of the wrapped value, or nil when unset or null.
func (o Optional[T]) Ptr() *T {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}

// IsSet reports whether the field was present in the input, null included.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// IsNull reports whether the field was explicitly null.
func (o Optional[T]) IsNull() bool {
	return o.set && o.null
}

// IsZero reports whether the field is unset. It makes the omitzero JSON
// option drop unset fields.
func (o Optional[T]) IsZero() bool {
	return !o.set
}

// Value implements [driver.Valuer].
func (o Optional[T]) Value() (driver.Value, error) {
	if v, ok := o.Get(); ok {
		return v, nil
	}
	return nil, nil
}

// MarshalJSON writes null for unset and null fields.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if v, ok := o.Get(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}

// UnmarshalJSON is only called for keys present in the input, so it always
// marks the field as set.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		*o = Optional[T]{value: zero, set: true, null: true}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// TransformStrings applies f to the wrapped value when it is a string.
func (o *Optional[T]) TransformStrings(f func(string) string) {
	if !o.set || o.null {
		return
	}
	if s, ok := any(&o.value).(*string); ok {
		*s = f(*s)
	}
}

func (o Optional[T]) elemType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// DescribeSchema replaces the generated object schema with the wrapped type's
// schema, marked nullable.
func (o Optional[T]) DescribeSchema(schema *openapi3.Schema) error {
	var zero T
	g := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(schemaDoc()))
	ref, err := g.NewSchemaRefForValue(zero, nil)
	if err != nil {
		return err
	}
	*schema = *ref.Value
	schema.Nullable = true
	return nil
}
