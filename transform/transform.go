package transform

import (
	"reflect"
	"strings"
)

// Func rewrites a single string value.
type Func func(string) string

// Chain returns a Func applying fns from left to right.
func Chain(fns ...Func) Func {
	return func(s string) string {
		for _, f := range fns {
			s = f(s)
		}
		return s
	}
}

// Email trims an address and lowercases it.
var Email = Chain(strings.TrimSpace, strings.ToLower)

// StringTransformer is implemented by wrapper types, such as
// [librarian.Optional], that hold a string the reflection walk cannot reach.
type StringTransformer interface {
	TransformStrings(f func(string) string)
}

// TrimSpace runs [strings.TrimSpace] on every string reachable from v.
func TrimSpace(v any) {
	Strings(v, strings.TrimSpace)
}

// Strings applies f to every settable string reachable from the pointer v:
// struct fields, pointer targets, slice and array elements, map values and
// values held by a [StringTransformer]. Struct fields tagged
// `transform:"-"` and interface values are left alone.
func Strings(v any, f Func) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}
	walk(rv.Elem(), f)
}

func walk(rv reflect.Value, f Func) {
	if rv.CanAddr() && rv.Addr().CanInterface() {
		if st, ok := rv.Addr().Interface().(StringTransformer); ok {
			st.TransformStrings(f)
			return
		}
	}

	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(f(rv.String()))
		}
	case reflect.Pointer:
		if !rv.IsNil() {
			walk(rv.Elem(), f)
		}
	case reflect.Struct:
		t := rv.Type()
		for i := range rv.NumField() {
			sf := t.Field(i)
			if (!sf.IsExported() && !sf.Anonymous) || sf.Tag.Get("transform") == "-" {
				continue
			}
			walk(rv.Field(i), f)
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			walk(rv.Index(i), f)
		}
	case reflect.Map:
		if !rv.CanSet() {
			return
		}
		for _, key := range rv.MapKeys() {
			cp := reflect.New(rv.Type().Elem()).Elem()
			cp.Set(rv.MapIndex(key))
			walk(cp, f)
			rv.SetMapIndex(key, cp)
		}
	}
}
