package librarian

import (
	"context"
	"reflect"
	"strings"
)

// MissingRules returns the JSON names of the fields of structPtr that no
// entry of its Rules covers, fields of embedded schemas included. It is meant
// for tests that keep a schema registry honest:
//
//	for _, kind := range schema.Kinds() {
//	    rec, _ := schema.New(kind)
//	    assert.Empty(t, v.MissingRules(rec), kind)
//	}
//
// Fields hidden from JSON, tagged docs:"skip" or tagged validate:"-" need no
// rule. exclude lists further fields by Go or JSON name.
func MissingRules(structPtr any, exclude ...string) []string {
	ctx := context.Background()
	fields, ok := rulesOf(ctx, structPtr)
	if !ok {
		return nil
	}
	structVal := reflect.Indirect(reflect.ValueOf(structPtr))

	covered := map[string]bool{}
	for _, fr := range ExpandFields(ctx, structPtr, fields) {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() != reflect.Ptr {
			continue
		}
		if sf := FindStructField(structVal, fv); sf != nil {
			covered[fieldKey(*sf)] = true
		}
	}
	for _, name := range exclude {
		covered[name] = true
	}

	var missing []string
	walkFields(structVal, func(sf reflect.StructField, _ reflect.Value) {
		if strings.Split(sf.Tag.Get("docs"), ",")[0] == "skip" || sf.Tag.Get("validate") == "-" {
			return
		}
		if key := fieldKey(sf); !covered[key] && !covered[sf.Name] {
			missing = append(missing, key)
		}
	})
	return missing
}
