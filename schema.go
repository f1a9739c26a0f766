package librarian

import (
	"context"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// schemaDescriber is implemented by types whose generated schema must be
// replaced wholesale, such as [Optional] and [Date].
type schemaDescriber interface {
	DescribeSchema(schema *openapi3.Schema) error
}

func indirect(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = reflect.Indirect(rv)
	}
	return rv
}

// getRulesForType returns validation rules for t if it implements Ruler or ContextRuler.
func getRulesForType(t reflect.Type) (any, []*FieldRules) {
	inst := reflect.New(t).Interface()
	if fields, ok := rulesOf(context.Background(), inst); ok {
		return inst, fields
	}
	return nil, nil
}

// removeSkippedFields deletes schema properties for fields tagged with docs:"skip".
// Recurses into embedded (anonymous) struct fields.
func removeSkippedFields(structVal reflect.Value, schema *openapi3.Schema) {
	for i := range structVal.NumField() {
		sf := structVal.Type().Field(i)
		if sf.Anonymous {
			fi := structVal.Field(i)
			if sf.Type.Kind() == reflect.Ptr {
				fi = fi.Elem()
			}
			if fi.Kind() == reflect.Struct {
				removeSkippedFields(fi, schema)
			}
			continue
		}
		if strings.Split(sf.Tag.Get("docs"), ",")[0] != "skip" {
			continue
		}
		delete(schema.Properties, fieldKey(sf))
	}
}

// applyRulesToSchema calls Describe on each rule for matching schema properties.
func applyRulesToSchema(fields []*FieldRules, schema *openapi3.Schema) error {
	for k, propRef := range schema.Properties {
		for _, f := range fields {
			if f.tag != k {
				continue
			}
			for _, rule := range f.rules {
				if err := rule.Describe(k, schema, propRef); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// schemaDoc returns a SchemaCustomizer that applies validation rules to OpenAPI schemas.
func schemaDoc() openapi3gen.SchemaCustomizerFn {
	return func(name string, t reflect.Type, _ reflect.StructTag, schema *openapi3.Schema) error {
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if d, ok := reflect.New(t).Elem().Interface().(schemaDescriber); ok {
			return d.DescribeSchema(schema)
		}

		vi, fields := getRulesForType(t)
		if vi == nil {
			return applyValueRulerSchema(t, name, schema)
		}
		structVal := indirect(vi)

		// Expand embedded Ruler fields into the parent's rule set.
		fields = ExpandFields(context.Background(), vi, fields)

		removeSkippedFields(structVal, schema)

		if err := mapFieldsToTags(fields, structVal); err != nil {
			return err
		}

		return applyRulesToSchema(fields, schema)
	}
}

// applyValueRulerSchema checks if a type implements ValueRuler and applies
// its rules' Describe methods to the schema. Used for non-struct types
// (e.g. type Role string) that carry their own validation rules.
func applyValueRulerSchema(t reflect.Type, name string, schema *openapi3.Schema) error {
	vr, ok := reflect.New(t).Elem().Interface().(ValueRuler)
	if !ok {
		return nil
	}
	ref := &openapi3.SchemaRef{Value: schema}
	for _, rule := range vr.ValueRules() {
		if err := rule.Describe(name, schema, ref); err != nil {
			return err
		}
	}
	return nil
}

// NewSchemaRefForValue generates an OpenAPI schema for the given value,
// applying validation rules from types that implement [Ruler],
// [ContextRuler], or [ValueRuler].
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	g := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(schemaDoc()))
	return g.NewSchemaRefForValue(value, nil)
}
