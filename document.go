package librarian

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
)

type (
	// RuleFunc is a function type that validates a value and returns an error if invalid.
	RuleFunc func(value any) error

	// Rule is the interface that all validation rules must implement.
	Rule interface {
		Validate(value any) error
		Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
	}

	// FieldRules binds a struct field pointer to its validation rules.
	FieldRules struct {
		fieldPtr any
		tag      string
		rules    []Rule
	}

	// Ruler is implemented by schema structs. Rules must bind pointers to the
	// receiver's own fields so they can be matched back to JSON names.
	Ruler interface {
		Rules() []*FieldRules
	}

	// ContextRuler is like Ruler but receives the context passed to
	// [ValidateCtx] or [DecodeMapCtx].
	ContextRuler interface {
		Rules(ctx context.Context) []*FieldRules
	}

	// ValueRuler is implemented by non-struct types (e.g. type Role string)
	// that carry their own validation rules. The returned rules are automatically
	// applied during both validation and OpenAPI schema generation wherever the
	// type appears as a struct field, including inside [Optional].
	//
	//	type Role string
	//
	//	const (
	//	    RoleAdmin  Role = "admin"
	//	    RoleMember Role = "member"
	//	)
	//
	//	func (r Role) ValueRules() []Rule {
	//	    return []Rule{In(RoleAdmin, RoleMember)}
	//	}
	ValueRuler interface {
		ValueRules() []Rule
	}
)

// Tag returns the JSON name the rules are bound to. It is empty until the
// rules have been matched against their struct.
func (fr *FieldRules) Tag() string {
	return fr.tag
}

func (fr *FieldRules) required() bool {
	for _, r := range fr.rules {
		switch r.(type) {
		case requiredRule, presentRule:
			return true
		}
	}
	return false
}

func (fr *FieldRules) defaultValue() (any, bool) {
	for _, r := range fr.rules {
		if d, ok := r.(defaulter); ok {
			return d.a, true
		}
	}
	return nil, false
}
