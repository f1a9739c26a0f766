package openapi

import (
	"github.com/Gobd/librarian"
	"github.com/getkin/kin-openapi/openapi3"
)

// NewSchemaRefForValue generates an OpenAPI schema for the given value,
// applying validation rules from types that implement [librarian.Ruler],
// [librarian.ContextRuler], or [librarian.ValueRuler].
func NewSchemaRefForValue(value any) (*openapi3.SchemaRef, error) {
	return librarian.NewSchemaRefForValue(value)
}
