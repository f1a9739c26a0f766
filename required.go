package librarian

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type requiredRule struct {
	validation.RequiredRule
	desc string
}

// Required is a validation rule that checks if a value is not empty. When
// decoding a raw map, an absent or null key fails it as a missing field before
// any other rule runs.
var Required = requiredRule{
	validation.Required,
	"required",
}

func (r requiredRule) Describe(name string, schema *openapi3.Schema, _ *openapi3.SchemaRef) error {
	schema.Required = append(schema.Required, name)
	return nil
}

type presentRule struct{}

// Present requires the key to be sent when decoding a raw map, but accepts
// any value for it, zero included. Use it instead of [Required] for counters
// and flags whose zero value is meaningful.
var Present = presentRule{}

func (presentRule) Validate(any) error {
	return nil
}

func (presentRule) Describe(name string, schema *openapi3.Schema, _ *openapi3.SchemaRef) error {
	schema.Required = append(schema.Required, name)
	return nil
}
