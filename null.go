package librarian

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type nuller interface {
	IsNull() bool
}

// NotNull rejects an [Optional] that was explicitly sent as null. Use it on
// update fields whose column cannot be cleared.
var NotNull = notNullRule{validation.NewError(CodeNotNull, "cannot be null")}

type notNullRule struct {
	err validation.Error
}

func (r notNullRule) Validate(value any) error {
	if n, ok := value.(nuller); ok && n.IsNull() {
		return r.err
	}
	return nil
}

func (r notNullRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Nullable = false
	return nil
}
