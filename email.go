package librarian

import (
	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type emailRule struct {
	err validation.Error
}

// Email checks that a string is an address with an "@"-delimited domain.
// Unset values are skipped; a present empty string fails.
var Email Rule = emailRule{
	err: validation.NewError(CodeEmail, "must be a valid email address"),
}

func (r emailRule) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	s, err := validation.EnsureString(value)
	if err != nil {
		return err
	}
	if !govalidator.IsEmail(s) {
		return r.err
	}
	return nil
}

func (r emailRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Format = "email"
	return nil
}
