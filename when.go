package librarian

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// WhenRule applies its rules only while a condition read from the decoded
// record holds, and its [WhenRule.Else] rules otherwise. The condition is
// captured when Rules runs, so it sees the decoded values:
//
//	v.Field(&m.Password,
//	    v.When(m.CreateUserAccount, "create_user_account is true", v.Required),
//	    v.Length(6, 0),
//	)
//
// The generated schema cannot express the condition, so the description of
// the field spells it out instead, e.g. "when create_user_account is true:
// required".
type WhenRule struct {
	validation.WhenRule
	cond      string
	then      []Rule
	otherwise []Rule
}

// When returns a rule applying rules only when condition is true. cond
// describes the condition in the generated documentation.
func When(condition bool, cond string, rules ...Rule) *WhenRule {
	return &WhenRule{
		WhenRule: validation.When(condition, convertRules(rules...)...),
		cond:     cond,
		then:     rules,
	}
}

// Else sets the rules applied when the condition is false.
func (r *WhenRule) Else(rules ...Rule) *WhenRule {
	r.WhenRule = r.WhenRule.Else(convertRules(rules...)...)
	r.otherwise = rules
	return r
}

// Describe implements [Rule]. It appends a summary of both branches to the
// field description and leaves the rest of the schema untouched.
func (r *WhenRule) Describe(name string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	then, err := summarize(name, r.then)
	if err != nil {
		return err
	}
	if then != "" && r.cond != "" {
		then = "when " + r.cond + ": " + then
	}
	appendDescription(ref.Value, then)

	otherwise, err := summarize(name, r.otherwise)
	if err != nil {
		return err
	}
	if otherwise != "" {
		appendDescription(ref.Value, "else: "+otherwise)
	}
	return nil
}

// summarize describes rules into a scratch schema and renders what they set
// as a short phrase such as "required, at least 6 characters".
func summarize(name string, rules []Rule) (string, error) {
	if len(rules) == 0 {
		return "", nil
	}
	parent := openapi3.NewSchema()
	scratch := &openapi3.SchemaRef{Value: openapi3.NewSchema()}
	for _, rule := range rules {
		if err := rule.Describe(name, parent, scratch); err != nil {
			return "", err
		}
	}

	s := scratch.Value
	var parts []string
	if s.Description != "" {
		parts = append(parts, s.Description)
	}
	if len(parent.Required) > 0 {
		parts = append(parts, "required")
	}
	if s.MinLength > 0 {
		parts = append(parts, fmt.Sprintf("at least %d characters", s.MinLength))
	}
	if s.MaxLength != nil {
		parts = append(parts, fmt.Sprintf("at most %d characters", *s.MaxLength))
	}
	if s.Min != nil {
		parts = append(parts, fmt.Sprintf("min %g", *s.Min))
	}
	if s.Max != nil {
		parts = append(parts, fmt.Sprintf("max %g", *s.Max))
	}
	if len(s.Enum) > 0 {
		vals := make([]string, len(s.Enum))
		for i, e := range s.Enum {
			vals[i] = fmt.Sprint(e)
		}
		parts = append(parts, "one of ["+strings.Join(vals, ", ")+"]")
	}
	return strings.Join(parts, ", "), nil
}

func appendDescription(s *openapi3.Schema, text string) {
	if text == "" {
		return
	}
	if s.Description != "" && !strings.HasSuffix(s.Description, " ") {
		s.Description += " "
	}
	s.Description += text
}
