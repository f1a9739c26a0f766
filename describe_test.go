package librarian

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper to create a fresh schema + ref for each test
func newTestSchemaRef() (*openapi3.Schema, *openapi3.SchemaRef) {
	schema := openapi3.NewSchema()
	ref := &openapi3.SchemaRef{
		Value: openapi3.NewSchema(),
	}
	return schema, ref
}

// helper for string-typed ref
func newTestStringSchemaRef() (*openapi3.Schema, *openapi3.SchemaRef) {
	schema := openapi3.NewSchema()
	ref := &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"string"},
		},
	}
	return schema, ref
}

func TestDescribe_Required(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Required.Describe("name", schema, ref)
	require.NoError(t, err)

	assert.Contains(t, schema.Required, "name")
}

func TestDescribe_Required_MultipleFields(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Required.Describe("name", schema, ref)
	require.NoError(t, err)
	err = Required.Describe("email", schema, ref)
	require.NoError(t, err)

	assert.Contains(t, schema.Required, "name")
	assert.Contains(t, schema.Required, "email")
}

func TestDescribe_Present(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Present.Describe("total_books", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, []string{"total_books"}, schema.Required)
	assert.NoError(t, Present.Validate(0))
}

func TestDescribe_Min(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Min(5).Describe("age", schema, ref)
	require.NoError(t, err)

	require.NotNil(t, ref.Value.Min)
	assert.Equal(t, float64(5), *ref.Value.Min)
}

func TestDescribe_Max(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Max(100).Describe("age", schema, ref)
	require.NoError(t, err)

	require.NotNil(t, ref.Value.Max)
	assert.Equal(t, float64(100), *ref.Value.Max)
}

func TestDescribe_MinMax_StringType(t *testing.T) {
	// When the ref is a string type, the threshold type is recorded as the format
	schema, ref := newTestStringSchemaRef()

	err := Min(0.0).Describe("amount", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "float64", ref.Value.Format)
	require.NotNil(t, ref.Value.Min)
	assert.Equal(t, float64(0), *ref.Value.Min)
}

func TestDescribe_Length(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Length(3, 255).Describe("title", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, uint64(3), ref.Value.MinLength)
	require.NotNil(t, ref.Value.MaxLength)
	assert.Equal(t, uint64(255), *ref.Value.MaxLength)
}

func TestDescribe_Length_NoUpperBound(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Length(6, 0).Describe("password", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, uint64(6), ref.Value.MinLength)
	assert.Nil(t, ref.Value.MaxLength)
}

func TestDescribe_In(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := In("a", "b", "c").Describe("status", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b", "c"}, ref.Value.Enum)
}

type testStatus string

func TestDescribe_In_NamedType(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := In(testStatus("borrowed"), testStatus("returned")).Describe("status", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, []any{"borrowed", "returned"}, ref.Value.Enum)
}

func TestDescribe_Email(t *testing.T) {
	schema, ref := newTestStringSchemaRef()

	err := Email.Describe("email", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "email", ref.Value.Format)
}

func TestDescribe_AtMost(t *testing.T) {
	schema, ref := newTestSchemaRef()
	total := 3

	err := AtMost(&total, "total_copies").Describe("available_copies", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "must not exceed total_copies", ref.Value.Description)
}

func TestDescribe_AtMost_AppendsDescription(t *testing.T) {
	schema, ref := newTestSchemaRef()
	ref.Value.Description = "copies on the shelf"
	total := 3

	err := AtMost(&total, "total_copies").Describe("available_copies", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "copies on the shelf must not exceed total_copies", ref.Value.Description)
}

func TestDescribe_DateRange(t *testing.T) {
	schema, ref := newTestSchemaRef()

	r := DateRange().Min(NewDate(1000, 1, 1)).Max(NewDate(2100, 12, 31))
	err := r.Describe("due_date", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, ">= 1000-01-01 <= 2100-12-31", ref.Value.Description)
}

func TestDescribe_NotNull(t *testing.T) {
	schema, ref := newTestSchemaRef()
	ref.Value.Nullable = true

	err := NotNull.Describe("title", schema, ref)
	require.NoError(t, err)

	assert.False(t, ref.Value.Nullable)
}

func TestDescribe_When_WithRules(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := When(true, "is admin", Required).Describe("role", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "when is admin: required", ref.Value.Description)
}

func TestDescribe_When_WithElse(t *testing.T) {
	schema, ref := newTestSchemaRef()

	w := When(true, "is admin", Required).Else(In("guest", "viewer"))
	err := w.Describe("role", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "when is admin: required else: one of [guest, viewer]", ref.Value.Description)
}

func TestDescribe_When_WithDescription(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := When(true, "create_user_account is true", Required, Describe("account password")).Describe("password", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "when create_user_account is true: account password, required", ref.Value.Description)
}

func TestDescribe_When_WithLength(t *testing.T) {
	schema, ref := newTestSchemaRef()

	w := When(true, "create_user_account is true", Required, Length(6, 0)).Else(Length(0, 72))
	require.NoError(t, w.Describe("password", schema, ref))

	assert.Equal(t, "when create_user_account is true: required, at least 6 characters else: at most 72 characters", ref.Value.Description)
	assert.Empty(t, schema.Required)
	assert.Zero(t, ref.Value.MinLength)
}

func TestDescribe_When_WithMin(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := When(true, "positive", Min(0.0)).Describe("amount", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "when positive: min 0", ref.Value.Description)
}

func TestDescribe_When_EmptyDesc(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := When(true, "", Max(0.0)).Describe("amount", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "max 0", ref.Value.Description)
}

func TestDescribe_When_MultipleInnerRules(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := When(true, "active", Required, Min(1.0)).Describe("count", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "when active: required, min 1", ref.Value.Description)
}

func TestWhen_Validate(t *testing.T) {
	for _, createAccount := range []bool{true, false} {
		rule := When(createAccount, "create_user_account is true", Required)
		if createAccount {
			assert.Error(t, rule.Validate(""))
		} else {
			assert.NoError(t, rule.Validate(""))
		}
		assert.NoError(t, rule.Validate("s3cret!"))
	}
	assert.Error(t, When(false, "role is admin").Else(Required).Validate(""))
}

func TestDescribe_Describe(t *testing.T) {
	schema, ref := newTestSchemaRef()

	d := Describe("a helpful description")
	err := d.Describe("field", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "a helpful description", ref.Value.Description)
}

func TestDescribe_Describe_Appends(t *testing.T) {
	schema, ref := newTestSchemaRef()
	ref.Value.Description = "prefix"

	d := Describe("suffix")
	err := d.Describe("field", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "prefix suffix", ref.Value.Description)
}

func TestDescribe_Default(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Default("hello").Describe("greeting", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "hello", ref.Value.Default)
}

func TestDescribe_Default_Number(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Default(42).Describe("count", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, 42.0, ref.Value.Default)
}

func TestDescribe_Default_Bool(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Default(false).Describe("create_user_account", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, false, ref.Value.Default)
}

func TestDescribe_Example(t *testing.T) {
	schema, ref := newTestSchemaRef()

	err := Example("sample@email.com").Describe("email", schema, ref)
	require.NoError(t, err)

	assert.Equal(t, "sample@email.com", ref.Value.Example)
}
