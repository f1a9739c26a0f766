package librarian_test

import (
	"errors"
	"strings"
	"testing"

	v "github.com/Gobd/librarian"
	"github.com/Gobd/librarian/transform"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============ Test types ============

// --- Simple struct: just Rules() ---

type valItem struct {
	Name string
}

func (i *valItem) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&i.Name, v.Required, v.Length(1, 50)),
	}
}

// --- Nested parent → []child (bridge auto-validates children) ---

type valChild struct {
	Name string `json:"name"`
}

func (c *valChild) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&c.Name, v.Required),
	}
}

type valParent struct {
	Title    string     `json:"title"`
	Children []valChild `json:"children"`
}

func (p *valParent) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&p.Title, v.Required),
		v.Field(&p.Children),
	}
}

// --- Embedded Ruler ---

type valBase struct {
	ID string `json:"id"`
}

func (b *valBase) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.ID, v.Required),
	}
}

type valWithEmbed struct {
	valBase
	Label string `json:"label"`
}

func (w *valWithEmbed) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&w.valBase),
		v.Field(&w.Label, v.Required),
	}
}

// --- ValueRuler ---

type shelf string

func (s shelf) ValueRules() []v.Rule {
	return []v.Rule{v.In(shelf("fiction"), shelf("reference"))}
}

type valShelved struct {
	Shelf    shelf              `json:"shelf"`
	OldShelf v.Optional[shelf] `json:"old_shelf"`
}

func (s *valShelved) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&s.Shelf, v.Required),
		v.Field(&s.OldShelf),
	}
}

// --- Cross-field ---

type valStock struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

func (s *valStock) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&s.Total, v.Min(1)),
		v.Field(&s.Available, v.Min(0), v.AtMost(&s.Total, "total")),
	}
}

// --- Normalizers ---

type valNormalizable struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (n *valNormalizable) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&n.Name, v.Required),
		v.Field(&n.Email, v.Required, v.Email),
	}
}

func (n *valNormalizable) Normalize() {
	transform.TrimSpace(n)
	n.Email = strings.ToLower(n.Email)
}

type normAddress struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

func (a *normAddress) Normalize() {
	transform.TrimSpace(a)
	a.City = strings.ToUpper(a.City)
}

type normMember struct {
	Name      string        `json:"name"`
	Addresses []normAddress `json:"addresses"`
}

func (m *normMember) Normalize() {
	transform.TrimSpace(m)
}

// ============ Tests ============

// --- Validate auto-detects Ruler ---

func TestValidate_Ruler_Valid(t *testing.T) {
	item := valItem{Name: "test"}
	err := v.Validate(&item)
	assert.NoError(t, err)
}

func TestValidate_Ruler_FieldErrors(t *testing.T) {
	item := valItem{Name: ""}
	err := v.Validate(&item)
	require.Error(t, err)

	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	require.Len(t, vs, 1)
	assert.Equal(t, "Name", vs[0].Field)
	assert.Equal(t, v.MissingField, vs[0].Category)
	assert.Equal(t, "cannot be blank", vs[0].Reason)
}

func TestValidate_NonRuler(t *testing.T) {
	err := v.Validate("anything")
	assert.NoError(t, err)
}

func TestValidate_NilPtr(t *testing.T) {
	var item *valItem
	err := v.Validate(item)
	assert.NoError(t, err)
}

func TestValidate_AggregatesEveryField(t *testing.T) {
	p := valWithEmbed{}
	err := v.Validate(&p)
	require.Error(t, err)

	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "label"}, vs.Fields())
	assert.Equal(t, "id: cannot be blank; label: cannot be blank.", err.Error())
}

// --- Collections ---

func TestValidate_SliceOfRulerStructs_AllValid(t *testing.T) {
	items := []valItem{{Name: "alpha"}, {Name: "beta"}}
	err := v.Validate(&items)
	assert.NoError(t, err)
}

func TestValidate_SliceOfRulerStructs_InvalidElement(t *testing.T) {
	items := []valItem{{Name: "alpha"}, {Name: ""}}
	err := v.Validate(&items)
	require.Error(t, err)

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs, "1")

	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, []string{"1.Name"}, vs.Fields())
}

func TestValidate_MapOfRulerStructs_InvalidValue(t *testing.T) {
	m := map[string]valItem{"good": {Name: "ok"}, "bad": {Name: ""}}
	err := v.Validate(m)
	require.Error(t, err)

	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, []string{"bad.Name"}, vs.Fields())
}

func TestValidate_EmptyAndNilCollections(t *testing.T) {
	var nilSlice []valItem
	assert.NoError(t, v.Validate(nilSlice))
	assert.NoError(t, v.Validate([]valItem{}))
	var nilMap map[string]valItem
	assert.NoError(t, v.Validate(nilMap))
}

// --- Nested and embedded structs ---

func TestValidate_Parent_Valid(t *testing.T) {
	p := valParent{
		Title:    "parent",
		Children: []valChild{{Name: "child"}},
	}
	assert.NoError(t, v.Validate(&p))
}

func TestValidate_Parent_InvalidChild(t *testing.T) {
	p := valParent{
		Title:    "parent",
		Children: []valChild{{Name: "ok"}, {Name: ""}},
	}
	err := v.Validate(&p)
	require.Error(t, err)

	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, []string{"children.1.name"}, vs.Fields())
}

func TestValidate_Embedded_MissingEmbeddedField(t *testing.T) {
	w := valWithEmbed{Label: "x"}
	err := v.Validate(&w)
	require.Error(t, err)

	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, vs.Fields())
}

// --- ValueRuler ---

func TestValidate_ValueRuler(t *testing.T) {
	assert.NoError(t, v.Validate(&valShelved{Shelf: "fiction"}))
	assert.NoError(t, v.Validate(&valShelved{Shelf: "fiction", OldShelf: v.Some(shelf("reference"))}))

	err := v.Validate(&valShelved{Shelf: "attic"})
	require.Error(t, err)
	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	viol, ok := vs.Get("shelf")
	require.True(t, ok)
	assert.Equal(t, v.PatternMismatch, viol.Category)
	assert.Equal(t, "must be one of 'fiction', 'reference', got 'attic'", viol.Reason)
}

func TestValidate_ValueRuler_InsideOptional(t *testing.T) {
	err := v.Validate(&valShelved{Shelf: "fiction", OldShelf: v.Some(shelf("attic"))})
	require.Error(t, err)
	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, []string{"old_shelf"}, vs.Fields())

	assert.NoError(t, v.Validate(&valShelved{Shelf: "fiction", OldShelf: v.Null[shelf]()}))
}

// --- Cross-field rules ---

func TestValidate_CrossField(t *testing.T) {
	assert.NoError(t, v.Validate(&valStock{Total: 2, Available: 2}))

	err := v.Validate(&valStock{Total: 2, Available: 5})
	require.Error(t, err)
	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	require.Len(t, vs, 1)
	assert.Equal(t, v.Violation{
		Field:    "available",
		Category: v.CrossFieldViolation,
		Code:     v.CodeCrossField,
		Reason:   "exceeds total",
	}, vs[0])
}

func TestValidate_CrossField_SkippedWhenDependencyFails(t *testing.T) {
	err := v.Validate(&valStock{Total: 0, Available: 5})
	require.Error(t, err)
	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, []string{"total"}, vs.Fields())
}

func TestValidate_CrossField_SkippedWhenFieldFails(t *testing.T) {
	err := v.Validate(&valStock{Total: 2, Available: -1})
	require.Error(t, err)
	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	require.Len(t, vs, 1)
	assert.Equal(t, v.RangeViolation, vs[0].Category)
}

// --- ValidateStruct with explicit rules ---

func TestValidateStruct(t *testing.T) {
	item := valItem{Name: strings.Repeat("x", 51)}
	err := v.ValidateStruct(&item, []*v.FieldRules{
		v.Field(&item.Name, v.Length(1, 50)),
	})
	require.Error(t, err)
	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, v.RangeViolation, vs[0].Category)
}

func TestValidateStruct_ForeignPointer(t *testing.T) {
	item := valItem{}
	other := "x"
	err := v.ValidateStruct(&item, []*v.FieldRules{v.Field(&other, v.Required)})
	require.Error(t, err)
	_, ok := v.AsViolations(err)
	assert.False(t, ok)
}

// --- UnmarshalAndValidate ---

func TestUnmarshalAndValidate_Valid(t *testing.T) {
	body := `{"Name":"test"}`
	var item valItem
	err := v.UnmarshalAndValidate([]byte(body), &item)
	assert.NoError(t, err)
	assert.Equal(t, "test", item.Name)
}

func TestUnmarshalAndValidate_InvalidJSON(t *testing.T) {
	body := `{bad json`
	var item valItem
	err := v.UnmarshalAndValidate([]byte(body), &item)
	require.Error(t, err)
	_, ok := v.AsViolations(err)
	assert.False(t, ok)
}

func TestUnmarshalAndValidate_TrailingData(t *testing.T) {
	for _, tc := range []struct {
		name string
		body string
	}{
		{"second object", `{"Name":"Dune"} {"Name":""}`},
		{"garbage", `{"Name":"Dune"} garbage`},
		{"closing brace", `{"Name":"Dune"}}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var item valItem
			err := v.UnmarshalAndValidate([]byte(tc.body), &item)
			require.Error(t, err)
			_, ok := v.AsViolations(err)
			assert.False(t, ok)
		})
	}

	var item valItem
	err := v.UnmarshalAndValidate([]byte(`{"Name":"Dune"} {"Name":""}`), &item)
	assert.ErrorIs(t, err, v.ErrTrailingData)

	err = v.UnmarshalAndValidate([]byte("{\"Name\":\"Dune\"}\n  "), &item)
	assert.NoError(t, err)
}

func TestUnmarshalAndValidate_MissingField(t *testing.T) {
	var item valItem
	err := v.UnmarshalAndValidate([]byte(`{}`), &item)
	require.Error(t, err)

	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, v.Violations{{
		Field:    "Name",
		Category: v.MissingField,
		Code:     "validation_required",
		Reason:   "is required",
	}}, vs)
}

func TestUnmarshalAndValidate_DoesNotTrim(t *testing.T) {
	body := `{"Name":"  test  "}`
	var item valItem
	err := v.UnmarshalAndValidate([]byte(body), &item)
	assert.NoError(t, err)
	assert.Equal(t, "  test  ", item.Name)
}

func TestUnmarshalAndValidate_Normalizes(t *testing.T) {
	body := `{"name":" Test ","email":"UPPER@EMAIL.COM"}`
	var n valNormalizable
	err := v.UnmarshalAndValidate([]byte(body), &n)
	assert.NoError(t, err)
	assert.Equal(t, "Test", n.Name)
	assert.Equal(t, "upper@email.com", n.Email)
}

func TestUnmarshalAndValidate_NormalizesBeforeRules(t *testing.T) {
	var n valNormalizable
	err := v.UnmarshalAndValidate([]byte(`{"name":"   ","email":"a@b.co"}`), &n)
	require.Error(t, err)
	vs, ok := v.AsViolations(err)
	require.True(t, ok)
	assert.Equal(t, []string{"name"}, vs.Fields())
}

func TestUnmarshalAndValidate_NormalizesRecursive(t *testing.T) {
	body := `{"name":"  Ada Lovelace  ","addresses":[{"street":"  12 St James's Square  ","city":"  london  "}]}`
	var m normMember
	err := v.UnmarshalAndValidate([]byte(body), &m)
	assert.NoError(t, err)

	// Top-level Normalize trims every string via TrimSpace.
	assert.Equal(t, "Ada Lovelace", m.Name)
	// Nested normAddress.Normalize trims then uppercases City.
	assert.Equal(t, "12 St James's Square", m.Addresses[0].Street)
	assert.Equal(t, "LONDON", m.Addresses[0].City)
}

func TestDecodeAndValidate_Reader(t *testing.T) {
	var item valItem
	err := v.DecodeAndValidate(strings.NewReader(`{"Name":"from reader"}`), &item)
	assert.NoError(t, err)
	assert.Equal(t, "from reader", item.Name)
}
