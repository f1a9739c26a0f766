package librarian

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the wire format of [Date].
const DateLayout = "2006-01-02"

var errDateFormat = validation.NewError(CodeTypeMismatch, "must be a date in YYYY-MM-DD format")

// Date is a calendar date without time of day, encoded as "YYYY-MM-DD".
type Date struct {
	time.Time
}

// NewDate returns the date y-m-d in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// ParseDate parses s in [DateLayout].
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errDateFormat
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// MarshalJSON implements [json.Marshaler].
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements [json.Unmarshaler]. Full timestamps are accepted and
// truncated, which lets records serialized with time.Time round-trip.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errDateFormat
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		*d = DateOf(t)
		return nil
	}
	p, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = p
	return nil
}

// Value implements [driver.Valuer]. A zero date is stored as NULL.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

// Scan implements [sql.Scanner].
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
	case time.Time:
		*d = DateOf(v)
	case string:
		p, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = p
	case []byte:
		p, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = p
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

// TypeName names the type in type mismatch errors.
func (Date) TypeName() string {
	return "date"
}

// DescribeSchema documents Date as an OpenAPI date string.
func (Date) DescribeSchema(schema *openapi3.Schema) error {
	*schema = *openapi3.NewDateTimeSchema()
	schema.Format = "date"
	return nil
}

// DateRule validates that a [Date] (or time.Time) value lies within a range.
// Use [DateRange] to create one, then chain [DateRule.Min] and [DateRule.Max].
type DateRule struct {
	min, max Date
}

// DateRange creates an unbounded date range rule.
func DateRange() *DateRule {
	return &DateRule{}
}

// Min sets the earliest allowed date, inclusive.
func (r *DateRule) Min(d Date) *DateRule {
	r.min = d
	return r
}

// Max sets the latest allowed date, inclusive.
func (r *DateRule) Max(d Date) *DateRule {
	r.max = d
	return r
}

// Validate implements [Rule].
func (r *DateRule) Validate(value any) error {
	value, isNil := validation.Indirect(value)
	if isNil {
		return nil
	}
	t, ok := value.(time.Time)
	if !ok {
		return fmt.Errorf("expected date, got %T", value)
	}
	if (!r.min.IsZero() && t.Before(r.min.Time)) || (!r.max.IsZero() && t.After(r.max.Time)) {
		return validation.NewError(CodeDateRange, "must be between {{.min}} and {{.max}}").
			SetParams(map[string]any{"min": r.min.String(), "max": r.max.String()})
	}
	return nil
}

// Describe implements [Rule] by adding the date range to the schema description.
func (r *DateRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if !r.min.IsZero() {
		if ref.Value.Description != "" && !strings.HasSuffix(ref.Value.Description, " ") {
			ref.Value.Description += " "
		}
		ref.Value.Description += ">= " + r.min.String()
	}
	if !r.max.IsZero() {
		if ref.Value.Description != "" && !strings.HasSuffix(ref.Value.Description, " ") {
			ref.Value.Description += " "
		}
		ref.Value.Description += "<= " + r.max.String()
	}
	return nil
}
