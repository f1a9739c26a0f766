// Package librarian is the request/response validation layer of the library
// management API. It turns untyped input (decoded JSON, YAML, query maps) into
// strongly typed schema records, or into a single aggregated [Violations]
// error listing every field that failed and why.
//
// Schema types declare their constraints by implementing [Ruler]:
//
//	func (b *BookFields) Rules() []*FieldRules {
//	    return []*FieldRules{
//	        Field(&b.Title, Required, Length(1, 255)),
//	        Field(&b.TotalCopies, Min(1), Default(1)),
//	        Field(&b.AvailableCopies, Min(0), Default(1), AtMost(&b.TotalCopies, "total_copies")),
//	    }
//	}
//
// Then decode and validate a raw field map with a single call:
//
//	var book schema.BookCreate
//	err := DecodeMap(raw, &book)
//
// Decoding reports absent required fields as [MissingField] and values of the
// wrong shape as [TypeMismatch]. Field rules then report [RangeViolation] and
// [PatternMismatch], and cross-field rules run last, reporting
// [CrossFieldViolation] only when every field they depend on is valid.
//
// Partial-update schemas wrap fields in [Optional], which tells apart a field
// that was never sent from one sent as null.
//
// Sub-packages:
//   - schema – the library schema kinds (books, members, borrowings, auth)
//   - models – persistence records that response schemas project from
//   - errs – client-facing error payloads built from violations
//   - openapi – OpenAPI document of the library API and Swagger UI handler
//   - transform – struct string transformation utilities
package librarian
