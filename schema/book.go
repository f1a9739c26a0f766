package schema

import (
	"time"

	v "github.com/Gobd/librarian"
	"github.com/Gobd/librarian/models"
	"github.com/Gobd/librarian/transform"
)

// BookFields are the fields shared by book creation and book responses.
type BookFields struct {
	Title           string             `json:"title"`
	Author          string             `json:"author"`
	ISBN            v.Optional[string] `json:"isbn"`
	PublishedYear   v.Optional[int]    `json:"published_year"`
	TotalCopies     int                `json:"total_copies"`
	AvailableCopies int                `json:"available_copies"`
}

func (b *BookFields) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.Title, v.Required, v.Length(1, 255), v.Example("The Dispossessed")),
		v.Field(&b.Author, v.Required, v.Length(1, 255), v.Example("Ursula K. Le Guin")),
		v.Field(&b.ISBN, v.Length(0, 20)),
		v.Field(&b.PublishedYear, v.Min(1000), v.Max(2100)),
		v.Field(&b.TotalCopies, v.Min(1), v.Default(1)),
		v.Field(&b.AvailableCopies, v.Min(0), v.Default(1), v.AtMost(&b.TotalCopies, "total_copies")),
	}
}

func (b *BookFields) Normalize() {
	transform.TrimSpace(b)
}

// Model returns the persistence record for the fields. Server-assigned
// columns are left zero.
func (b BookFields) Model() models.Book {
	return models.Book{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN.Ptr(),
		PublishedYear:   b.PublishedYear.Ptr(),
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}
}

func bookFieldsOf(rec models.Book) BookFields {
	return BookFields{
		Title:           rec.Title,
		Author:          rec.Author,
		ISBN:            v.FromPtr(rec.ISBN),
		PublishedYear:   v.FromPtr(rec.PublishedYear),
		TotalCopies:     rec.TotalCopies,
		AvailableCopies: rec.AvailableCopies,
	}
}

// BookCreate is the body of a create-book request.
type BookCreate struct {
	BookFields
}

func (b *BookCreate) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.BookFields),
	}
}

// BookUpdate is the body of a partial book update. Unset fields leave the
// stored value untouched; isbn and published_year may be cleared with null.
type BookUpdate struct {
	Title           v.Optional[string] `json:"title,omitzero"`
	Author          v.Optional[string] `json:"author,omitzero"`
	ISBN            v.Optional[string] `json:"isbn,omitzero"`
	PublishedYear   v.Optional[int]    `json:"published_year,omitzero"`
	TotalCopies     v.Optional[int]    `json:"total_copies,omitzero"`
	AvailableCopies v.Optional[int]    `json:"available_copies,omitzero"`
}

func (b *BookUpdate) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.Title, v.NotNull, v.Length(1, 255)),
		v.Field(&b.Author, v.NotNull, v.Length(1, 255)),
		v.Field(&b.ISBN, v.Length(0, 20)),
		v.Field(&b.PublishedYear, v.Min(1000), v.Max(2100)),
		v.Field(&b.TotalCopies, v.NotNull, v.Min(1)),
		v.Field(&b.AvailableCopies, v.NotNull, v.Min(0), v.AtMost(&b.TotalCopies, "total_copies")),
	}
}

func (b *BookUpdate) Normalize() {
	transform.TrimSpace(b)
}

// ApplyTo merges the update into rec. The merged book is validated as a
// whole, so available_copies is checked against the stored total_copies when
// only one of the two is sent. rec is left unchanged on failure.
func (b *BookUpdate) ApplyTo(rec *models.Book) error {
	next := *rec
	if s, ok := b.Title.Get(); ok {
		next.Title = s
	}
	if s, ok := b.Author.Get(); ok {
		next.Author = s
	}
	if b.ISBN.IsSet() {
		next.ISBN = b.ISBN.Ptr()
	}
	if b.PublishedYear.IsSet() {
		next.PublishedYear = b.PublishedYear.Ptr()
	}
	if n, ok := b.TotalCopies.Get(); ok {
		next.TotalCopies = n
	}
	if n, ok := b.AvailableCopies.Get(); ok {
		next.AvailableCopies = n
	}
	merged := bookFieldsOf(next)
	if err := v.Validate(&merged); err != nil {
		return err
	}
	*rec = next
	return nil
}

// BookResponse is a stored book as returned to clients.
type BookResponse struct {
	ID int64 `json:"id"`
	BookFields
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *BookResponse) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.ID, v.Required),
		v.Field(&b.BookFields),
		v.Field(&b.CreatedAt, v.Required),
		v.Field(&b.UpdatedAt, v.Required),
	}
}

// NewBookResponse projects a stored book. The record is trusted and not
// validated.
func NewBookResponse(rec models.Book) BookResponse {
	return BookResponse{
		ID:         rec.ID,
		BookFields: bookFieldsOf(rec),
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}
