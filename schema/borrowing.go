package schema

import (
	"time"

	v "github.com/Gobd/librarian"
	"github.com/Gobd/librarian/models"
)

// Dates outside this window are rejected as out of range.
var (
	earliestDate = v.NewDate(1000, time.January, 1)
	latestDate   = v.NewDate(2100, time.December, 31)
)

func dateWindow() *v.DateRule {
	return v.DateRange().Min(earliestDate).Max(latestDate)
}

// BorrowingFields are the fields shared by borrowing creation and responses.
// MemberID may be left out of a request; it is then resolved from the caller.
type BorrowingFields struct {
	BookID   int64             `json:"book_id"`
	MemberID v.Optional[int64] `json:"member_id"`
	DueDate  v.Date            `json:"due_date"`
}

func (b *BorrowingFields) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.BookID, v.Required, v.Min(1)),
		v.Field(&b.MemberID, v.Min(1), v.Describe("defaults to the member of the caller")),
		v.Field(&b.DueDate, v.Required, dateWindow()),
	}
}

// BorrowingCreate is the body of a borrow request.
type BorrowingCreate struct {
	BorrowingFields
}

func (b *BorrowingCreate) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.BorrowingFields),
	}
}

// MemberIDOr returns the requested member, or caller when none was sent.
func (b *BorrowingCreate) MemberIDOr(caller int64) int64 {
	return b.MemberID.OrElse(caller)
}

// Model returns a new borrowing record for the request, borrowed on today by
// member.
func (b *BorrowingCreate) Model(member int64, today v.Date) models.Borrowing {
	return models.Borrowing{
		BookID:     b.BookID,
		MemberID:   member,
		BorrowDate: today,
		DueDate:    b.DueDate,
		Status:     string(StatusBorrowed),
	}
}

// BorrowingUpdate is the body of a partial borrowing update. A null
// return_date clears it.
type BorrowingUpdate struct {
	ReturnDate v.Optional[v.Date]          `json:"return_date,omitzero"`
	Status     v.Optional[BorrowingStatus] `json:"status,omitzero"`
	FineAmount v.Optional[float64]         `json:"fine_amount,omitzero"`
}

func (b *BorrowingUpdate) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.ReturnDate, dateWindow()),
		v.Field(&b.Status, v.NotNull),
		v.Field(&b.FineAmount, v.NotNull, v.Min(0.0)),
	}
}

// ApplyTo merges the update into rec.
func (b *BorrowingUpdate) ApplyTo(rec *models.Borrowing) {
	if b.ReturnDate.IsSet() {
		rec.ReturnDate = b.ReturnDate.Ptr()
	}
	if s, ok := b.Status.Get(); ok {
		rec.Status = string(s)
	}
	if f, ok := b.FineAmount.Get(); ok {
		rec.FineAmount = f
	}
}

// BorrowingResponse is a stored borrowing as returned to clients.
type BorrowingResponse struct {
	ID int64 `json:"id"`
	BorrowingFields
	BorrowDate v.Date             `json:"borrow_date"`
	ReturnDate v.Optional[v.Date] `json:"return_date"`
	Status     BorrowingStatus    `json:"status"`
	FineAmount float64            `json:"fine_amount"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func (b *BorrowingResponse) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.ID, v.Required),
		v.Field(&b.BorrowingFields),
		v.Field(&b.BorrowDate, v.Required),
		v.Field(&b.ReturnDate),
		v.Field(&b.Status, v.Required),
		v.Field(&b.FineAmount, v.Present, v.Min(0.0)),
		v.Field(&b.CreatedAt, v.Required),
		v.Field(&b.UpdatedAt, v.Required),
	}
}

// IsOverdue reports whether the book is still out after its due date.
func (b *BorrowingResponse) IsOverdue(today v.Date) bool {
	if b.Status == StatusReturned {
		return false
	}
	if _, returned := b.ReturnDate.Get(); returned {
		return false
	}
	return b.DueDate.Before(today)
}

// NewBorrowingResponse projects a stored borrowing.
func NewBorrowingResponse(rec models.Borrowing) BorrowingResponse {
	return BorrowingResponse{
		ID: rec.ID,
		BorrowingFields: BorrowingFields{
			BookID:   rec.BookID,
			MemberID: v.Some(rec.MemberID),
			DueDate:  rec.DueDate,
		},
		BorrowDate: rec.BorrowDate,
		ReturnDate: v.FromPtr(rec.ReturnDate),
		Status:     BorrowingStatus(rec.Status),
		FineAmount: rec.FineAmount,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
	}
}

// BorrowingDetailResponse is a borrowing with its book and member.
type BorrowingDetailResponse struct {
	BorrowingResponse
	Book   BookResponse   `json:"book"`
	Member MemberResponse `json:"member"`
}

func (b *BorrowingDetailResponse) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&b.BorrowingResponse),
		v.Field(&b.Book, v.Required),
		v.Field(&b.Member, v.Required),
	}
}

// NewBorrowingDetailResponse projects a stored borrowing together with its
// book, member and the member's account, if any.
func NewBorrowingDetailResponse(rec models.Borrowing, book models.Book, member models.Member, account *models.User) BorrowingDetailResponse {
	return BorrowingDetailResponse{
		BorrowingResponse: NewBorrowingResponse(rec),
		Book:              NewBookResponse(book),
		Member:            NewMemberResponse(member, account),
	}
}

// BorrowingFilter holds the query parameters of a member's borrowing list.
type BorrowingFilter struct {
	StatusFilter v.Optional[BorrowingStatus] `json:"status_filter,omitzero"`
}

func (f *BorrowingFilter) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&f.StatusFilter, v.NotNull),
	}
}

// Matches reports whether rec passes the filter.
func (f *BorrowingFilter) Matches(rec models.Borrowing) bool {
	s, ok := f.StatusFilter.Get()
	return !ok || string(s) == rec.Status
}

// ReturnParams holds the query parameters of a return request.
type ReturnParams struct {
	FineAmount v.Optional[float64] `json:"fine_amount,omitzero"`
}

func (p *ReturnParams) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&p.FineAmount, v.NotNull, v.Min(0.0)),
	}
}

// ApplyTo marks rec returned on today, charging the fine if one was sent.
func (p *ReturnParams) ApplyTo(rec *models.Borrowing, today v.Date) {
	rec.ReturnDate = &today
	rec.Status = string(StatusReturned)
	if f, ok := p.FineAmount.Get(); ok {
		rec.FineAmount = f
	}
}
