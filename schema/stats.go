package schema

import v "github.com/Gobd/librarian"

// LibraryStats are the counters shown on the dashboard. They are aggregated
// by the persistence layer.
type LibraryStats struct {
	TotalBooks       int `json:"total_books"`
	TotalMembers     int `json:"total_members"`
	TotalBorrowings  int `json:"total_borrowings"`
	ActiveBorrowings int `json:"active_borrowings"`
	OverdueBooks     int `json:"overdue_books"`
	AvailableBooks   int `json:"available_books"`
}

func (s *LibraryStats) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&s.TotalBooks, v.Present, v.Min(0)),
		v.Field(&s.TotalMembers, v.Present, v.Min(0)),
		v.Field(&s.TotalBorrowings, v.Present, v.Min(0)),
		v.Field(&s.ActiveBorrowings, v.Present, v.Min(0), v.AtMost(&s.TotalBorrowings, "total_borrowings")),
		v.Field(&s.OverdueBooks, v.Present, v.Min(0), v.AtMost(&s.ActiveBorrowings, "active_borrowings")),
		v.Field(&s.AvailableBooks, v.Present, v.Min(0)),
	}
}

// DashboardData is the dashboard payload: counters and the newest books.
type DashboardData struct {
	Stats    LibraryStats   `json:"stats"`
	NewBooks []BookResponse `json:"new_books"`
}

func (d *DashboardData) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&d.Stats, v.Required),
		v.Field(&d.NewBooks, v.Present),
	}
}

// ListParams are the pagination query parameters of list endpoints.
type ListParams struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

func (p *ListParams) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Field(&p.Skip, v.Min(0), v.Default(0)),
		v.Field(&p.Limit, v.Min(1), v.Max(100), v.Default(10)),
	}
}
