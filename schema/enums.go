package schema

import v "github.com/Gobd/librarian"

// Role is the role of a user account.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Roles lists every valid [Role].
var Roles = []Role{RoleAdmin, RoleMember}

// ParseRole converts s into a Role. Anything but an exact match is a pattern
// mismatch.
func ParseRole(s string) (Role, error) {
	return v.OneOf(s, Roles...)
}

func (r Role) ValueRules() []v.Rule {
	return []v.Rule{v.In(RoleAdmin, RoleMember)}
}

func (r *Role) UnmarshalText(b []byte) error {
	p, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = p
	return nil
}

// BorrowingStatus is the lifecycle state of a borrowing.
type BorrowingStatus string

const (
	StatusBorrowed BorrowingStatus = "borrowed"
	StatusReturned BorrowingStatus = "returned"
	StatusOverdue  BorrowingStatus = "overdue"
)

// BorrowingStatuses lists every valid [BorrowingStatus].
var BorrowingStatuses = []BorrowingStatus{StatusBorrowed, StatusReturned, StatusOverdue}

// ParseBorrowingStatus converts s into a BorrowingStatus. Anything but an
// exact match is a pattern mismatch.
func ParseBorrowingStatus(s string) (BorrowingStatus, error) {
	return v.OneOf(s, BorrowingStatuses...)
}

func (s BorrowingStatus) ValueRules() []v.Rule {
	return []v.Rule{v.In(StatusBorrowed, StatusReturned, StatusOverdue)}
}

func (s *BorrowingStatus) UnmarshalText(b []byte) error {
	p, err := ParseBorrowingStatus(string(b))
	if err != nil {
		return err
	}
	*s = p
	return nil
}
