// Package schema defines the schema kinds of the library API: the request
// bodies, query parameters and responses for books, members, borrowings,
// accounts and the dashboard.
//
// Decode a raw field map by kind name:
//
//	rec, err := schema.Decode(schema.KindBookCreate, raw)
//	if vs, ok := librarian.AsViolations(err); ok {
//	    // report vs to the client
//	}
//	book := rec.(*schema.BookCreate)
package schema

import (
	"context"
	"errors"
	"fmt"
	"slices"

	v "github.com/Gobd/librarian"
)

// Kind names a schema kind.
type Kind string

const (
	KindBookCreate      Kind = "book.create"
	KindBookUpdate      Kind = "book.update"
	KindBookResponse    Kind = "book.response"
	KindMemberCreate    Kind = "member.create"
	KindMemberUpdate    Kind = "member.update"
	KindMemberResponse  Kind = "member.response"
	KindBorrowingCreate Kind = "borrowing.create"
	KindBorrowingUpdate Kind = "borrowing.update"
	KindBorrowingResp   Kind = "borrowing.response"
	KindBorrowingDetail Kind = "borrowing.detail"
	KindBorrowingFilter Kind = "borrowing.filter"
	KindBorrowingReturn Kind = "borrowing.return"
	KindSignup          Kind = "auth.signup"
	KindLogin           Kind = "auth.login"
	KindToken           Kind = "auth.token"
	KindUserResponse    Kind = "user.response"
	KindProfileUpdate   Kind = "profile.update"
	KindProfileResponse Kind = "profile.response"
	KindStats           Kind = "stats"
	KindDashboard       Kind = "dashboard"
	KindListParams      Kind = "list.params"
)

// ErrUnknownKind is returned for a kind name that is not registered.
var ErrUnknownKind = errors.New("unknown schema kind")

var registry = map[Kind]func() v.Ruler{
	KindBookCreate:      func() v.Ruler { return new(BookCreate) },
	KindBookUpdate:      func() v.Ruler { return new(BookUpdate) },
	KindBookResponse:    func() v.Ruler { return new(BookResponse) },
	KindMemberCreate:    func() v.Ruler { return new(MemberCreate) },
	KindMemberUpdate:    func() v.Ruler { return new(MemberUpdate) },
	KindMemberResponse:  func() v.Ruler { return new(MemberResponse) },
	KindBorrowingCreate: func() v.Ruler { return new(BorrowingCreate) },
	KindBorrowingUpdate: func() v.Ruler { return new(BorrowingUpdate) },
	KindBorrowingResp:   func() v.Ruler { return new(BorrowingResponse) },
	KindBorrowingDetail: func() v.Ruler { return new(BorrowingDetailResponse) },
	KindBorrowingFilter: func() v.Ruler { return new(BorrowingFilter) },
	KindBorrowingReturn: func() v.Ruler { return new(ReturnParams) },
	KindSignup:          func() v.Ruler { return new(UserSignup) },
	KindLogin:           func() v.Ruler { return new(UserLogin) },
	KindToken:           func() v.Ruler { return new(Token) },
	KindUserResponse:    func() v.Ruler { return new(UserResponse) },
	KindProfileUpdate:   func() v.Ruler { return new(ProfileUpdate) },
	KindProfileResponse: func() v.Ruler { return new(ProfileResponse) },
	KindStats:           func() v.Ruler { return new(LibraryStats) },
	KindDashboard:       func() v.Ruler { return new(DashboardData) },
	KindListParams:      func() v.Ruler { return new(ListParams) },
}

// Kinds returns every registered kind, sorted.
func Kinds() []Kind {
	out := make([]Kind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// ParseKind looks up a kind by name.
func ParseKind(s string) (Kind, error) {
	if _, ok := registry[Kind(s)]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownKind, s)
	}
	return Kind(s), nil
}

// New returns a pointer to a zero value of kind.
func New(kind Kind) (v.Ruler, error) {
	f, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return f(), nil
}

// Decode decodes and validates raw as kind. See [DecodeCtx].
func Decode(kind Kind, raw map[string]any) (v.Ruler, error) {
	return DecodeCtx(context.Background(), kind, raw)
}

// DecodeCtx decodes and validates raw as kind. It returns the typed record,
// or a [librarian.Violations] error listing every violated field.
func DecodeCtx(ctx context.Context, kind Kind, raw map[string]any) (v.Ruler, error) {
	dst, err := New(kind)
	if err != nil {
		return nil, err
	}
	if err := v.DecodeMapCtx(ctx, raw, dst); err != nil {
		return nil, err
	}
	return dst, nil
}
