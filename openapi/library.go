package openapi

import (
	"github.com/Gobd/librarian/errs"
	"github.com/Gobd/librarian/schema"
	"github.com/getkin/kin-openapi/openapi3"
)

// Version is the version of the library API the document describes.
const Version = "1.0.0"

func responses(ok string, body any, failures ...string) map[string]Response {
	rs := map[string]Response{
		ok: {Desc: "OK", Bodies: []any{body}},
	}
	for _, code := range failures {
		rs[code] = Response{Desc: failureDesc[code], Bodies: []any{errs.HTTPError{}}}
	}
	return rs
}

var failureDesc = map[string]string{
	"400": "Malformed request body",
	"401": "Not authenticated",
	"403": "Not allowed for the caller's role",
	"404": "Not found",
	"422": "Validation failed",
}

func withID(name string, ps ...*openapi3.ParameterRef) openapi3.Parameters {
	return append(openapi3.Parameters{PathParam(name, "identifier")}, ps...)
}

// Document returns the OpenAPI document of the library API. Every request
// and response schema is generated from the schema kinds and their rules.
func Document() *openapi3.T {
	doc := DocBase("librarian", "Library management API: books, members, borrowings and accounts.", Version)

	list := QueryParamsMust(schema.ListParams{})

	// Books
	Get(doc, "/books", "listBooks", Endpoint{
		Summary:    "List books",
		Parameters: list,
		Responses:  responses("200", []schema.BookResponse{}, "401", "422"),
	})
	Post(doc, "/books", "createBook", Endpoint{
		Summary:   "Add a book",
		Request:   schema.BookCreate{},
		Responses: responses("201", schema.BookResponse{}, "400", "401", "403", "422"),
	})
	Get(doc, "/books/{id}", "getBook", Endpoint{
		Parameters: withID("id"),
		Responses:  responses("200", schema.BookResponse{}, "401", "404"),
	})
	Put(doc, "/books/{id}", "updateBook", Endpoint{
		Summary:     "Update a book",
		Description: "Only the fields sent are changed. available_copies is checked against the stored total_copies.",
		Parameters:  withID("id"),
		Request:     schema.BookUpdate{},
		Responses:   responses("200", schema.BookResponse{}, "400", "401", "403", "404", "422"),
	})
	Delete(doc, "/books/{id}", "deleteBook", Endpoint{
		Parameters: withID("id"),
		Responses:  map[string]Response{"204": {Desc: "Deleted"}},
	})

	// Members
	Get(doc, "/members", "listMembers", Endpoint{
		Summary:    "List members",
		Parameters: list,
		Responses:  responses("200", []schema.MemberResponse{}, "401", "403", "422"),
	})
	Post(doc, "/members", "createMember", Endpoint{
		Summary:   "Add a member, optionally with a login account",
		Request:   schema.MemberCreate{},
		Responses: responses("201", schema.MemberResponse{}, "400", "401", "403", "422"),
	})
	Get(doc, "/members/{id}", "getMember", Endpoint{
		Parameters: withID("id"),
		Responses:  responses("200", schema.MemberResponse{}, "401", "404"),
	})
	Put(doc, "/members/{id}", "updateMember", Endpoint{
		Parameters: withID("id"),
		Request:    schema.MemberUpdate{},
		Responses:  responses("200", schema.MemberResponse{}, "400", "401", "403", "404", "422"),
	})
	Delete(doc, "/members/{id}", "deleteMember", Endpoint{
		Parameters: withID("id"),
		Responses:  map[string]Response{"204": {Desc: "Deleted"}},
	})
	Get(doc, "/members/{id}/user", "getMemberUser", Endpoint{
		Summary:    "Login account linked to a member",
		Parameters: withID("id"),
		Responses:  responses("200", schema.UserResponse{}, "401", "403", "404"),
	})
	Get(doc, "/members/{id}/borrowings", "listMemberBorrowings", Endpoint{
		Parameters: withID("id", QueryParamsMust(schema.BorrowingFilter{})...),
		Responses:  responses("200", []schema.BorrowingDetailResponse{}, "401", "403", "404", "422"),
	})

	// Borrowings
	Get(doc, "/borrowings", "listBorrowings", Endpoint{
		Parameters: append(QueryParamsMust(schema.ListParams{}), QueryParamsMust(schema.BorrowingFilter{})...),
		Responses:  responses("200", []schema.BorrowingDetailResponse{}, "401", "422"),
	})
	Post(doc, "/borrowings", "createBorrowing", Endpoint{
		Summary:   "Borrow a book",
		Request:   schema.BorrowingCreate{},
		Responses: responses("201", schema.BorrowingResponse{}, "400", "401", "404", "422"),
	})
	Get(doc, "/borrowings/{id}", "getBorrowing", Endpoint{
		Parameters: withID("id"),
		Responses:  responses("200", schema.BorrowingDetailResponse{}, "401", "404"),
	})
	Put(doc, "/borrowings/{id}", "updateBorrowing", Endpoint{
		Parameters: withID("id"),
		Request:    schema.BorrowingUpdate{},
		Responses:  responses("200", schema.BorrowingResponse{}, "400", "401", "403", "404", "422"),
	})
	Put(doc, "/borrowings/{id}/return", "returnBorrowing", Endpoint{
		Summary:    "Return a borrowed book",
		Parameters: withID("id", QueryParamsMust(schema.ReturnParams{})...),
		Responses:  responses("200", schema.BorrowingResponse{}, "401", "404", "422"),
	})
	Delete(doc, "/borrowings/{id}", "deleteBorrowing", Endpoint{
		Parameters: withID("id"),
		Responses:  map[string]Response{"204": {Desc: "Deleted"}},
	})

	// Accounts
	Post(doc, "/auth/signup", "signup", Endpoint{
		Request:   schema.UserSignup{},
		Responses: responses("201", schema.Token{}, "400", "422"),
	})
	Post(doc, "/auth/login", "login", Endpoint{
		Request:   schema.UserLogin{},
		Responses: responses("200", schema.Token{}, "400", "401", "422"),
	})
	Get(doc, "/auth/me", "currentUser", Endpoint{
		Responses: responses("200", schema.UserResponse{}, "401"),
	})
	Get(doc, "/profile", "getProfile", Endpoint{
		Responses: responses("200", schema.ProfileResponse{}, "401"),
	})
	Put(doc, "/profile", "updateProfile", Endpoint{
		Request:   schema.ProfileUpdate{},
		Responses: responses("200", schema.ProfileResponse{}, "400", "401", "422"),
	})

	// Dashboard
	Get(doc, "/stats", "getStats", Endpoint{
		Responses: responses("200", schema.LibraryStats{}, "401"),
	})
	Get(doc, "/dashboard", "getDashboard", Endpoint{
		Responses: responses("200", schema.DashboardData{}, "401"),
	})

	return doc
}
