// Package models exports the persistence records of the library API. The
// persistence layer reads and writes these; response schemas project from
// them field by field.
package models

import (
	"time"

	"github.com/Gobd/librarian"
)

// Book is a title held by the library.
type Book struct {
	ID              int64     `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	Author          string    `db:"author" json:"author"`
	ISBN            *string   `db:"isbn" json:"isbn"`
	PublishedYear   *int      `db:"published_year" json:"published_year"`
	TotalCopies     int       `db:"total_copies" json:"total_copies"`
	AvailableCopies int       `db:"available_copies" json:"available_copies"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Member is a library patron.
type Member struct {
	ID             int64          `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Email          string         `db:"email" json:"email"`
	Phone          *string        `db:"phone" json:"phone"`
	Address        *string        `db:"address" json:"address"`
	ProfilePicture *string        `db:"profile_picture" json:"profile_picture"`
	MembershipDate librarian.Date `db:"membership_date" json:"membership_date"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// Borrowing is one loan of a book to a member.
type Borrowing struct {
	ID         int64           `db:"id" json:"id"`
	BookID     int64           `db:"book_id" json:"book_id"`
	MemberID   int64           `db:"member_id" json:"member_id"`
	BorrowDate librarian.Date  `db:"borrow_date" json:"borrow_date"`
	DueDate    librarian.Date  `db:"due_date" json:"due_date"`
	ReturnDate *librarian.Date `db:"return_date" json:"return_date"`
	Status     string          `db:"status" json:"status"`
	FineAmount float64         `db:"fine_amount" json:"fine_amount"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// User is a login account, optionally linked to a member.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	HashedPassword string    `db:"hashed_password" json:"-"`
	Role           string    `db:"role" json:"role"`
	MemberID       *int64    `db:"member_id" json:"member_id"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
