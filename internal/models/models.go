// Package models holds the library's entities and the error taxonomy shared
// by the repositories and services.
package models

import "time"

// DateLayout is the format loan dates are persisted and rendered with.
// Loans carry date granularity only, no time of day.
const DateLayout = "2006-01-02"

// Book represents a single physical book in the library.
// IDs are assigned by the repository on insert; ISBNs are not unique.
type Book struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Author      string `db:"author"`
	ISBN        string `db:"isbn"`
	IsAvailable bool   `db:"is_available"`
}

// Person represents a borrower. Name is unique, phone number is optional.
type Person struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	PhoneNumber string `db:"phone_number"`
}

// Loan links a book to the person currently borrowing it.
// At most one loan exists per book; returning the book deletes the row.
type Loan struct {
	ID       int64     `db:"id"`
	BookID   int64     `db:"book_id"`
	PersonID int64     `db:"person_id"`
	LoanDate time.Time `db:"-"`
	DueDate  time.Time `db:"-"`
}

// PersonUpdate describes a partial update of a person.
// A nil field means "leave unchanged".
type PersonUpdate struct {
	Name        *string
	PhoneNumber *string
}

// IsEmpty reports whether the update would change nothing.
func (u PersonUpdate) IsEmpty() bool {
	return u.Name == nil && u.PhoneNumber == nil
}
