// Package services implements the orchestration layer between the CLI and the
// repositories: input validation for single-entity operations and the
// cross-entity loan lifecycle. Services own no persisted state; they depend
// on the repositories by reference.
package services

import (
	"context"

	"booklib/internal/models"
)

// BookRepository is the persistence contract the services need for books.
// Implemented by data.BookRepository.
type BookRepository interface {
	Add(ctx context.Context, book models.Book) (models.Book, error)
	GetByID(ctx context.Context, id int64) (models.Book, error)
	GetByISBN(ctx context.Context, isbn string) (models.Book, error)
	GetAll(ctx context.Context) ([]models.Book, error)
	SearchByTitle(ctx context.Context, term string) ([]models.Book, error)
	SetAvailability(ctx context.Context, id int64, available bool) (bool, error)
}

// PersonRepository is the persistence contract the services need for people.
// Implemented by data.PersonRepository.
type PersonRepository interface {
	Add(ctx context.Context, person models.Person) (models.Person, error)
	GetByID(ctx context.Context, id int64) (models.Person, error)
	GetByName(ctx context.Context, name string) (models.Person, error)
	GetAll(ctx context.Context) ([]models.Person, error)
	Search(ctx context.Context, term string) ([]models.Person, error)
	Update(ctx context.Context, id int64, update models.PersonUpdate) error
}

// LoanRepository is the persistence contract the loan service needs.
// Implemented by data.LoanRepository.
type LoanRepository interface {
	Add(ctx context.Context, loan models.Loan) (models.Loan, error)
	GetAll(ctx context.Context) ([]models.Loan, error)
	FindByBookID(ctx context.Context, bookID int64) (models.Loan, error)
	FindByPersonID(ctx context.Context, personID int64) ([]models.Loan, error)
	DeleteByBookID(ctx context.Context, bookID int64) error
}
