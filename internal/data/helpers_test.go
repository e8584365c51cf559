package data_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"booklib/internal/data"
	"booklib/internal/models"
)

func newTestGateway(t *testing.T) *data.Gateway {
	t.Helper()

	gateway, err := data.NewGateway(data.WithPath(":memory:"))
	require.NoError(t, err, "creating the gateway failed")

	t.Cleanup(func() {
		_ = gateway.Close()
	})

	return gateway
}

// newTestRepositories creates all three repositories on one in-memory
// database, so the loans table has its foreign key targets in place.
func newTestRepositories(t *testing.T) (*data.BookRepository, *data.PersonRepository, *data.LoanRepository) {
	t.Helper()

	gateway := newTestGateway(t)

	books, booksErr := data.NewBookRepository(gateway)
	require.NoError(t, booksErr, "creating the book repository failed")

	people, peopleErr := data.NewPersonRepository(gateway)
	require.NoError(t, peopleErr, "creating the person repository failed")

	loans, loansErr := data.NewLoanRepository(gateway)
	require.NoError(t, loansErr, "creating the loan repository failed")

	return books, people, loans
}

func givenUniqueISBN(t *testing.T) string {
	t.Helper()
	return uuid.NewString()
}

func givenUniqueName(t *testing.T) string {
	t.Helper()
	return "Reader " + uuid.NewString()
}

func givenBookWasAdded(t *testing.T, repo *data.BookRepository) models.Book {
	t.Helper()

	book, err := repo.Add(context.Background(), models.Book{
		Title:       "The Left Hand of Darkness",
		Author:      "Ursula K. Le Guin",
		ISBN:        givenUniqueISBN(t),
		IsAvailable: true,
	})
	require.NoError(t, err, "adding the fixture book failed")

	return book
}

func givenPersonWasAdded(t *testing.T, repo *data.PersonRepository) models.Person {
	t.Helper()

	person, err := repo.Add(context.Background(), models.Person{
		Name:        givenUniqueName(t),
		PhoneNumber: "555-0101",
	})
	require.NoError(t, err, "adding the fixture person failed")

	return person
}

func givenLoanWasAdded(
	t *testing.T,
	repo *data.LoanRepository,
	bookID int64,
	personID int64,
) models.Loan {

	t.Helper()

	loanDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	loan, err := repo.Add(context.Background(), models.Loan{
		BookID:   bookID,
		PersonID: personID,
		LoanDate: loanDate,
		DueDate:  loanDate.AddDate(0, 0, 14),
	})
	require.NoError(t, err, "adding the fixture loan failed")

	return loan
}
