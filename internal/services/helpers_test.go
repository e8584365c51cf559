package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"booklib/internal/data"
	"booklib/internal/models"
	"booklib/internal/services"
)

// newLibraryRepositories wires real repositories on one in-memory database,
// so the service tests run against the actual persistence contracts.
func newLibraryRepositories(t *testing.T) (*data.BookRepository, *data.PersonRepository, *data.LoanRepository) {
	t.Helper()

	gateway, gatewayErr := data.NewGateway(data.WithPath(":memory:"))
	require.NoError(t, gatewayErr, "creating the gateway failed")
	t.Cleanup(func() { _ = gateway.Close() })

	books, booksErr := data.NewBookRepository(gateway)
	require.NoError(t, booksErr)

	people, peopleErr := data.NewPersonRepository(gateway)
	require.NoError(t, peopleErr)

	loans, loansErr := data.NewLoanRepository(gateway)
	require.NoError(t, loansErr)

	return books, people, loans
}

func fixedClock(t *testing.T, date string) func() time.Time {
	t.Helper()

	parsed, err := time.Parse(models.DateLayout, date)
	require.NoError(t, err, "invalid fixed clock date in test setup")

	return func() time.Time { return parsed }
}

func givenAvailableBook(t *testing.T, books *data.BookRepository) models.Book {
	t.Helper()

	book, err := books.Add(context.Background(), models.Book{
		Title:       "A Wizard of Earthsea",
		Author:      "Ursula K. Le Guin",
		ISBN:        uuid.NewString(),
		IsAvailable: true,
	})
	require.NoError(t, err, "adding the fixture book failed")

	return book
}

func givenPerson(t *testing.T, people *data.PersonRepository) models.Person {
	t.Helper()

	person, err := people.Add(context.Background(), models.Person{
		Name:        "Reader " + uuid.NewString(),
		PhoneNumber: "555-0101",
	})
	require.NoError(t, err, "adding the fixture person failed")

	return person
}

// spies implementing the repository contracts, for asserting that storage is
// never touched on validation failures.

type bookRepoSpy struct {
	addCalls             int
	setAvailabilityCalls int
	addResult            models.Book
	addErr               error
}

func (s *bookRepoSpy) Add(_ context.Context, book models.Book) (models.Book, error) {
	s.addCalls++
	if s.addErr != nil {
		return models.Book{}, s.addErr
	}
	if s.addResult.ID != 0 {
		return s.addResult, nil
	}
	book.ID = 1
	return book, nil
}

func (s *bookRepoSpy) GetByID(context.Context, int64) (models.Book, error) {
	return models.Book{}, models.ErrNotFound
}

func (s *bookRepoSpy) GetByISBN(context.Context, string) (models.Book, error) {
	return models.Book{}, models.ErrNotFound
}

func (s *bookRepoSpy) GetAll(context.Context) ([]models.Book, error) {
	return nil, nil
}

func (s *bookRepoSpy) SearchByTitle(context.Context, string) ([]models.Book, error) {
	return nil, nil
}

func (s *bookRepoSpy) SetAvailability(context.Context, int64, bool) (bool, error) {
	s.setAvailabilityCalls++
	return true, nil
}

type personRepoSpy struct {
	addCalls    int
	updateCalls int
	getByIDFunc func(id int64) (models.Person, error)
}

func (s *personRepoSpy) Add(_ context.Context, person models.Person) (models.Person, error) {
	s.addCalls++
	person.ID = 1
	return person, nil
}

func (s *personRepoSpy) GetByID(_ context.Context, id int64) (models.Person, error) {
	if s.getByIDFunc != nil {
		return s.getByIDFunc(id)
	}
	return models.Person{}, models.ErrNotFound
}

func (s *personRepoSpy) GetByName(context.Context, string) (models.Person, error) {
	return models.Person{}, models.ErrNotFound
}

func (s *personRepoSpy) GetAll(context.Context) ([]models.Person, error) {
	return nil, nil
}

func (s *personRepoSpy) Search(context.Context, string) ([]models.Person, error) {
	return nil, nil
}

func (s *personRepoSpy) Update(context.Context, int64, models.PersonUpdate) error {
	s.updateCalls++
	return nil
}

// failingLoanRepo delegates to a real repository but fails every Add, for
// exercising the lend compensation path.
type failingLoanRepo struct {
	services.LoanRepository
	addErr error
}

func (f *failingLoanRepo) Add(context.Context, models.Loan) (models.Loan, error) {
	return models.Loan{}, f.addErr
}
