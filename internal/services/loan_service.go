package services

import (
	"context"
	"errors"
	"time"

	"booklib/internal/models"
)

const defaultLoanPeriodDays = 14

var errInvalidLoanPeriod = errors.New("loan period must be at least one day")

// LoanService orchestrates the loan lifecycle across books, people, and
// loans. It drives the only state machine in the system, per book:
//
//	Available --Lend--> OnLoan --ReturnBook--> Available
//
// Both transitions flip the availability flag with a single conditional
// statement and pair it with the loan insert or delete, so a book is exactly
// available or on loan at any observation point and an on-loan book has
// exactly one loan record.
type LoanService struct {
	loans          LoanRepository
	books          BookRepository
	people         PersonRepository
	loanPeriodDays int
	clock          func() time.Time
}

// LoanServiceOption defines a functional option for configuring a LoanService.
type LoanServiceOption func(*LoanService) error

// WithLoanPeriod sets the number of days between loan date and due date.
func WithLoanPeriod(days int) LoanServiceOption {
	return func(s *LoanService) error {
		if days < 1 {
			return errInvalidLoanPeriod
		}

		s.loanPeriodDays = days

		return nil
	}
}

// WithClock sets the time source used for loan dates, for deterministic tests.
func WithClock(clock func() time.Time) LoanServiceOption {
	return func(s *LoanService) error {
		s.clock = clock
		return nil
	}
}

// NewLoanService creates a LoanService with optional configuration.
// The loan period defaults to 14 days, the clock to time.Now.
func NewLoanService(
	loans LoanRepository,
	books BookRepository,
	people PersonRepository,
	options ...LoanServiceOption,
) (*LoanService, error) {

	s := &LoanService{
		loans:          loans,
		books:          books,
		people:         people,
		loanPeriodDays: defaultLoanPeriodDays,
		clock:          time.Now,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Lend transitions a book from Available to OnLoan and records the loan.
//
// Preconditions: the book exists (ErrNotFound), is available
// (ErrAlreadyOnLoan), and the person exists (ErrNotFound). No write is
// issued unless all preconditions hold.
//
// The availability flip is a conditional update checked via its affected-row
// count, so a concurrent lend of the same book within this process loses
// cleanly with ErrAlreadyOnLoan instead of double-lending. If the loan
// insert fails after the flip, the flip is rolled back before the error is
// returned; both errors are reported if the rollback fails too.
func (s *LoanService) Lend(ctx context.Context, bookID int64, personID int64) (models.Loan, error) {
	book, bookErr := s.books.GetByID(ctx, bookID)
	if bookErr != nil {
		return models.Loan{}, bookErr
	}

	if !book.IsAvailable {
		return models.Loan{}, models.ErrAlreadyOnLoan
	}

	if _, personErr := s.people.GetByID(ctx, personID); personErr != nil {
		return models.Loan{}, personErr
	}

	flipped, flipErr := s.books.SetAvailability(ctx, bookID, false)
	if flipErr != nil {
		return models.Loan{}, flipErr
	}

	if !flipped {
		// Lost the race against another lend of the same book.
		return models.Loan{}, models.ErrAlreadyOnLoan
	}

	loanDate := dateOnly(s.clock())

	loan, addErr := s.loans.Add(ctx, models.Loan{
		BookID:   bookID,
		PersonID: personID,
		LoanDate: loanDate,
		DueDate:  loanDate.AddDate(0, 0, s.loanPeriodDays),
	})
	if addErr != nil {
		if _, restoreErr := s.books.SetAvailability(ctx, bookID, true); restoreErr != nil {
			return models.Loan{}, errors.Join(addErr, restoreErr)
		}

		return models.Loan{}, addErr
	}

	return loan, nil
}

// ReturnBook transitions a book from OnLoan back to Available and erases its
// loan record permanently - there is no historical loan log.
//
// Preconditions: the book exists (ErrNotFound) and is on loan
// (ErrAlreadyAvailable). The loan delete is idempotent, so a book whose loan
// record already vanished still returns cleanly.
func (s *LoanService) ReturnBook(ctx context.Context, bookID int64) error {
	book, bookErr := s.books.GetByID(ctx, bookID)
	if bookErr != nil {
		return bookErr
	}

	if book.IsAvailable {
		return models.ErrAlreadyAvailable
	}

	flipped, flipErr := s.books.SetAvailability(ctx, bookID, true)
	if flipErr != nil {
		return flipErr
	}

	if !flipped {
		return models.ErrAlreadyAvailable
	}

	return s.loans.DeleteByBookID(ctx, bookID)
}

// GetAllLoans lists all active loans.
func (s *LoanService) GetAllLoans(ctx context.Context) ([]models.Loan, error) {
	return s.loans.GetAll(ctx)
}

// GetLoansByPersonID lists the active loans of one person;
// ErrNotFound when the person does not exist.
func (s *LoanService) GetLoansByPersonID(ctx context.Context, personID int64) ([]models.Loan, error) {
	if _, personErr := s.people.GetByID(ctx, personID); personErr != nil {
		return nil, personErr
	}

	return s.loans.FindByPersonID(ctx, personID)
}

// LoanPeriodDays returns the configured loan period.
func (s *LoanService) LoanPeriodDays() int {
	return s.loanPeriodDays
}

// dateOnly truncates a timestamp to date granularity - loans carry no time
// of day.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
