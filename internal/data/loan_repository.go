package data

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"booklib/internal/models"
)

const (
	loansTableName = "loans"

	colLoanID         = "id"
	colLoanBookID     = "book_id"
	colLoanPersonID   = "person_id"
	colLoanDate       = "loan_date"
	colDueDate        = "due_date"
	actionAddLoan     = "add loan"
	actionGetLoan     = "get loan"
	actionListLoans   = "list loans"
	actionFindLoans   = "find loans"
	actionDeleteLoan  = "delete loan"
	actionDeleteByBID = "delete loan by book id"

	loansSchemaDDL = `
		CREATE TABLE IF NOT EXISTS loans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			book_id INTEGER NOT NULL UNIQUE,
			person_id INTEGER NOT NULL,
			loan_date TEXT NOT NULL,
			due_date TEXT NOT NULL,
			FOREIGN KEY (book_id) REFERENCES books(id),
			FOREIGN KEY (person_id) REFERENCES people(id)
		)`
)

// loanRow mirrors the loans table: dates are persisted as YYYY-MM-DD text,
// exactly as rendered to the user.
type loanRow struct {
	ID       int64  `db:"id"`
	BookID   int64  `db:"book_id"`
	PersonID int64  `db:"person_id"`
	LoanDate string `db:"loan_date"`
	DueDate  string `db:"due_date"`
}

func (row loanRow) toLoan() (models.Loan, error) {
	loanDate, loanDateErr := time.Parse(models.DateLayout, row.LoanDate)
	if loanDateErr != nil {
		return models.Loan{}, loanDateErr
	}

	dueDate, dueDateErr := time.Parse(models.DateLayout, row.DueDate)
	if dueDateErr != nil {
		return models.Loan{}, dueDateErr
	}

	return models.Loan{
		ID:       row.ID,
		BookID:   row.BookID,
		PersonID: row.PersonID,
		LoanDate: loanDate,
		DueDate:  dueDate,
	}, nil
}

// LoanRepository handles all data access for loans. It owns the loans table
// exclusively, including its idempotent schema creation. The unique
// constraint on book_id enforces at most one active loan per book; the
// foreign keys guard against dangling book or person references.
type LoanRepository struct {
	repository
}

// NewLoanRepository creates a LoanRepository on the gateway's shared
// connection and ensures the loans table exists.
func NewLoanRepository(gateway *Gateway, options ...RepositoryOption) (*LoanRepository, error) {
	base, err := newRepository(gateway, options...)
	if err != nil {
		return nil, err
	}

	repo := &LoanRepository{repository: base}

	if schemaErr := repo.createSchema(context.Background()); schemaErr != nil {
		return nil, schemaErr
	}

	return repo, nil
}

func (r *LoanRepository) createSchema(ctx context.Context) error {
	return r.createTable(ctx, loansTableName, loansSchemaDDL)
}

// Add inserts a new loan record and returns it with its assigned id.
// A missing book or person is reported as ErrReferentialViolation; a book
// that already has an active loan as ErrDuplicateKey.
func (r *LoanRepository) Add(ctx context.Context, loan models.Loan) (models.Loan, error) {
	sqlQuery, _, buildErr := r.builder().
		Insert(loansTableName).
		Rows(goqu.Record{
			colLoanBookID:   loan.BookID,
			colLoanPersonID: loan.PersonID,
			colLoanDate:     loan.LoanDate.Format(models.DateLayout),
			colDueDate:      loan.DueDate.Format(models.DateLayout),
		}).
		ToSQL()
	if buildErr != nil {
		return models.Loan{}, buildErr
	}

	result, execErr := r.exec(ctx, actionAddLoan, sqlQuery)
	if execErr != nil {
		return models.Loan{}, execErr
	}

	id, idErr := result.LastInsertId()
	if idErr != nil {
		return models.Loan{}, idErr
	}

	loan.ID = id

	return loan, nil
}

// GetByID fetches a loan by its id; ErrNotFound when absent.
func (r *LoanRepository) GetByID(ctx context.Context, id int64) (models.Loan, error) {
	sqlQuery, _, buildErr := r.builder().
		From(loansTableName).
		Where(goqu.C(colLoanID).Eq(id)).
		ToSQL()
	if buildErr != nil {
		return models.Loan{}, buildErr
	}

	var row loanRow
	if getErr := r.get(ctx, &row, actionGetLoan, sqlQuery); getErr != nil {
		return models.Loan{}, getErr
	}

	return row.toLoan()
}

// GetAll fetches all active loans in insertion order.
func (r *LoanRepository) GetAll(ctx context.Context) ([]models.Loan, error) {
	sqlQuery, _, buildErr := r.builder().
		From(loansTableName).
		Order(goqu.I(colLoanID).Asc()).
		ToSQL()
	if buildErr != nil {
		return nil, buildErr
	}

	return r.selectLoans(ctx, actionListLoans, sqlQuery)
}

// FindByBookID fetches the active loan for one book - there is at most one.
// ErrNotFound when the book has no active loan.
func (r *LoanRepository) FindByBookID(ctx context.Context, bookID int64) (models.Loan, error) {
	sqlQuery, _, buildErr := r.builder().
		From(loansTableName).
		Where(goqu.C(colLoanBookID).Eq(bookID)).
		ToSQL()
	if buildErr != nil {
		return models.Loan{}, buildErr
	}

	var row loanRow
	if getErr := r.get(ctx, &row, actionFindLoans, sqlQuery); getErr != nil {
		return models.Loan{}, getErr
	}

	return row.toLoan()
}

// FindByPersonID fetches all active loans of one person.
func (r *LoanRepository) FindByPersonID(ctx context.Context, personID int64) ([]models.Loan, error) {
	sqlQuery, _, buildErr := r.builder().
		From(loansTableName).
		Where(goqu.C(colLoanPersonID).Eq(personID)).
		Order(goqu.I(colLoanID).Asc()).
		ToSQL()
	if buildErr != nil {
		return nil, buildErr
	}

	return r.selectLoans(ctx, actionFindLoans, sqlQuery)
}

// Delete removes the loan with the given id; ErrNotFound when absent.
func (r *LoanRepository) Delete(ctx context.Context, id int64) error {
	sqlQuery, _, buildErr := r.builder().
		Delete(loansTableName).
		Where(goqu.C(colLoanID).Eq(id)).
		ToSQL()
	if buildErr != nil {
		return buildErr
	}

	result, execErr := r.exec(ctx, actionDeleteLoan, sqlQuery)
	if execErr != nil {
		return execErr
	}

	rowsAffected, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		return rowsErr
	}

	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// DeleteByBookID removes the active loan for one book. Idempotent: deleting
// when no loan exists is a no-op.
func (r *LoanRepository) DeleteByBookID(ctx context.Context, bookID int64) error {
	sqlQuery, _, buildErr := r.builder().
		Delete(loansTableName).
		Where(goqu.C(colLoanBookID).Eq(bookID)).
		ToSQL()
	if buildErr != nil {
		return buildErr
	}

	_, execErr := r.exec(ctx, actionDeleteByBID, sqlQuery)

	return execErr
}

func (r *LoanRepository) selectLoans(ctx context.Context, action string, sqlQuery string) ([]models.Loan, error) {
	rows := make([]loanRow, 0)
	if selectErr := r.selectAll(ctx, &rows, action, sqlQuery); selectErr != nil {
		return nil, selectErr
	}

	loans := make([]models.Loan, 0, len(rows))
	for _, row := range rows {
		loan, convErr := row.toLoan()
		if convErr != nil {
			return nil, convErr
		}

		loans = append(loans, loan)
	}

	return loans, nil
}
