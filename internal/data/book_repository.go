package data

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"booklib/internal/models"
)

const (
	booksTableName = "books"

	colBookID        = "id"
	colTitle         = "title"
	colAuthor        = "author"
	colISBN          = "isbn"
	colIsAvailable   = "is_available"
	actionAddBook    = "add book"
	actionGetBook    = "get book"
	actionListBooks  = "list books"
	actionSearchBook = "search books"
	actionUpdateBook = "update book"
	actionDeleteBook = "delete book"
	actionFlipAvail  = "set book availability"

	booksSchemaDDL = `
		CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			isbn TEXT NOT NULL,
			is_available INTEGER NOT NULL DEFAULT 1
		)`
)

// BookRepository handles all data access for books. It owns the books table
// exclusively, including its idempotent schema creation.
type BookRepository struct {
	repository
}

// NewBookRepository creates a BookRepository on the gateway's shared
// connection and ensures the books table exists.
func NewBookRepository(gateway *Gateway, options ...RepositoryOption) (*BookRepository, error) {
	base, err := newRepository(gateway, options...)
	if err != nil {
		return nil, err
	}

	repo := &BookRepository{repository: base}

	if schemaErr := repo.createSchema(context.Background()); schemaErr != nil {
		return nil, schemaErr
	}

	return repo, nil
}

func (r *BookRepository) createSchema(ctx context.Context) error {
	return r.createTable(ctx, booksTableName, booksSchemaDDL)
}

// Add inserts a new book and returns it with its assigned id.
func (r *BookRepository) Add(ctx context.Context, book models.Book) (models.Book, error) {
	sqlQuery, _, buildErr := r.builder().
		Insert(booksTableName).
		Rows(goqu.Record{
			colTitle:       book.Title,
			colAuthor:      book.Author,
			colISBN:        book.ISBN,
			colIsAvailable: book.IsAvailable,
		}).
		ToSQL()
	if buildErr != nil {
		return models.Book{}, buildErr
	}

	result, execErr := r.exec(ctx, actionAddBook, sqlQuery)
	if execErr != nil {
		return models.Book{}, execErr
	}

	id, idErr := result.LastInsertId()
	if idErr != nil {
		return models.Book{}, idErr
	}

	book.ID = id

	return book, nil
}

// GetByID fetches a book by its id; ErrNotFound when it does not exist.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (models.Book, error) {
	sqlQuery, _, buildErr := r.builder().
		From(booksTableName).
		Where(goqu.C(colBookID).Eq(id)).
		ToSQL()
	if buildErr != nil {
		return models.Book{}, buildErr
	}

	var book models.Book
	if getErr := r.get(ctx, &book, actionGetBook, sqlQuery); getErr != nil {
		return models.Book{}, getErr
	}

	return book, nil
}

// GetByISBN fetches a book by its ISBN. ISBNs are not unique; when several
// books share one, the most recently added wins.
func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (models.Book, error) {
	sqlQuery, _, buildErr := r.builder().
		From(booksTableName).
		Where(goqu.C(colISBN).Eq(isbn)).
		Order(goqu.I(colBookID).Desc()).
		Limit(1).
		ToSQL()
	if buildErr != nil {
		return models.Book{}, buildErr
	}

	var book models.Book
	if getErr := r.get(ctx, &book, actionGetBook, sqlQuery); getErr != nil {
		return models.Book{}, getErr
	}

	return book, nil
}

// GetAll fetches all books in insertion order.
func (r *BookRepository) GetAll(ctx context.Context) ([]models.Book, error) {
	sqlQuery, _, buildErr := r.builder().
		From(booksTableName).
		Order(goqu.I(colBookID).Asc()).
		ToSQL()
	if buildErr != nil {
		return nil, buildErr
	}

	books := make([]models.Book, 0)
	if selectErr := r.selectAll(ctx, &books, actionListBooks, sqlQuery); selectErr != nil {
		return nil, selectErr
	}

	return books, nil
}

// SearchByTitle fetches books whose title contains the search term.
func (r *BookRepository) SearchByTitle(ctx context.Context, term string) ([]models.Book, error) {
	sqlQuery, _, buildErr := r.builder().
		From(booksTableName).
		Where(goqu.C(colTitle).Like("%" + term + "%")).
		Order(goqu.I(colBookID).Asc()).
		ToSQL()
	if buildErr != nil {
		return nil, buildErr
	}

	books := make([]models.Book, 0)
	if selectErr := r.selectAll(ctx, &books, actionSearchBook, sqlQuery); selectErr != nil {
		return nil, selectErr
	}

	return books, nil
}

// Update replaces all attributes of the book identified by book.ID;
// ErrNotFound when no such book exists.
func (r *BookRepository) Update(ctx context.Context, book models.Book) error {
	sqlQuery, _, buildErr := r.builder().
		Update(booksTableName).
		Set(goqu.Record{
			colTitle:       book.Title,
			colAuthor:      book.Author,
			colISBN:        book.ISBN,
			colIsAvailable: book.IsAvailable,
		}).
		Where(goqu.C(colBookID).Eq(book.ID)).
		ToSQL()
	if buildErr != nil {
		return buildErr
	}

	return r.execExpectingOneRow(ctx, actionUpdateBook, sqlQuery)
}

// Delete removes the book with the given id; ErrNotFound when absent.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	sqlQuery, _, buildErr := r.builder().
		Delete(booksTableName).
		Where(goqu.C(colBookID).Eq(id)).
		ToSQL()
	if buildErr != nil {
		return buildErr
	}

	return r.execExpectingOneRow(ctx, actionDeleteBook, sqlQuery)
}

// SetAvailability flips the availability flag of one book as a single
// conditional statement: the update only applies when the current flag is the
// opposite of the requested one. It reports whether a row actually changed,
// so callers can detect an illegal state transition without a separate read.
func (r *BookRepository) SetAvailability(ctx context.Context, id int64, available bool) (bool, error) {
	sqlQuery, _, buildErr := r.builder().
		Update(booksTableName).
		Set(goqu.Record{colIsAvailable: available}).
		Where(
			goqu.C(colBookID).Eq(id),
			goqu.C(colIsAvailable).Eq(!available),
		).
		ToSQL()
	if buildErr != nil {
		return false, buildErr
	}

	result, execErr := r.exec(ctx, actionFlipAvail, sqlQuery)
	if execErr != nil {
		return false, execErr
	}

	rowsAffected, rowsErr := result.RowsAffected()
	if rowsErr != nil {
		return false, rowsErr
	}

	return rowsAffected == 1, nil
}

func (r *BookRepository) execExpectingOneRow(ctx context.Context, action string, sqlQuery string) error {
	result, execErr := r.exec(ctx, action, sqlQuery)
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
