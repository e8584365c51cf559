package services

import (
	"context"
	"errors"
	"fmt"

	"booklib/internal/models"
)

var (
	errEmptyBookFields = errors.New("title, author and isbn must not be empty")
	errEmptySearchTerm = errors.New("search term must not be empty")
	errEmptyISBN       = errors.New("isbn must not be empty")
)

// BookService validates input for single-book operations and delegates to
// the book repository.
type BookService struct {
	books BookRepository
}

// NewBookService creates a BookService backed by the given repository.
func NewBookService(books BookRepository) *BookService {
	return &BookService{books: books}
}

// AddNewBook validates the fields and stores a new, available book.
// Any empty field fails with ErrInvalidInput before storage is touched.
func (s *BookService) AddNewBook(ctx context.Context, title string, author string, isbn string) (models.Book, error) {
	if title == "" || author == "" || isbn == "" {
		return models.Book{}, errors.Join(models.ErrInvalidInput, errEmptyBookFields)
	}

	return s.books.Add(ctx, models.Book{
		Title:       title,
		Author:      author,
		ISBN:        isbn,
		IsAvailable: true,
	})
}

// GetBookByID fetches one book; ErrNotFound when absent.
func (s *BookService) GetBookByID(ctx context.Context, id int64) (models.Book, error) {
	return s.books.GetByID(ctx, id)
}

// GetBookByISBN fetches one book by ISBN; ErrNotFound when absent.
func (s *BookService) GetBookByISBN(ctx context.Context, isbn string) (models.Book, error) {
	if isbn == "" {
		return models.Book{}, errors.Join(models.ErrInvalidInput, errEmptyISBN)
	}

	return s.books.GetByISBN(ctx, isbn)
}

// GetAllBooks lists every book in the library.
func (s *BookService) GetAllBooks(ctx context.Context) ([]models.Book, error) {
	return s.books.GetAll(ctx)
}

// SearchBooks finds books whose title contains the term.
func (s *BookService) SearchBooks(ctx context.Context, term string) ([]models.Book, error) {
	if term == "" {
		return nil, errors.Join(models.ErrInvalidInput, errEmptySearchTerm)
	}

	return s.books.SearchByTitle(ctx, term)
}

// BookImport is one row of a bulk import.
type BookImport struct {
	Title  string
	Author string
	ISBN   string
}

// ImportResult reports the outcome for one imported row.
type ImportResult struct {
	Row  BookImport
	Book models.Book
	Err  error
}

// ImportReport summarizes a bulk import: how many rows made it in, and the
// per-row outcomes in input order.
type ImportReport struct {
	Imported int
	Results  []ImportResult
}

// ImportBooks adds the given rows one by one. A failing row is recorded in
// the report and never aborts the remaining rows.
func (s *BookService) ImportBooks(ctx context.Context, rows []BookImport) ImportReport {
	report := ImportReport{Results: make([]ImportResult, 0, len(rows))}

	for i, row := range rows {
		book, err := s.AddNewBook(ctx, row.Title, row.Author, row.ISBN)
		if err != nil {
			err = fmt.Errorf("row %d: %w", i+1, err)
		} else {
			report.Imported++
		}

		report.Results = append(report.Results, ImportResult{Row: row, Book: book, Err: err})
	}

	return report
}
