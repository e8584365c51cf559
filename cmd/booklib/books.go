package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"booklib/internal/models"
	"booklib/internal/services"
)

func (a *app) runBooks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.listBooks(ctx)
	}

	switch args[0] {
	case "add":
		if len(args) != 4 {
			return usageErrorf("booklib books add TITLE AUTHOR ISBN")
		}
		return a.addBook(ctx, args[1], args[2], args[3])
	case "list":
		return a.listBooks(ctx)
	case "search":
		if len(args) != 2 {
			return usageErrorf("booklib books search TERM")
		}
		return a.searchBooks(ctx, args[1])
	case "get":
		return a.getBook(ctx, args[1:])
	case "import":
		if len(args) != 2 {
			return usageErrorf("booklib books import FILE.csv")
		}
		return a.importBooks(ctx, args[1])
	default:
		return usageErrorf("unknown books subcommand %q", args[0])
	}
}

func (a *app) addBook(ctx context.Context, title string, author string, isbn string) error {
	book, err := a.books.AddNewBook(ctx, title, author, isbn)
	if err != nil {
		return err
	}

	if a.jsonOut {
		return a.renderJSON(bookToView(book))
	}

	fmt.Fprintf(a.out, "Added book %q by %s (id %d)\n", book.Title, book.Author, book.ID)

	return nil
}

func (a *app) listBooks(ctx context.Context) error {
	books, err := a.books.GetAllBooks(ctx)
	if err != nil {
		return err
	}

	return a.renderBooks(books, "The library is empty. Add some books first.")
}

func (a *app) searchBooks(ctx context.Context, term string) error {
	books, err := a.books.SearchBooks(ctx, term)
	if err != nil {
		return err
	}

	return a.renderBooks(books, fmt.Sprintf("No books found matching %q.", term))
}

func (a *app) getBook(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("books get", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	id := flags.Int64("id", 0, "book id")
	isbn := flags.String("isbn", "", "book isbn")

	if err := flags.Parse(args); err != nil || (*id == 0) == (*isbn == "") {
		return usageErrorf("booklib books get -id ID | -isbn ISBN")
	}

	var book models.Book
	var err error

	if *isbn != "" {
		book, err = a.books.GetBookByISBN(ctx, *isbn)
	} else {
		book, err = a.books.GetBookByID(ctx, *id)
	}
	if err != nil {
		return err
	}

	return a.renderBooks([]models.Book{book}, "")
}

// importBooks reads title,author,isbn rows from a CSV file and imports them
// in bulk, reporting the outcome per row. A header line is skipped.
func (a *app) importBooks(ctx context.Context, path string) error {
	rows, readErr := readBookRows(path)
	if readErr != nil {
		return readErr
	}

	report := a.books.ImportBooks(ctx, rows)

	if a.jsonOut {
		return a.renderJSON(importReportToView(report))
	}

	for _, result := range report.Results {
		if result.Err != nil {
			fmt.Fprintf(a.out, "FAILED  %s: %v\n", result.Row.Title, result.Err)
			continue
		}

		fmt.Fprintf(a.out, "ok      %s (id %d)\n", result.Book.Title, result.Book.ID)
	}

	fmt.Fprintf(a.out, "Imported %d of %d books.\n", report.Imported, len(report.Results))

	return nil
}

func readBookRows(path string) ([]services.BookImport, error) {
	file, openErr := os.Open(path)
	if openErr != nil {
		return nil, openErr
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	rows := make([]services.BookImport, 0)

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, readErr
		}

		if len(rows) == 0 && strings.EqualFold(record[0], "title") {
			continue // header line
		}

		rows = append(rows, services.BookImport{
			Title:  record[0],
			Author: record[1],
			ISBN:   record[2],
		})
	}

	return rows, nil
}
