package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"

	"booklib/internal/models"
	"booklib/internal/services"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

type bookView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	ISBN      string `json:"isbn"`
	Available bool   `json:"available"`
}

type personView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type loanView struct {
	ID       int64  `json:"id"`
	BookID   int64  `json:"book_id"`
	PersonID int64  `json:"person_id"`
	Book     string `json:"book"`
	Person   string `json:"person"`
	LoanDate string `json:"loan_date"`
	DueDate  string `json:"due_date"`
}

type importView struct {
	Imported int      `json:"imported"`
	Total    int      `json:"total"`
	Errors   []string `json:"errors,omitempty"`
}

func bookToView(book models.Book) bookView {
	return bookView{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		ISBN:      book.ISBN,
		Available: book.IsAvailable,
	}
}

func personToView(person models.Person) personView {
	return personView{
		ID:    person.ID,
		Name:  person.Name,
		Phone: person.PhoneNumber,
	}
}

func importReportToView(report services.ImportReport) importView {
	view := importView{
		Imported: report.Imported,
		Total:    len(report.Results),
	}

	for _, result := range report.Results {
		if result.Err != nil {
			view.Errors = append(view.Errors, result.Err.Error())
		}
	}

	return view
}

func (a *app) renderJSON(v any) error {
	encoded, err := jsonAPI.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n", encoded)

	return nil
}

func (a *app) renderBooks(books []models.Book, emptyMsg string) error {
	if a.jsonOut {
		views := make([]bookView, 0, len(books))
		for _, book := range books {
			views = append(views, bookToView(book))
		}
		return a.renderJSON(views)
	}

	if len(books) == 0 {
		fmt.Fprintln(a.out, emptyMsg)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tISBN\tSTATUS")

	for _, book := range books {
		status := "Available"
		if !book.IsAvailable {
			status = "Borrowed"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", book.ID, book.Title, book.Author, book.ISBN, status)
	}

	return w.Flush()
}

func (a *app) renderPeople(people []models.Person, emptyMsg string) error {
	if a.jsonOut {
		views := make([]personView, 0, len(people))
		for _, person := range people {
			views = append(views, personToView(person))
		}
		return a.renderJSON(views)
	}

	if len(people) == 0 {
		fmt.Fprintln(a.out, emptyMsg)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE")

	for _, person := range people {
		fmt.Fprintf(w, "%d\t%s\t%s\n", person.ID, person.Name, person.PhoneNumber)
	}

	return w.Flush()
}

func (a *app) renderLoans(ctx context.Context, loans []models.Loan, emptyMsg string) error {
	views := make([]loanView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, a.loanToView(ctx, loan))
	}

	if a.jsonOut {
		return a.renderJSON(views)
	}

	if len(views) == 0 {
		fmt.Fprintln(a.out, emptyMsg)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LOAN\tBOOK\tBORROWER\tDUE DATE")

	for _, view := range views {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", view.ID, view.Book, view.Person, view.DueDate)
	}

	return w.Flush()
}
