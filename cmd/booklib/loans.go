package main

import (
	"context"
	"fmt"

	"booklib/internal/models"
)

const (
	unknownBookTitle  = "Unknown Book"
	unknownPersonName = "Unknown Person"
)

func (a *app) runLoans(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.listLoans(ctx)
	}

	switch args[0] {
	case "borrow":
		if len(args) != 3 {
			return usageErrorf("booklib loans borrow BOOK_ID PERSON_ID")
		}
		return a.borrowBook(ctx, args[1], args[2])
	case "return":
		if len(args) != 2 {
			return usageErrorf("booklib loans return BOOK_ID")
		}
		return a.returnBook(ctx, args[1])
	case "list":
		return a.listLoans(ctx)
	case "by-person":
		if len(args) != 2 {
			return usageErrorf("booklib loans by-person PERSON_ID")
		}
		return a.listLoansByPerson(ctx, args[1])
	default:
		return usageErrorf("unknown loans subcommand %q", args[0])
	}
}

func (a *app) borrowBook(ctx context.Context, rawBookID string, rawPersonID string) error {
	bookID, bookIDErr := parseID("book", rawBookID)
	if bookIDErr != nil {
		return bookIDErr
	}

	personID, personIDErr := parseID("person", rawPersonID)
	if personIDErr != nil {
		return personIDErr
	}

	loan, err := a.loans.Lend(ctx, bookID, personID)
	if err != nil {
		return err
	}

	if a.jsonOut {
		return a.renderJSON(a.loanToView(ctx, loan))
	}

	fmt.Fprintf(a.out, "Lent book %d to person %d (loan %d), due %s\n",
		loan.BookID, loan.PersonID, loan.ID, loan.DueDate.Format(models.DateLayout))

	return nil
}

func (a *app) returnBook(ctx context.Context, rawBookID string) error {
	bookID, bookIDErr := parseID("book", rawBookID)
	if bookIDErr != nil {
		return bookIDErr
	}

	if err := a.loans.ReturnBook(ctx, bookID); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Returned book %d\n", bookID)

	return nil
}

func (a *app) listLoans(ctx context.Context) error {
	loans, err := a.loans.GetAllLoans(ctx)
	if err != nil {
		return err
	}

	return a.renderLoans(ctx, loans, "No books are currently on loan.")
}

func (a *app) listLoansByPerson(ctx context.Context, rawPersonID string) error {
	personID, personIDErr := parseID("person", rawPersonID)
	if personIDErr != nil {
		return personIDErr
	}

	loans, err := a.loans.GetLoansByPersonID(ctx, personID)
	if err != nil {
		return err
	}

	return a.renderLoans(ctx, loans, fmt.Sprintf("Person %d has no books on loan.", personID))
}

// loanToView resolves the display names for one loan through the book and
// person services. Dangling references render as unknown instead of failing
// the listing.
func (a *app) loanToView(ctx context.Context, loan models.Loan) loanView {
	view := loanView{
		ID:       loan.ID,
		BookID:   loan.BookID,
		PersonID: loan.PersonID,
		Book:     unknownBookTitle,
		Person:   unknownPersonName,
		LoanDate: loan.LoanDate.Format(models.DateLayout),
		DueDate:  loan.DueDate.Format(models.DateLayout),
	}

	if book, err := a.books.GetBookByID(ctx, loan.BookID); err == nil {
		view.Book = book.Title
	}

	if person, err := a.people.GetPersonByID(ctx, loan.PersonID); err == nil {
		view.Person = person.Name
	}

	return view
}
