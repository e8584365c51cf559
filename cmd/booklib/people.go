package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"booklib/internal/models"
)

func (a *app) runPeople(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.listPeople(ctx)
	}

	switch args[0] {
	case "add":
		return a.addPerson(ctx, args[1:])
	case "list":
		return a.listPeople(ctx)
	case "get":
		if len(args) != 2 {
			return usageErrorf("booklib people get NAME")
		}
		return a.getPerson(ctx, args[1])
	case "search":
		if len(args) != 2 {
			return usageErrorf("booklib people search TERM")
		}
		return a.searchPeople(ctx, args[1])
	case "edit":
		return a.editPerson(ctx, args[1:])
	default:
		return usageErrorf("unknown people subcommand %q", args[0])
	}
}

func (a *app) addPerson(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageErrorf("booklib people add NAME [PHONE]")
	}

	phone := ""
	if len(args) == 2 {
		phone = args[1]
	}

	person, err := a.people.AddNewPerson(ctx, args[0], phone)
	if err != nil {
		return err
	}

	if a.jsonOut {
		return a.renderJSON(personToView(person))
	}

	fmt.Fprintf(a.out, "Added person %q (id %d)\n", person.Name, person.ID)

	return nil
}

func (a *app) listPeople(ctx context.Context) error {
	people, err := a.people.GetAllPeople(ctx)
	if err != nil {
		return err
	}

	return a.renderPeople(people, "No people registered yet.")
}

func (a *app) getPerson(ctx context.Context, name string) error {
	person, err := a.people.GetPersonByName(ctx, name)
	if err != nil {
		return err
	}

	return a.renderPeople([]models.Person{person}, "")
}

func (a *app) searchPeople(ctx context.Context, term string) error {
	people, err := a.people.SearchPeople(ctx, term)
	if err != nil {
		return err
	}

	return a.renderPeople(people, fmt.Sprintf("No people found matching %q.", term))
}

// editPerson updates name and/or phone number of one person. Only flags that
// were actually supplied are included in the update.
func (a *app) editPerson(ctx context.Context, args []string) error {
	flags := flag.NewFlagSet("people edit", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	newName := flags.String("name", "", "new name")
	newPhone := flags.String("phone", "", "new phone number")

	if err := flags.Parse(args); err != nil || flags.NArg() != 1 {
		return usageErrorf("booklib people edit [-name NAME] [-phone PHONE] ID")
	}

	id, idErr := parseID("person", flags.Arg(0))
	if idErr != nil {
		return idErr
	}

	var update models.PersonUpdate
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			update.Name = newName
		case "phone":
			update.PhoneNumber = newPhone
		}
	})

	if err := a.people.UpdatePerson(ctx, id, update); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Updated person %d\n", id)

	return nil
}
