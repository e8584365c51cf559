// The booklib command manages a personal library: books, borrowers, and the
// loans between them, stored in a local SQLite database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"booklib/internal/config"
	"booklib/internal/data"
	"booklib/internal/services"
)

const usageText = `Usage: booklib [flags] <command> [arguments]

Commands:
  books    add | list | search | get | import
  people   add | list | get | search | edit
  loans    borrow | return | list | by-person

Run 'booklib <command>' without arguments for a listing command,
e.g. 'booklib books' lists all books.

Flags:
`

// app bundles the wired services with the output configuration shared by all
// subcommands.
type app struct {
	books   *services.BookService
	people  *services.PersonService
	loans   *services.LoanService
	out     io.Writer
	jsonOut bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	flags := flag.NewFlagSet("booklib", flag.ContinueOnError)
	flags.SetOutput(stderr)
	dbPath := flags.String("db", "", "path to the database file (default: per-user config directory)")
	jsonOut := flags.Bool("json", false, "render output as JSON")
	verbose := flags.Bool("v", false, "enable debug logging")
	flags.Usage = func() {
		fmt.Fprint(stderr, usageText)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return 2
	}

	command := flags.Args()
	if len(command) == 0 {
		flags.Usage()
		return 2
	}

	cfg := config.Load()
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	a, cleanup, wireErr := wire(cfg, logger, stdout, *jsonOut)
	if wireErr != nil {
		fmt.Fprintf(stderr, "Error: %v\n", wireErr)
		return 1
	}
	defer cleanup()

	cmdErr := a.dispatch(context.Background(), command)
	if cmdErr != nil {
		if errors.Is(cmdErr, errUsage) {
			fmt.Fprintf(stderr, "%v\n", cmdErr)
			return 2
		}

		fmt.Fprintf(stderr, "Error: %v\n", cmdErr)
		return 1
	}

	return 0
}

// wire constructs the gateway, repositories and services in dependency order.
// The returned cleanup closes the shared database handle.
func wire(cfg config.Config, logger *slog.Logger, stdout io.Writer, jsonOut bool) (*app, func(), error) {
	gateway, gwErr := data.NewGateway(
		data.WithPath(cfg.DBPath),
		data.WithGatewayLogger(logger),
	)
	if gwErr != nil {
		return nil, nil, gwErr
	}

	cleanup := func() {
		if closeErr := gateway.Close(); closeErr != nil {
			logger.Warn("failed to close database connection", "error", closeErr.Error())
		}
	}

	bookRepo, bookRepoErr := data.NewBookRepository(gateway, data.WithLogger(logger))
	if bookRepoErr != nil {
		cleanup()
		return nil, nil, bookRepoErr
	}

	personRepo, personRepoErr := data.NewPersonRepository(gateway, data.WithLogger(logger))
	if personRepoErr != nil {
		cleanup()
		return nil, nil, personRepoErr
	}

	loanRepo, loanRepoErr := data.NewLoanRepository(gateway, data.WithLogger(logger))
	if loanRepoErr != nil {
		cleanup()
		return nil, nil, loanRepoErr
	}

	loanService, loanSvcErr := services.NewLoanService(
		loanRepo, bookRepo, personRepo,
		services.WithLoanPeriod(cfg.LoanPeriodDays),
	)
	if loanSvcErr != nil {
		cleanup()
		return nil, nil, loanSvcErr
	}

	a := &app{
		books:   services.NewBookService(bookRepo),
		people:  services.NewPersonService(personRepo),
		loans:   loanService,
		out:     stdout,
		jsonOut: jsonOut,
	}

	return a, cleanup, nil
}

func (a *app) dispatch(ctx context.Context, command []string) error {
	switch command[0] {
	case "books":
		return a.runBooks(ctx, command[1:])
	case "people":
		return a.runPeople(ctx, command[1:])
	case "loans":
		return a.runLoans(ctx, command[1:])
	default:
		return usageErrorf("unknown command %q, expected books, people or loans", command[0])
	}
}

var errUsage = errors.New("usage error")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func parseID(kind string, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, usageErrorf("%s id must be an integer, got %q", kind, raw)
	}

	return id, nil
}
