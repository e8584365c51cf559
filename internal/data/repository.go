package data

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect import
	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"booklib/internal/models"
)

const (
	dialectSQLite = "sqlite3"

	logMsgSQLExecuted        = "executed sql for: "
	logMsgDBQueryFailed      = "database query execution failed"
	logMsgDBExecFailed       = "database execution failed"
	logMsgCreateSchemaFailed = "failed to create table schema"
	logAttrError             = "error"
	logAttrQuery             = "query"
	logAttrDurationMS        = "duration_ms"
	logAttrTable             = "table"
)

// schemaCreator is the one hook every repository must implement: idempotent
// creation of the table it owns, invoked once at construction.
type schemaCreator interface {
	createSchema(ctx context.Context) error
}

// RepositoryOption defines a functional option shared by all repositories.
type RepositoryOption func(*repository) error

// WithLogger sets the logger for a repository.
// Debug level receives SQL statements with execution timing; error level
// receives failures that cause an operation to fail.
func WithLogger(logger Logger) RepositoryOption {
	return func(r *repository) error {
		r.logger = logger
		return nil
	}
}

// repository carries the shared database handle, dialect builder, and logging
// helpers embedded by the entity repositories.
type repository struct {
	db     *sqlx.DB
	logger Logger
}

func newRepository(gateway *Gateway, options ...RepositoryOption) (repository, error) {
	db, connErr := gateway.Connection()
	if connErr != nil {
		return repository{}, connErr
	}

	r := repository{db: db}

	for _, option := range options {
		if err := option(&r); err != nil {
			return repository{}, err
		}
	}

	return r, nil
}

func (r repository) builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectSQLite)
}

// exec runs a single statement and returns the result, mapping driver
// constraint violations onto the domain error taxonomy.
func (r repository) exec(ctx context.Context, action string, sqlQuery string) (sql.Result, error) {
	start := time.Now()
	result, execErr := r.db.ExecContext(ctx, sqlQuery)
	r.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if execErr != nil {
		if r.logger != nil {
			r.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, mapConstraintError(execErr)
	}

	return result, nil
}

// get runs a single-row query into dest; a missing row maps to ErrNotFound.
func (r repository) get(ctx context.Context, dest any, action string, sqlQuery string) error {
	start := time.Now()
	getErr := r.db.GetContext(ctx, dest, sqlQuery)
	r.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if getErr != nil {
		if errors.Is(getErr, sql.ErrNoRows) {
			return models.ErrNotFound
		}

		if r.logger != nil {
			r.logger.Error(logMsgDBQueryFailed, logAttrError, getErr.Error(), logAttrQuery, sqlQuery)
		}

		return getErr
	}

	return nil
}

// selectAll runs a multi-row query into dest (a pointer to a slice).
func (r repository) selectAll(ctx context.Context, dest any, action string, sqlQuery string) error {
	start := time.Now()
	selectErr := r.db.SelectContext(ctx, dest, sqlQuery)
	r.logQueryWithDuration(sqlQuery, action, time.Since(start))

	if selectErr != nil {
		if r.logger != nil {
			r.logger.Error(logMsgDBQueryFailed, logAttrError, selectErr.Error(), logAttrQuery, sqlQuery)
		}

		return selectErr
	}

	return nil
}

func (r repository) createTable(ctx context.Context, table string, ddl string) error {
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		if r.logger != nil {
			r.logger.Error(logMsgCreateSchemaFailed, logAttrError, err.Error(), logAttrTable, table)
		}

		return errors.Join(models.ErrStorageUnavailable, err)
	}

	return nil
}

// logQueryWithDuration logs SQL statements with execution time at debug level
// if a logger is configured.
func (r repository) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if r.logger != nil {
		r.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// mapConstraintError translates sqlite constraint violations into the domain
// error taxonomy, keeping the driver error attached for diagnostics.
func mapConstraintError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return errors.Join(models.ErrDuplicateKey, err)
	case sqlite3.ErrConstraintForeignKey:
		return errors.Join(models.ErrReferentialViolation, err)
	default:
		return err
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
