package data

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"booklib/internal/config"
	"booklib/internal/models"
)

const (
	driverName   = "sqlite3"
	memoryPath   = ":memory:"
	memoryDSN    = "file::memory:?_foreign_keys=on"
	dsnSuffix    = "?_foreign_keys=on"
	appDirPerm   = 0o750
	logMsgOpened = "database connection opened"
	logMsgClosed = "database connection closed"
	logAttrPath  = "path"
)

var errEmptyPathSupplied = errors.New("empty database path supplied")

// Logger interface for SQL query logging, operational messages, warnings,
// and error reporting. Satisfied by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Gateway owns the single shared database handle for the process lifetime.
// The connection is opened lazily on first use; Close releases it and permits
// reinitialization, so a Connection call after Close yields a fresh handle.
type Gateway struct {
	path   string
	logger Logger
	db     *sqlx.DB
}

// GatewayOption defines a functional option for configuring a Gateway.
type GatewayOption func(*Gateway) error

// WithPath sets an explicit database location. The special path ":memory:"
// opens an in-memory database, used by the tests.
func WithPath(path string) GatewayOption {
	return func(g *Gateway) error {
		if path == "" {
			return errEmptyPathSupplied
		}

		g.path = path

		return nil
	}
}

// WithGatewayLogger sets the logger for the Gateway.
func WithGatewayLogger(logger Logger) GatewayOption {
	return func(g *Gateway) error {
		g.logger = logger
		return nil
	}
}

// NewGateway creates a Gateway with optional configuration. Without WithPath
// the database lives at the per-user default location; the connection is not
// opened until Connection is called.
func NewGateway(options ...GatewayOption) (*Gateway, error) {
	g := &Gateway{
		path: config.DefaultDBPath(),
	}

	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Connection returns the shared database handle, opening it on first use.
// The containing directory is created if it does not exist yet. Any failure
// to create, open or ping the database is reported as ErrStorageUnavailable.
func (g *Gateway) Connection() (*sqlx.DB, error) {
	if g.db != nil {
		return g.db, nil
	}

	if err := g.ensureDirectoryExists(); err != nil {
		return nil, errors.Join(models.ErrStorageUnavailable, err)
	}

	db, openErr := sqlx.Open(driverName, g.dsn())
	if openErr != nil {
		return nil, errors.Join(models.ErrStorageUnavailable, openErr)
	}

	// One logical connection: the store is not designed for concurrent
	// writers, and an in-memory database must not be split across pooled
	// connections.
	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(context.Background()); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(models.ErrStorageUnavailable, pingErr)
	}

	g.db = db

	if g.logger != nil {
		g.logger.Debug(logMsgOpened, logAttrPath, g.path)
	}

	return g.db, nil
}

// Close releases the database handle. Closing an already closed Gateway is a
// no-op.
func (g *Gateway) Close() error {
	if g.db == nil {
		return nil
	}

	closeErr := g.db.Close()
	g.db = nil

	if g.logger != nil {
		g.logger.Debug(logMsgClosed, logAttrPath, g.path)
	}

	return closeErr
}

func (g *Gateway) dsn() string {
	if g.path == memoryPath {
		return memoryDSN
	}

	return g.path + dsnSuffix
}

func (g *Gateway) ensureDirectoryExists() error {
	if g.path == memoryPath {
		return nil
	}

	dir := filepath.Dir(g.path)
	if dir == "." {
		return nil
	}

	return os.MkdirAll(dir, appDirPerm)
}
