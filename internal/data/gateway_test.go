package data_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"booklib/internal/data"
	"booklib/internal/models"
)

func Test_Gateway_Connection_When_OpenedInMemory(t *testing.T) {
	// arrange
	gateway := newTestGateway(t)

	// act
	db, err := gateway.Connection()

	// assert
	assert.NoError(t, err, "error opening the in-memory database")
	require.NotNil(t, db)

	var one int
	assert.NoError(t, db.Get(&one, "SELECT 1"), "error querying through the handle")
	assert.Equal(t, 1, one)
}

func Test_Gateway_Connection_When_DirectoryMustBeCreated(t *testing.T) {
	// arrange
	dbPath := filepath.Join(t.TempDir(), "nested", "deeper", "library.db")

	gateway, err := data.NewGateway(data.WithPath(dbPath))
	require.NoError(t, err)
	t.Cleanup(func() { _ = gateway.Close() })

	// act
	_, connErr := gateway.Connection()

	// assert
	assert.NoError(t, connErr, "error opening the database in a fresh directory")
	assert.DirExists(t, filepath.Dir(dbPath), "containing directory was not created")
}

func Test_Gateway_Connection_When_CalledTwice_ReturnsTheSameHandle(t *testing.T) {
	// arrange
	gateway := newTestGateway(t)

	// act
	first, firstErr := gateway.Connection()
	second, secondErr := gateway.Connection()

	// assert
	assert.NoError(t, firstErr)
	assert.NoError(t, secondErr)
	assert.Same(t, first, second, "expected the shared handle, not a new one")
}

func Test_Gateway_Connection_AfterClose_YieldsAFreshHandle(t *testing.T) {
	// arrange
	gateway := newTestGateway(t)

	first, firstErr := gateway.Connection()
	require.NoError(t, firstErr)

	// act
	require.NoError(t, gateway.Close())
	second, secondErr := gateway.Connection()

	// assert
	assert.NoError(t, secondErr, "error reopening after close")
	assert.NotSame(t, first, second, "expected reinitialization after close")
}

func Test_Gateway_Close_When_NeverOpened_IsANoOp(t *testing.T) {
	// arrange
	gateway, err := data.NewGateway(data.WithPath(":memory:"))
	require.NoError(t, err)

	// act + assert
	assert.NoError(t, gateway.Close())
	assert.NoError(t, gateway.Close(), "second close must be a no-op")
}

func Test_Gateway_Connection_When_LocationCannotBeCreated(t *testing.T) {
	// arrange: a regular file where a directory would have to be
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("in the way"), 0o600))

	gateway, err := data.NewGateway(data.WithPath(filepath.Join(blocker, "sub", "library.db")))
	require.NoError(t, err)

	// act
	_, connErr := gateway.Connection()

	// assert
	assert.ErrorIs(t, connErr, models.ErrStorageUnavailable)
}

func Test_NewGateway_When_EmptyPathSupplied(t *testing.T) {
	// act
	_, err := data.NewGateway(data.WithPath(""))

	// assert
	assert.Error(t, err, "expected an error for an empty path")
}
