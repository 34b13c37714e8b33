package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/servio/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB returns a migrated in-memory draft store closed at test end.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "open test draft store")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
