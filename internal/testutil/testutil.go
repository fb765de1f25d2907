package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/okonek/mathsprint/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations
// applied. Closed automatically when the test finishes.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	database, err := db.Open("sqlite3", "file::memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, database.Close())
	})
	return database
}
