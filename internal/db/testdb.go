package db

import (
	"database/sql"
	"testing"
)

// NewTestDB opens an in-memory database with the session and item_cache
// tables ready, for tests that exercise the client's local storage. The
// handle is closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("applying local schema: %v", err)
	}
	return database
}
