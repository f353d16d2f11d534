package db

import (
	"database/sql"
	"fmt"
)

// schema is the local client database schema. It only holds session state
// and a transient listing cache; all authoritative data lives on the
// Vendora service.
const schema = `
CREATE TABLE IF NOT EXISTS session (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS item_cache (
    id         TEXT PRIMARY KEY,
    payload    TEXT NOT NULL,
    fetched_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
