// Package session persists the CLI's signed-in state: the API base URL the
// token was issued against, the bearer token itself, and the seller's email.
package session

import (
	"context"
	"database/sql"
	"fmt"
)

// Session is the locally persisted sign-in state.
type Session struct {
	BaseURL string
	Token   string
	Email   string
}

// Session keys in the local database.
const (
	keyBaseURL = "base_url"
	keyToken   = "access_token"
	keyEmail   = "email"
)

// Save stores the session, replacing any previous one.
func Save(ctx context.Context, db *sql.DB, s Session) error {
	pairs := map[string]string{
		keyBaseURL: s.BaseURL,
		keyToken:   s.Token,
		keyEmail:   s.Email,
	}
	for key, value := range pairs {
		_, err := db.ExecContext(ctx,
			`INSERT INTO session (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			key, value,
		)
		if err != nil {
			return fmt.Errorf("saving session %s: %w", key, err)
		}
	}
	return nil
}

// Load returns the stored session. A missing session is not an error; the
// zero Session (empty token) means signed out.
func Load(ctx context.Context, db *sql.DB) (Session, error) {
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return Session{}, fmt.Errorf("loading session: %w", err)
	}
	defer rows.Close()

	var s Session
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Session{}, fmt.Errorf("scanning session row: %w", err)
		}
		switch key {
		case keyBaseURL:
			s.BaseURL = value
		case keyToken:
			s.Token = value
		case keyEmail:
			s.Email = value
		}
	}
	return s, rows.Err()
}

// Clear removes the stored session (logout).
func Clear(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// SignedIn reports whether a token is stored.
func (s Session) SignedIn() bool {
	return s.Token != ""
}
