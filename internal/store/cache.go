// Package store persists the client's transient item cache: the last-fetched
// copy of the inventory, kept only so screens can re-render without a
// round trip. The service owns the data; the cache is replaced wholesale on
// fetch and invalidated after every successful mutation.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/as4584/Vendora/internal/model"
)

// ReplaceItems swaps the cached inventory for the given fetch result.
func ReplaceItems(ctx context.Context, db *sql.DB, items []model.InventoryItem) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting cache replace: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_cache`); err != nil {
		return fmt.Errorf("clearing item cache: %w", err)
	}

	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encoding cached item: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO item_cache (id, payload) VALUES (?, ?)`,
			item.ID, string(payload),
		)
		if err != nil {
			return fmt.Errorf("caching item %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// GetItem returns a cached item, or nil when the id is not cached.
func GetItem(ctx context.Context, db *sql.DB, id string) (*model.InventoryItem, error) {
	var payload string
	err := db.QueryRowContext(ctx,
		`SELECT payload FROM item_cache WHERE id = ?`, id,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached item: %w", err)
	}

	var item model.InventoryItem
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		return nil, fmt.Errorf("decoding cached item: %w", err)
	}
	return &item, nil
}

// ListItems returns every cached item.
func ListItems(ctx context.Context, db *sql.DB) ([]model.InventoryItem, error) {
	rows, err := db.QueryContext(ctx, `SELECT payload FROM item_cache ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing cached items: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning cached item: %w", err)
		}
		var item model.InventoryItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			return nil, fmt.Errorf("decoding cached item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Invalidate drops the cache. Called after every successful mutating action;
// the next screen render refetches from the service.
func Invalidate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM item_cache`); err != nil {
		return fmt.Errorf("invalidating item cache: %w", err)
	}
	return nil
}
