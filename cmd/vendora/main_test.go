package main

import (
	"context"
	"testing"

	"github.com/as4584/Vendora/internal/db"
	"github.com/as4584/Vendora/internal/model"
	"github.com/as4584/Vendora/internal/session"
	"github.com/as4584/Vendora/internal/store"
)

func TestLoadSessionKeepsMatchingHost(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	want := session.Session{
		BaseURL: "https://api.vendora.app/api/v1",
		Token:   "tok-1",
		Email:   "seller@example.com",
	}
	if err := session.Save(ctx, database, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := loadSession(ctx, database, want.BaseURL)
	if err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestLoadSessionDeletesMismatchedHost(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	stale := session.Session{
		BaseURL: "https://old.example.com/api/v1",
		Token:   "tok-old",
		Email:   "seller@example.com",
	}
	if err := session.Save(ctx, database, stale); err != nil {
		t.Fatalf("Save: %v", err)
	}
	items := []model.InventoryItem{{ID: "i-1", Name: "Jordan 4"}}
	if err := store.ReplaceItems(ctx, database, items); err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}

	got, err := loadSession(ctx, database, "https://new.example.com/api/v1")
	if err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	if got.SignedIn() {
		t.Error("expected mismatched session to be discarded")
	}

	// The stale rows must be gone, not just skipped this invocation.
	reloaded, err := session.Load(ctx, database)
	if err != nil {
		t.Fatalf("Load after discard: %v", err)
	}
	if reloaded.SignedIn() {
		t.Error("expected stale session deleted from the database")
	}
	cached, err := store.ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems after discard: %v", err)
	}
	if len(cached) != 0 {
		t.Errorf("expected the other host's cache dropped, got %d items", len(cached))
	}
}
