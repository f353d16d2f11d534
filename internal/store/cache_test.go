package store

import (
	"context"
	"testing"

	"github.com/as4584/Vendora/internal/db"
	"github.com/as4584/Vendora/internal/model"
)

func TestReplaceAndGetItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	items := []model.InventoryItem{
		{ID: "i-1", Name: "Jordan 4", Status: model.StatusListed, BuyPrice: "80.00"},
		{ID: "i-2", Name: "Vintage tee", Status: model.StatusInStock},
	}
	if err := ReplaceItems(ctx, database, items); err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}

	got, err := GetItem(ctx, database, "i-1")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil || got.Name != "Jordan 4" || got.BuyPrice != "80.00" {
		t.Errorf("unexpected cached item: %+v", got)
	}

	missing, err := GetItem(ctx, database, "i-404")
	if err != nil {
		t.Fatalf("GetItem missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for uncached id")
	}

	all, err := ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 cached items, got %d", len(all))
	}
}

func TestReplaceSwapsWholesale(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := ReplaceItems(ctx, database, []model.InventoryItem{{ID: "i-1", Name: "Old"}}); err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}
	if err := ReplaceItems(ctx, database, []model.InventoryItem{{ID: "i-2", Name: "New"}}); err != nil {
		t.Fatalf("ReplaceItems: %v", err)
	}

	old, _ := GetItem(ctx, database, "i-1")
	if old != nil {
		t.Error("expected i-1 to be gone after replace")
	}
	all, _ := ListItems(ctx, database)
	if len(all) != 1 || all[0].ID != "i-2" {
		t.Errorf("unexpected cache contents: %+v", all)
	}
}

func TestInvalidate(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	ReplaceItems(ctx, database, []model.InventoryItem{{ID: "i-1"}})
	if err := Invalidate(ctx, database); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	all, err := ListItems(ctx, database)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty cache, got %d items", len(all))
	}
}
