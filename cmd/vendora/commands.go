package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/as4584/Vendora/internal/api"
	"github.com/as4584/Vendora/internal/auth"
	"github.com/as4584/Vendora/internal/ledger"
	"github.com/as4584/Vendora/internal/lifecycle"
	"github.com/as4584/Vendora/internal/model"
	"github.com/as4584/Vendora/internal/session"
	"github.com/as4584/Vendora/internal/store"
)

// requireAuth fails fast when no usable token is stored, so commands never
// burn a request that will come back 401.
func (a *app) requireAuth() error {
	if !a.sess.SignedIn() {
		return errors.New("not signed in, run 'vendora login' first")
	}
	if auth.Expired(a.sess.Token) {
		return errors.New("session expired, run 'vendora login' again")
	}
	return nil
}

func cmdRegister(a *app, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	business := fs.String("business", "", "business name")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return errors.New("-email and -password are required")
	}

	user, err := a.client.Register(context.Background(), api.RegisterRequest{
		Email:        *email,
		Password:     *password,
		BusinessName: *business,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Account created for %s (%s tier). Run 'vendora login' to sign in.\n",
		user.Email, user.SubscriptionTier)
	return nil
}

func cmdLogin(a *app, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email (required)")
	password := fs.String("password", "", "account password (required)")
	fs.Parse(args)

	if *email == "" || *password == "" {
		return errors.New("-email and -password are required")
	}

	ctx := context.Background()
	token, err := a.client.Login(ctx, api.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		if api.IsUnauthorized(err) {
			return errors.New("invalid email or password")
		}
		return err
	}

	err = session.Save(ctx, a.db, session.Session{
		BaseURL: a.cfg.BaseURL,
		Token:   token.AccessToken,
		Email:   *email,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Signed in as %s.\n", *email)
	if claims, err := auth.Peek(token.AccessToken); err == nil && claims.ExpiresAt != nil {
		fmt.Printf("Session valid until %s.\n", claims.ExpiresAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func cmdLogout(a *app, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ExitOnError)
	fs.Parse(args)

	ctx := context.Background()
	if err := session.Clear(ctx, a.db); err != nil {
		return err
	}
	if err := store.Invalidate(ctx, a.db); err != nil {
		return err
	}

	fmt.Println("Signed out.")
	return nil
}

func cmdWhoami(a *app, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ExitOnError)
	fs.Parse(args)

	if err := a.requireAuth(); err != nil {
		return err
	}

	user, err := a.client.Me(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", user.Email)
	if user.BusinessName != "" {
		fmt.Printf("Business: %s\n", user.BusinessName)
	}
	fmt.Printf("Tier: %s\n", user.SubscriptionTier)
	return nil
}

func cmdItems(a *app, args []string) error {
	fs := flag.NewFlagSet("items", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 20, "items per page")
	cached := fs.Bool("cached", false, "render the last fetched page without a network call")
	fs.Parse(args)

	ctx := context.Background()

	if *cached {
		items, err := store.ListItems(ctx, a.db)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No cached inventory. Run 'vendora items' to fetch.")
			return nil
		}
		printItems(items)
		return nil
	}

	if err := a.requireAuth(); err != nil {
		return err
	}

	result, err := a.client.ListItems(ctx, *page, *perPage)
	if err != nil {
		return err
	}

	if err := store.ReplaceItems(ctx, a.db, result.Items); err != nil {
		return err
	}

	printItems(result.Items)
	fmt.Printf("\nPage %d of %d (%d items total)\n", result.Page, result.Pages, result.Total)
	return nil
}

func cmdItem(a *app, args []string) error {
	fs := flag.NewFlagSet("item", flag.ExitOnError)
	cached := fs.Bool("cached", false, "render the cached copy without a network call")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return errors.New("usage: vendora item [-cached] <id>")
	}

	ctx := context.Background()

	if *cached {
		item, err := store.GetItem(ctx, a.db, fs.Arg(0))
		if err != nil {
			return err
		}
		if item == nil {
			return errors.New("item not cached, run 'vendora items' to fetch")
		}
		printItem(item)
		return nil
	}

	if err := a.requireAuth(); err != nil {
		return err
	}

	item, err := a.client.GetItem(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	printItem(item)
	return nil
}

// itemFlags registers the shared create/update item flags on fs.
func itemFlags(fs *flag.FlagSet) *api.ItemPayload {
	p := &api.ItemPayload{}
	fs.StringVar(&p.Name, "name", "", "item name")
	fs.StringVar(&p.Category, "category", "", "category")
	fs.StringVar(&p.SKU, "sku", "", "SKU")
	fs.StringVar(&p.UPC, "upc", "", "UPC barcode")
	fs.StringVar(&p.Size, "size", "", "size")
	fs.StringVar(&p.Color, "color", "", "color")
	fs.StringVar(&p.Condition, "condition", "", "condition")
	fs.StringVar(&p.SerialNumber, "serial", "", "serial number")
	fs.StringVar(&p.Platform, "platform", "", "selling platform")
	fs.StringVar(&p.BuyPrice, "buy-price", "", "acquisition cost")
	fs.StringVar(&p.ExpectedSellPrice, "expected-price", "", "expected sell price")
	fs.StringVar(&p.ActualSellPrice, "actual-price", "", "actual sell price")
	return p
}

// normalizeItemPayload validates the monetary fields and fixes them to two
// fractional digits before they go on the wire.
func normalizeItemPayload(p *api.ItemPayload) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"buy-price", &p.BuyPrice},
		{"expected-price", &p.ExpectedSellPrice},
		{"actual-price", &p.ActualSellPrice},
	}
	for _, f := range fields {
		if *f.value == "" {
			continue
		}
		amount, err := ledger.ParseAmount(f.name, *f.value)
		if err != nil {
			return err
		}
		*f.value = ledger.Format(amount)
	}
	return nil
}

func cmdAddItem(a *app, args []string) error {
	fs := flag.NewFlagSet("add-item", flag.ExitOnError)
	payload := itemFlags(fs)
	fs.Parse(args)

	if payload.Name == "" {
		return errors.New("-name is required")
	}
	if err := normalizeItemPayload(payload); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	item, err := a.client.CreateItem(ctx, *payload)
	if err != nil {
		return err
	}
	if err := store.Invalidate(ctx, a.db); err != nil {
		return err
	}

	fmt.Printf("Created %s (%s), status %s.\n", item.Name, item.ID, item.Status)
	return nil
}

func cmdUpdateItem(a *app, args []string) error {
	fs := flag.NewFlagSet("update-item", flag.ExitOnError)
	id := fs.String("id", "", "item id (required)")
	payload := itemFlags(fs)
	fs.Parse(args)

	if *id == "" {
		return errors.New("-id is required")
	}
	if err := normalizeItemPayload(payload); err != nil {
		return err
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	item, err := a.client.UpdateItem(ctx, *id, *payload)
	if err != nil {
		return err
	}
	if err := store.Invalidate(ctx, a.db); err != nil {
		return err
	}

	fmt.Printf("Updated %s (%s).\n", item.Name, item.ID)
	return nil
}

func cmdDeleteItem(a *app, args []string) error {
	fs := flag.NewFlagSet("delete-item", flag.ExitOnError)
	id := fs.String("id", "", "item id (required)")
	fs.Parse(args)

	if *id == "" {
		return errors.New("-id is required")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	if err := a.client.DeleteItem(ctx, *id); err != nil {
		return err
	}
	if err := store.Invalidate(ctx, a.db); err != nil {
		return err
	}

	fmt.Println("Item deleted.")
	return nil
}

func cmdStatus(a *app, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	id := fs.String("id", "", "item id (required)")
	to := fs.String("to", "", "target status; omit to list the legal moves")
	fs.Parse(args)

	if *id == "" {
		return errors.New("-id is required")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	item, err := a.client.GetItem(ctx, *id)
	if err != nil {
		return err
	}

	if *to == "" {
		fmt.Printf("%s is %s.\n", item.Name, item.Status)
		targets := lifecycle.Transitions(item.Status)
		if len(targets) == 0 {
			fmt.Println("No further moves; this status is final.")
		} else {
			fmt.Printf("Legal moves: %s\n", strings.Join(targets, ", "))
		}
		return nil
	}

	if !model.ValidItemStatus(*to) {
		return fmt.Errorf("unknown status %q (valid: %s)", *to, strings.Join(model.ItemStatuses, ", "))
	}
	if !lifecycle.CanTransition(item.Status, *to) {
		targets := lifecycle.Transitions(item.Status)
		if len(targets) == 0 {
			return fmt.Errorf("%s is %s, which is final", item.Name, item.Status)
		}
		return fmt.Errorf("cannot move %s from %s to %s (legal: %s)",
			item.Name, item.Status, *to, strings.Join(targets, ", "))
	}

	updated, err := a.client.UpdateItemStatus(ctx, *id, *to)
	if err != nil {
		if api.IsConflict(err) {
			return reportStatusConflict(ctx, a, *id, err)
		}
		return err
	}
	if err := store.Invalidate(ctx, a.db); err != nil {
		return err
	}

	fmt.Printf("%s is now %s.\n", updated.Name, updated.Status)
	return nil
}

// reportStatusConflict handles the service overruling a locally approved
// transition: the cache is stale, so drop it, re-fetch, and show the
// service's answer.
func reportStatusConflict(ctx context.Context, a *app, id string, cause error) error {
	if err := store.Invalidate(ctx, a.db); err != nil {
		return err
	}

	var apiErr *api.APIError
	if errors.As(cause, &apiErr) && apiErr.CurrentStatus != "" {
		fmt.Printf("The service refused: item is actually %s.\n", apiErr.CurrentStatus)
		if len(apiErr.AllowedTransitions) > 0 {
			fmt.Printf("Legal moves: %s\n", strings.Join(apiErr.AllowedTransitions, ", "))
		}
		return nil
	}

	item, err := a.client.GetItem(ctx, id)
	if err != nil {
		return fmt.Errorf("transition refused and re-fetch failed: %w", err)
	}
	fmt.Printf("The service refused: item is actually %s.\n", item.Status)
	if targets := lifecycle.Transitions(item.Status); len(targets) > 0 {
		fmt.Printf("Legal moves: %s\n", strings.Join(targets, ", "))
	}
	return nil
}

func printItems(items []model.InventoryItem) {
	if len(items) == 0 {
		fmt.Println("No items.")
		return
	}
	for _, item := range items {
		price := item.ExpectedSellPrice
		if item.ActualSellPrice != "" {
			price = item.ActualSellPrice
		}
		fmt.Printf("%-36s  %-10s  %8s  %s\n", item.ID, item.Status, price, item.Name)
	}
}

func printItem(item *model.InventoryItem) {
	fmt.Printf("%s (%s)\n", item.Name, item.ID)
	fmt.Printf("Status: %s\n", item.Status)

	optional := []struct{ label, value string }{
		{"Category", item.Category},
		{"SKU", item.SKU},
		{"UPC", item.UPC},
		{"Size", item.Size},
		{"Color", item.Color},
		{"Condition", item.Condition},
		{"Serial", item.SerialNumber},
		{"Platform", item.Platform},
		{"Buy price", item.BuyPrice},
		{"Expected price", item.ExpectedSellPrice},
		{"Actual price", item.ActualSellPrice},
	}
	for _, f := range optional {
		if f.value != "" {
			fmt.Printf("%s: %s\n", f.label, f.value)
		}
	}

	if profit := realizedProfit(item); profit != "" {
		fmt.Printf("Realized profit: %s\n", profit)
	}

	if targets := lifecycle.Transitions(item.Status); len(targets) > 0 {
		fmt.Printf("Legal moves: %s\n", strings.Join(targets, ", "))
	}
}

// realizedProfit returns sell price minus cost for an item that has both
// recorded, or "" when either figure is missing or unreadable.
func realizedProfit(item *model.InventoryItem) string {
	if item.ActualSellPrice == "" || item.BuyPrice == "" {
		return ""
	}
	sell, err := ledger.ParseAmount("actual_sell_price", item.ActualSellPrice)
	if err != nil {
		return ""
	}
	buy, err := ledger.ParseAmount("buy_price", item.BuyPrice)
	if err != nil {
		return ""
	}
	return ledger.Format(ledger.ItemProfit(sell, buy, decimal.Zero))
}
