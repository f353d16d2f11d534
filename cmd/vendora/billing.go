package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/as4584/Vendora/internal/api"
	"github.com/as4584/Vendora/internal/draft"
	"github.com/as4584/Vendora/internal/export"
	"github.com/as4584/Vendora/internal/lifecycle"
	"github.com/as4584/Vendora/internal/model"
	"github.com/as4584/Vendora/internal/store"
)

func cmdSale(a *app, args []string) error {
	fs := flag.NewFlagSet("sale", flag.ExitOnError)
	method := fs.String("method", "", "payment method (required): "+strings.Join(model.PaymentMethods, ", "))
	gross := fs.String("gross", "", "gross amount (required)")
	fee := fs.String("fee", "", "platform fee, defaults to 0")
	item := fs.String("item", "", "inventory item id to link")
	notes := fs.String("notes", "", "free-form notes")
	fs.Parse(args)

	if err := a.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	sale := &draft.Sale{
		Method:      *method,
		GrossAmount: *gross,
		FeeAmount:   *fee,
		Notes:       *notes,
	}

	if *item != "" {
		linked, err := a.client.GetItem(ctx, *item)
		if err != nil {
			return fmt.Errorf("looking up linked item: %w", err)
		}
		sale.Item = linked
	}

	totals, err := sale.Totals()
	if err != nil {
		return err
	}
	fmt.Printf("Net: %s\n", totals.Net)
	if totals.EstimatedProfit != "" {
		fmt.Printf("Estimated profit: %s\n", totals.EstimatedProfit)
	}

	txn, err := sale.Submit(ctx, a.client)
	if err != nil {
		if errors.Is(err, api.ErrTransient) {
			return fmt.Errorf("submission did not reach the service, retry when connected: %w", err)
		}
		return err
	}
	if err := store.Invalidate(ctx, a.db); err != nil {
		return err
	}

	fmt.Printf("Sale recorded (%s): gross %s, fee %s, net %s.\n",
		txn.ID, txn.GrossAmount, txn.FeeAmount, txn.NetAmount)
	return nil
}

func cmdRefund(a *app, args []string) error {
	fs := flag.NewFlagSet("refund", flag.ExitOnError)
	id := fs.String("id", "", "transaction id (required)")
	reason := fs.String("reason", "", "refund reason")
	fs.Parse(args)

	if *id == "" {
		return errors.New("-id is required")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	refund, err := a.client.RefundTransaction(ctx, *id, *reason)
	if err != nil {
		return err
	}
	if err := store.Invalidate(ctx, a.db); err != nil {
		return err
	}

	fmt.Printf("Refund recorded (%s): %s returned.\n", refund.ID, refund.GrossAmount)
	return nil
}

func cmdInvoices(a *app, args []string) error {
	fs := flag.NewFlagSet("invoices", flag.ExitOnError)
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 20, "invoices per page")
	fs.Parse(args)

	if err := a.requireAuth(); err != nil {
		return err
	}

	result, err := a.client.ListInvoices(context.Background(), *page, *perPage)
	if err != nil {
		return err
	}

	if len(result.Items) == 0 {
		fmt.Println("No invoices.")
		return nil
	}
	for _, inv := range result.Items {
		fmt.Printf("%-36s  %-10s  %8s  %s\n", inv.ID, inv.Status, inv.Total, inv.CustomerName)
	}
	fmt.Printf("\nPage %d of %d (%d invoices total)\n", result.Page, result.Pages, result.Total)
	return nil
}

// lineFlags collects repeated -line values. Each value is
// "description|quantity|unit_price" with an optional "|item_id" suffix;
// quantity may be left empty to default to 1.
type lineFlags []draft.Line

func (lf *lineFlags) String() string {
	return fmt.Sprintf("%d lines", len(*lf))
}

func (lf *lineFlags) Set(value string) error {
	parts := strings.Split(value, "|")
	if len(parts) < 3 || len(parts) > 4 {
		return errors.New(`expected "description|quantity|unit_price" or "description|quantity|unit_price|item_id"`)
	}
	line := draft.Line{
		Description: parts[0],
		Quantity:    parts[1],
		UnitPrice:   parts[2],
	}
	if len(parts) == 4 {
		line.InventoryItemID = parts[3]
	}
	*lf = append(*lf, line)
	return nil
}

func cmdInvoice(a *app, args []string) error {
	fs := flag.NewFlagSet("invoice", flag.ExitOnError)
	customer := fs.String("customer", "", "customer name (required)")
	email := fs.String("email", "", "customer email")
	tax := fs.String("tax", "", "tax amount, defaults to 0")
	shipping := fs.String("shipping", "", "shipping amount, defaults to 0")
	discount := fs.String("discount", "", "discount amount, defaults to 0")
	notes := fs.String("notes", "", "free-form notes")
	var lines lineFlags
	fs.Var(&lines, "line", `line item "description|quantity|unit_price[|item_id]", repeatable`)
	fs.Parse(args)

	if err := a.requireAuth(); err != nil {
		return err
	}

	inv := &draft.Invoice{
		CustomerName:  *customer,
		CustomerEmail: *email,
		Lines:         lines,
		Tax:           *tax,
		Shipping:      *shipping,
		Discount:      *discount,
		Notes:         *notes,
	}

	totals, err := inv.Totals()
	if err != nil {
		return err
	}
	fmt.Printf("Subtotal: %s\nTotal: %s\n", totals.Subtotal, totals.Total)

	created, err := inv.Submit(context.Background(), a.client)
	if err != nil {
		if errors.Is(err, api.ErrTransient) {
			return fmt.Errorf("submission did not reach the service, retry when connected: %w", err)
		}
		return err
	}

	fmt.Printf("Invoice %s created as %s for %s, total %s.\n",
		created.ID, created.Status, created.CustomerName, created.Total)
	return nil
}

func cmdInvoiceStatus(a *app, args []string) error {
	fs := flag.NewFlagSet("invoice-status", flag.ExitOnError)
	id := fs.String("id", "", "invoice id (required)")
	to := fs.String("to", "", "target status; omit to list the legal moves")
	collect := fs.Bool("collect", false, "start payment collection on a sent invoice")
	fs.Parse(args)

	if *id == "" {
		return errors.New("-id is required")
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()

	if *collect {
		inv, err := a.client.PayInvoice(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Printf("Collection started on invoice %s (%s).\n", inv.ID, inv.Status)
		return nil
	}

	inv, err := a.client.GetInvoice(ctx, *id)
	if err != nil {
		return err
	}

	if *to == "" {
		fmt.Printf("Invoice %s is %s.\n", inv.ID, inv.Status)
		targets := lifecycle.InvoiceTransitions(inv.Status)
		if len(targets) == 0 {
			fmt.Println("No further moves; this status is final.")
		} else {
			fmt.Printf("Legal moves: %s\n", strings.Join(targets, ", "))
		}
		return nil
	}

	if !lifecycle.CanTransitionInvoice(inv.Status, *to) {
		targets := lifecycle.InvoiceTransitions(inv.Status)
		if len(targets) == 0 {
			return fmt.Errorf("invoice is %s, which is final", inv.Status)
		}
		return fmt.Errorf("cannot move invoice from %s to %s (legal: %s)",
			inv.Status, *to, strings.Join(targets, ", "))
	}

	updated, err := a.client.UpdateInvoiceStatus(ctx, *id, *to)
	if err != nil {
		if api.IsConflict(err) {
			current, ferr := a.client.GetInvoice(ctx, *id)
			if ferr != nil {
				return fmt.Errorf("transition refused and re-fetch failed: %w", ferr)
			}
			fmt.Printf("The service refused: invoice is actually %s.\n", current.Status)
			if targets := lifecycle.InvoiceTransitions(current.Status); len(targets) > 0 {
				fmt.Printf("Legal moves: %s\n", strings.Join(targets, ", "))
			}
			return nil
		}
		return err
	}

	fmt.Printf("Invoice %s is now %s.\n", updated.ID, updated.Status)
	return nil
}

func cmdDashboard(a *app, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ExitOnError)
	fs.Parse(args)

	if err := a.requireAuth(); err != nil {
		return err
	}

	d, err := a.client.GetDashboard(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Revenue       today %s  week %s  month %s\n", d.RevenueToday, d.RevenueWeek, d.RevenueMonth)
	fmt.Printf("Net profit    today %s  week %s  month %s  all time %s\n",
		d.NetProfitToday, d.NetProfitWeek, d.NetProfitMonth, d.NetProfitAllTime)
	fmt.Printf("Inventory     cost %s  expected %s  potential profit %s\n",
		d.TotalInventoryValue, d.TotalExpectedValue, d.PotentialProfit)
	fmt.Printf("Items         %d total: %d in stock, %d listed, %d sold\n",
		d.TotalItems, d.ItemsInStock, d.ItemsListed, d.ItemsSold)
	fmt.Printf("Transactions  %d total, %d refunds\n", d.TotalTransactions, d.TotalRefunds)
	return nil
}

func cmdExport(a *app, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	what := fs.String("what", "inventory", "what to export: inventory or transactions")
	out := fs.String("out", "", "output file (required)")
	local := fs.Bool("local", false, "build the CSV locally instead of downloading the service export")
	fs.Parse(args)

	if *out == "" {
		return errors.New("-out is required")
	}
	if *what != "inventory" && *what != "transactions" {
		return fmt.Errorf("unknown export target %q", *what)
	}
	if err := a.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()

	if !*local {
		var data []byte
		var err error
		if *what == "inventory" {
			data, err = a.client.ExportInventory(ctx)
		} else {
			data, err = a.client.ExportTransactions(ctx)
		}
		if err != nil {
			return err
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			return fmt.Errorf("writing export: %w", err)
		}
		fmt.Printf("Saved %s export to %s.\n", *what, *out)
		return nil
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if *what == "inventory" {
		items, err := fetchAllItems(ctx, a.client)
		if err != nil {
			return err
		}
		if err := export.WriteInventory(f, items); err != nil {
			return err
		}
	} else {
		txns, err := fetchAllTransactions(ctx, a.client)
		if err != nil {
			return err
		}
		if err := export.WriteTransactions(f, txns); err != nil {
			return err
		}
	}

	fmt.Printf("Saved %s export to %s.\n", *what, *out)
	return nil
}

const exportPageSize = 100

func fetchAllItems(ctx context.Context, client *api.Client) ([]model.InventoryItem, error) {
	var all []model.InventoryItem
	for page := 1; ; page++ {
		result, err := client.ListItems(ctx, page, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if page >= result.Pages || len(result.Items) == 0 {
			return all, nil
		}
	}
}

func fetchAllTransactions(ctx context.Context, client *api.Client) ([]model.Transaction, error) {
	var all []model.Transaction
	for page := 1; ; page++ {
		result, err := client.ListTransactions(ctx, page, exportPageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, result.Items...)
		if page >= result.Pages || len(result.Items) == 0 {
			return all, nil
		}
	}
}
