package draft

import (
	"context"
	"strings"
	"sync"

	"github.com/as4584/Vendora/internal/api"
	"github.com/as4584/Vendora/internal/ledger"
	"github.com/as4584/Vendora/internal/model"
)

// Line is one invoice line as typed. An empty Quantity defaults to 1 on
// validation, matching the service schema.
type Line struct {
	InventoryItemID string
	Description     string
	Quantity        string
	UnitPrice       string
}

// blank reports whether the line is entirely untouched; blank trailing lines
// are ignored instead of failing validation.
func (l Line) blank() bool {
	return strings.TrimSpace(l.Description) == "" &&
		strings.TrimSpace(l.Quantity) == "" &&
		strings.TrimSpace(l.UnitPrice) == ""
}

// Invoice is an invoice draft under construction.
type Invoice struct {
	CustomerName  string
	CustomerEmail string
	Lines         []Line
	Tax           string
	Shipping      string
	Discount      string
	Notes         string

	mu       sync.Mutex
	inFlight bool
}

// InvoiceTotals are the running figures shown while the user types.
type InvoiceTotals struct {
	Subtotal string
	Total    string
}

// parsedLines validates and converts the non-blank lines.
func (inv *Invoice) parsedLines() ([]api.InvoiceLinePayload, []ledger.Line, error) {
	var payloads []api.InvoiceLinePayload
	var lines []ledger.Line

	for _, line := range inv.Lines {
		if line.blank() {
			continue
		}
		if strings.TrimSpace(line.Description) == "" {
			return nil, nil, &ledger.ValidationError{Field: "description", Reason: "required"}
		}

		quantity := 1
		if strings.TrimSpace(line.Quantity) != "" {
			n, err := ledger.ParseQuantity("quantity", line.Quantity)
			if err != nil {
				return nil, nil, err
			}
			quantity = n
		}

		price, err := ledger.ParseRequiredAmount("unit_price", line.UnitPrice)
		if err != nil {
			return nil, nil, err
		}

		payloads = append(payloads, api.InvoiceLinePayload{
			InventoryItemID: line.InventoryItemID,
			Description:     strings.TrimSpace(line.Description),
			Quantity:        quantity,
			UnitPrice:       ledger.Format(price),
		})
		lines = append(lines, ledger.Line{Quantity: quantity, UnitPrice: price})
	}

	if len(lines) == 0 {
		return nil, nil, &ledger.ValidationError{Field: "items", Reason: "at least one line item required"}
	}
	return payloads, lines, nil
}

// Totals computes the running subtotal and total. Cheap enough for every
// keystroke: one pass over the lines, no caching.
func (inv *Invoice) Totals() (InvoiceTotals, error) {
	_, lines, err := inv.parsedLines()
	if err != nil {
		return InvoiceTotals{}, err
	}

	tax, err := ledger.ParseAmount("tax", inv.Tax)
	if err != nil {
		return InvoiceTotals{}, err
	}
	shipping, err := ledger.ParseAmount("shipping", inv.Shipping)
	if err != nil {
		return InvoiceTotals{}, err
	}
	discount, err := ledger.ParseAmount("discount", inv.Discount)
	if err != nil {
		return InvoiceTotals{}, err
	}

	totals, err := ledger.InvoiceTotals(lines, tax, shipping, discount)
	if err != nil {
		return InvoiceTotals{}, err
	}
	// The total is intentionally not clamped: an oversized discount shows
	// up negative and the service decides whether to accept it.
	return InvoiceTotals{
		Subtotal: ledger.Format(totals.Subtotal),
		Total:    ledger.Format(totals.Total),
	}, nil
}

// Payload validates the draft and builds the normalized invoice payload.
func (inv *Invoice) Payload() (api.InvoicePayload, error) {
	if strings.TrimSpace(inv.CustomerName) == "" {
		return api.InvoicePayload{}, &ledger.ValidationError{Field: "customer_name", Reason: "required"}
	}

	payloads, _, err := inv.parsedLines()
	if err != nil {
		return api.InvoicePayload{}, err
	}

	tax, err := ledger.ParseAmount("tax", inv.Tax)
	if err != nil {
		return api.InvoicePayload{}, err
	}
	shipping, err := ledger.ParseAmount("shipping", inv.Shipping)
	if err != nil {
		return api.InvoicePayload{}, err
	}
	discount, err := ledger.ParseAmount("discount", inv.Discount)
	if err != nil {
		return api.InvoicePayload{}, err
	}

	return api.InvoicePayload{
		CustomerName:  strings.TrimSpace(inv.CustomerName),
		CustomerEmail: strings.TrimSpace(inv.CustomerEmail),
		Items:         payloads,
		Tax:           ledger.Format(tax),
		Shipping:      ledger.Format(shipping),
		Discount:      ledger.Format(discount),
		Notes:         inv.Notes,
	}, nil
}

// Submit validates, then sends the invoice once, with the same in-flight
// guard as Sale.Submit. The returned invoice carries the service's own
// totals, which the caller displays instead of the draft's estimates.
func (inv *Invoice) Submit(ctx context.Context, client *api.Client) (*model.Invoice, error) {
	payload, err := inv.Payload()
	if err != nil {
		return nil, err
	}

	inv.mu.Lock()
	if inv.inFlight {
		inv.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	inv.inFlight = true
	inv.mu.Unlock()

	defer func() {
		inv.mu.Lock()
		inv.inFlight = false
		inv.mu.Unlock()
	}()

	return client.CreateInvoice(ctx, payload)
}
