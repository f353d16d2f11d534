// Package draft holds client-side drafts under construction: a quick sale
// or an invoice being typed into a screen. Drafts recompute running totals
// on every change and refuse to build a payload the ledger flags invalid,
// so nothing malformed ever reaches the network.
package draft

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/as4584/Vendora/internal/api"
	"github.com/as4584/Vendora/internal/ledger"
	"github.com/as4584/Vendora/internal/model"
)

// ErrSubmitInFlight is returned when a draft is submitted while a previous
// submission is still outstanding. Each draft allows at most one in-flight
// request; rapid repeated taps must not create duplicate records.
var ErrSubmitInFlight = errors.New("draft: submission already in flight")

// Sale is a quick-sale draft. Fields hold raw text-entry values; derived
// figures are computed per call and never stored.
type Sale struct {
	Method      string
	GrossAmount string
	FeeAmount   string
	Notes       string

	// Item is the optionally linked inventory item, as last fetched.
	Item *model.InventoryItem

	mu       sync.Mutex
	inFlight bool
}

// SaleTotals are the running figures shown while the user types.
type SaleTotals struct {
	Net             string
	EstimatedProfit string // empty when the linked item has no buy price
}

// Totals computes the running net and estimated profit. An empty fee counts
// as zero; profit is present only when a linked item carries a buy price
// (absence is distinct from a zero-cost item).
func (s *Sale) Totals() (SaleTotals, error) {
	gross, err := ledger.ParseRequiredAmount("gross_amount", s.GrossAmount)
	if err != nil {
		return SaleTotals{}, err
	}
	fee, err := ledger.ParseAmount("fee_amount", s.FeeAmount)
	if err != nil {
		return SaleTotals{}, err
	}
	net, err := ledger.Net(gross, fee)
	if err != nil {
		return SaleTotals{}, err
	}

	totals := SaleTotals{Net: ledger.Format(net)}
	if buy := s.buyPrice(); buy != nil {
		if profit := ledger.EstimatedProfit(net, buy); profit != nil {
			totals.EstimatedProfit = ledger.Format(*profit)
		}
	}
	return totals, nil
}

// buyPrice returns the linked item's buy price, or nil when no item is
// linked or the item has no recorded cost.
func (s *Sale) buyPrice() *decimal.Decimal {
	if s.Item == nil || s.Item.BuyPrice == "" {
		return nil
	}
	buy, err := ledger.ParseAmount("buy_price", s.Item.BuyPrice)
	if err != nil {
		// A malformed service-supplied buy price hides the estimate rather
		// than failing the whole sale.
		return nil
	}
	return &buy
}

// Payload validates the draft and builds the normalized transaction payload:
// amounts fixed to 2 fractional digits and a fresh client reference id so
// the service can de-duplicate an accidental double submission.
func (s *Sale) Payload() (api.TransactionPayload, error) {
	if !model.ValidPaymentMethod(s.Method) {
		return api.TransactionPayload{}, &ledger.ValidationError{Field: "method", Reason: "unknown payment method"}
	}
	gross, err := ledger.ParseRequiredAmount("gross_amount", s.GrossAmount)
	if err != nil {
		return api.TransactionPayload{}, err
	}
	fee, err := ledger.ParseAmount("fee_amount", s.FeeAmount)
	if err != nil {
		return api.TransactionPayload{}, err
	}
	if _, err := ledger.Net(gross, fee); err != nil {
		return api.TransactionPayload{}, err
	}

	payload := api.TransactionPayload{
		Method:              s.Method,
		GrossAmount:         ledger.Format(gross),
		FeeAmount:           ledger.Format(fee),
		ExternalReferenceID: uuid.NewString(),
		Notes:               s.Notes,
	}
	if s.Item != nil {
		payload.ItemID = s.Item.ID
	}
	return payload, nil
}

// Submit validates, then sends the sale once. While a submission is
// outstanding further calls fail with ErrSubmitInFlight; the guard re-arms
// when the request completes, success or not, so the user may retry after a
// failure. The returned transaction is the service's authoritative record.
func (s *Sale) Submit(ctx context.Context, client *api.Client) (*model.Transaction, error) {
	payload, err := s.Payload()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	s.inFlight = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
	}()

	return client.CreateTransaction(ctx, payload)
}
