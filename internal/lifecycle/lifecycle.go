// Package lifecycle encodes the item and invoice status state machines.
//
// The tables here mirror the ones the Vendora service enforces. They are
// advisory: the service is the final authority and may still reject a
// transition this package approved (stale status, tier limit), in which case
// the caller must re-fetch the record and trust the service's answer.
package lifecycle

import "github.com/as4584/Vendora/internal/model"

// itemTransitions is the item status transition table. Slices are ordered for
// stable rendering. listed -> in_stock is a permitted "unlist" backtrack;
// a completed sale can never revert to in_stock.
var itemTransitions = map[string][]string{
	model.StatusInStock:  {model.StatusListed, model.StatusSold},
	model.StatusListed:   {model.StatusSold, model.StatusInStock},
	model.StatusSold:     {model.StatusShipped, model.StatusPaid},
	model.StatusShipped:  {model.StatusPaid},
	model.StatusPaid:     {model.StatusArchived},
	model.StatusArchived: {},
}

// invoiceTransitions is the invoice status transition table.
// paid is locked and cancelled is terminal.
var invoiceTransitions = map[string][]string{
	model.InvoiceStatusDraft:     {model.InvoiceStatusSent, model.InvoiceStatusCancelled},
	model.InvoiceStatusSent:      {model.InvoiceStatusPaid, model.InvoiceStatusCancelled},
	model.InvoiceStatusPaid:      {},
	model.InvoiceStatusCancelled: {},
}

// Transitions returns the statuses an item may legally move to from current.
// Unknown statuses get an empty set: the table is fail-closed, so a value the
// client does not recognize is treated as terminal rather than guessed at.
func Transitions(current string) []string {
	targets, ok := itemTransitions[current]
	if !ok || len(targets) == 0 {
		return nil
	}
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}

// CanTransition reports whether an item may move from one status to another.
func CanTransition(from, to string) bool {
	for _, target := range itemTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// InvoiceTransitions returns the statuses an invoice may legally move to
// from current. Fail-closed on unknown statuses, like Transitions.
func InvoiceTransitions(current string) []string {
	targets, ok := invoiceTransitions[current]
	if !ok || len(targets) == 0 {
		return nil
	}
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}

// CanTransitionInvoice reports whether an invoice may move from one status
// to another.
func CanTransitionInvoice(from, to string) bool {
	for _, target := range invoiceTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}
