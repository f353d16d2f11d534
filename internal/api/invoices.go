package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/as4584/Vendora/internal/model"
)

// InvoiceLinePayload is one line item in an invoice creation request.
type InvoiceLinePayload struct {
	InventoryItemID string `json:"inventory_item_id,omitempty"`
	Description     string `json:"description"`
	Quantity        int    `json:"quantity"`
	UnitPrice       string `json:"unit_price"`
}

// InvoicePayload creates an invoice. The service recomputes subtotal and
// total itself; the client's running totals are estimates only.
type InvoicePayload struct {
	CustomerName  string               `json:"customer_name"`
	CustomerEmail string               `json:"customer_email,omitempty"`
	Items         []InvoiceLinePayload `json:"items"`
	Tax           string               `json:"tax"`
	Shipping      string               `json:"shipping"`
	Discount      string               `json:"discount"`
	Notes         string               `json:"notes,omitempty"`
}

// CreateInvoice creates a new draft invoice.
func (c *Client) CreateInvoice(ctx context.Context, payload InvoicePayload) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := c.do(ctx, http.MethodPost, "/invoices", payload, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// ListInvoices returns one page of the seller's invoices.
func (c *Client) ListInvoices(ctx context.Context, page, perPage int) (*model.PaginatedInvoices, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var invoices model.PaginatedInvoices
	if err := c.get(ctx, "/invoices", query, &invoices); err != nil {
		return nil, err
	}
	return &invoices, nil
}

// GetInvoice returns a single invoice with its line items.
func (c *Client) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices/"+url.PathEscape(id), nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// UpdateInvoiceStatus submits an invoice status transition (send, cancel,
// mark paid). Same advisory contract as item status updates: pre-check with
// lifecycle, and on IsConflict re-fetch for the true status.
func (c *Client) UpdateInvoiceStatus(ctx context.Context, id, status string) (*model.Invoice, error) {
	var invoice model.Invoice
	path := fmt.Sprintf("/invoices/%s/status", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, statusUpdate{Status: status}, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}

// PayInvoice asks the service to start payment collection on a sent invoice
// and returns the updated invoice.
func (c *Client) PayInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	var invoice model.Invoice
	path := fmt.Sprintf("/invoices/%s/pay", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPost, path, nil, &invoice); err != nil {
		return nil, err
	}
	return &invoice, nil
}
