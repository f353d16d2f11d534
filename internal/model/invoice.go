package model

import "time"

// Invoice represents a customer invoice with computed totals. Totals are
// decimal strings computed by the service; the client's pre-submission
// estimates should match but are never trusted over these.
type Invoice struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id,omitempty"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email,omitempty"`
	Status        string        `json:"status"`
	Subtotal      string        `json:"subtotal"`
	Tax           string        `json:"tax"`
	Shipping      string        `json:"shipping"`
	Discount      string        `json:"discount"`
	Total         string        `json:"total"`
	Notes         string        `json:"notes,omitempty"`
	Items         []InvoiceItem `json:"items"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// InvoiceItem is one line within an invoice.
type InvoiceItem struct {
	ID              string `json:"id"`
	InvoiceID       string `json:"invoice_id,omitempty"`
	InventoryItemID string `json:"inventory_item_id,omitempty"`
	Description     string `json:"description"`
	Quantity        int    `json:"quantity"`
	UnitPrice       string `json:"unit_price"`
	LineTotal       string `json:"line_total"`
}

// Invoice statuses. Enforced server-side; the client only offers the next
// legal action per observed status.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
)

// PaginatedInvoices is the list envelope returned by the invoice endpoints.
type PaginatedInvoices struct {
	Items   []Invoice `json:"items"`
	Total   int       `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
	Pages   int       `json:"pages"`
}
