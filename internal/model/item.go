package model

import "time"

// InventoryItem represents a single tracked item, as returned by the Vendora
// service. Monetary fields are decimal strings to avoid float rounding drift.
type InventoryItem struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id,omitempty"`
	Name              string    `json:"name"`
	Category          string    `json:"category,omitempty"`
	SKU               string    `json:"sku,omitempty"`
	UPC               string    `json:"upc,omitempty"`
	Size              string    `json:"size,omitempty"`
	Color             string    `json:"color,omitempty"`
	Condition         string    `json:"condition,omitempty"`
	SerialNumber      string    `json:"serial_number,omitempty"`
	Platform          string    `json:"platform,omitempty"`
	BuyPrice          string    `json:"buy_price,omitempty"`
	ExpectedSellPrice string    `json:"expected_sell_price,omitempty"`
	ActualSellPrice   string    `json:"actual_sell_price,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Item statuses. New items start as in_stock; archived is terminal.
const (
	StatusInStock  = "in_stock"
	StatusListed   = "listed"
	StatusSold     = "sold"
	StatusShipped  = "shipped"
	StatusPaid     = "paid"
	StatusArchived = "archived"
)

// ItemStatuses lists every valid item status, in lifecycle order.
var ItemStatuses = []string{
	StatusInStock,
	StatusListed,
	StatusSold,
	StatusShipped,
	StatusPaid,
	StatusArchived,
}

// ValidItemStatus reports whether s is a member of the item status enumeration.
func ValidItemStatus(s string) bool {
	for _, status := range ItemStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// PaginatedItems is the list envelope returned by the inventory endpoints.
type PaginatedItems struct {
	Items   []InventoryItem `json:"items"`
	Total   int             `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
	Pages   int             `json:"pages"`
}
