package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/as4584/Vendora/internal/model"
)

// ItemPayload creates or updates an inventory item. Monetary fields are
// decimal strings already normalized to 2 fractional digits.
type ItemPayload struct {
	Name              string `json:"name"`
	Category          string `json:"category,omitempty"`
	SKU               string `json:"sku,omitempty"`
	UPC               string `json:"upc,omitempty"`
	Size              string `json:"size,omitempty"`
	Color             string `json:"color,omitempty"`
	Condition         string `json:"condition,omitempty"`
	SerialNumber      string `json:"serial_number,omitempty"`
	Platform          string `json:"platform,omitempty"`
	BuyPrice          string `json:"buy_price,omitempty"`
	ExpectedSellPrice string `json:"expected_sell_price,omitempty"`
	ActualSellPrice   string `json:"actual_sell_price,omitempty"`
}

// ListItems returns one page of the seller's inventory.
func (c *Client) ListItems(ctx context.Context, page, perPage int) (*model.PaginatedItems, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var items model.PaginatedItems
	if err := c.get(ctx, "/inventory", query, &items); err != nil {
		return nil, err
	}
	return &items, nil
}

// GetItem returns a single item.
func (c *Client) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := c.do(ctx, http.MethodGet, "/inventory/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem creates a new inventory item. The service assigns the id and
// the initial in_stock status.
func (c *Client) CreateItem(ctx context.Context, payload ItemPayload) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := c.do(ctx, http.MethodPost, "/inventory", payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem updates an item's descriptive and monetary attributes.
// Status changes go through UpdateItemStatus instead.
func (c *Client) UpdateItem(ctx context.Context, id string, payload ItemPayload) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := c.do(ctx, http.MethodPut, "/inventory/"+url.PathEscape(id), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/inventory/"+url.PathEscape(id), nil, nil)
}

type statusUpdate struct {
	Status string `json:"status"`
}

// UpdateItemStatus submits a status transition. Callers pre-check the
// transition with the lifecycle package, but the service has the final say;
// on rejection (IsConflict) re-fetch the item for its true status.
func (c *Client) UpdateItemStatus(ctx context.Context, id, status string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	path := fmt.Sprintf("/inventory/%s/status", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, statusUpdate{Status: status}, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
