package api

import (
	"context"
	"net/http"

	"github.com/as4584/Vendora/internal/model"
)

// GetDashboard returns the aggregated business metrics.
func (c *Client) GetDashboard(ctx context.Context) (*model.Dashboard, error) {
	var dashboard model.Dashboard
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// HealthStatus is the service health response.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health checks service reachability.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var health HealthStatus
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// ExportInventory returns the seller's inventory as CSV bytes.
func (c *Client) ExportInventory(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, "/export/inventory")
}

// ExportTransactions returns the seller's transactions as CSV bytes.
func (c *Client) ExportTransactions(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, "/export/transactions")
}
