package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/as4584/Vendora/internal/model"
)

// TransactionPayload logs a payment (quick sale or manual entry). Amounts
// are decimal strings normalized to 2 fractional digits; the service
// computes and returns the authoritative net_amount.
type TransactionPayload struct {
	ItemID              string `json:"item_id,omitempty"`
	Method              string `json:"method"`
	GrossAmount         string `json:"gross_amount"`
	FeeAmount           string `json:"fee_amount"`
	ExternalReferenceID string `json:"external_reference_id,omitempty"`
	Notes               string `json:"notes,omitempty"`
}

// CreateTransaction logs a new transaction.
func (c *Client) CreateTransaction(ctx context.Context, payload TransactionPayload) (*model.Transaction, error) {
	var txn model.Transaction
	if err := c.do(ctx, http.MethodPost, "/transactions", payload, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListTransactions returns one page of the seller's transactions.
func (c *Client) ListTransactions(ctx context.Context, page, perPage int) (*model.PaginatedTransactions, error) {
	query := url.Values{}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		query.Set("per_page", strconv.Itoa(perPage))
	}

	var txns model.PaginatedTransactions
	if err := c.get(ctx, "/transactions", query, &txns); err != nil {
		return nil, err
	}
	return &txns, nil
}

// GetTransaction returns a single transaction.
func (c *Client) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	var txn model.Transaction
	if err := c.do(ctx, http.MethodGet, "/transactions/"+url.PathEscape(id), nil, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

type refundRequest struct {
	Reason string `json:"reason,omitempty"`
}

// RefundTransaction records a refund against an existing transaction and
// returns the new refund transaction.
func (c *Client) RefundTransaction(ctx context.Context, id, reason string) (*model.Transaction, error) {
	var txn model.Transaction
	path := fmt.Sprintf("/transactions/%s/refund", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPost, path, refundRequest{Reason: reason}, &txn); err != nil {
		return nil, err
	}
	return &txn, nil
}
