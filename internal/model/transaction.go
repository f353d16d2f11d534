package model

import "time"

// Transaction represents a logged payment (quick sale or manual entry).
// Amounts are decimal strings; net_amount is computed by the service.
type Transaction struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"user_id,omitempty"`
	ItemID                string    `json:"item_id,omitempty"`
	Method                string    `json:"method"`
	Status                string    `json:"status"`
	GrossAmount           string    `json:"gross_amount"`
	FeeAmount             string    `json:"fee_amount"`
	NetAmount             string    `json:"net_amount"`
	ExternalReferenceID   string    `json:"external_reference_id,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	IsRefund              bool      `json:"is_refund"`
	OriginalTransactionID string    `json:"original_transaction_id,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Payment methods.
const (
	MethodCash    = "cash"
	MethodVenmo   = "venmo"
	MethodCashApp = "cashapp"
	MethodPayPal  = "paypal"
	MethodZelle   = "zelle"
	MethodStripe  = "stripe"
	MethodOther   = "other"
)

// PaymentMethods lists every accepted payment method.
var PaymentMethods = []string{
	MethodCash,
	MethodVenmo,
	MethodCashApp,
	MethodPayPal,
	MethodZelle,
	MethodStripe,
	MethodOther,
}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	for _, method := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Transaction statuses (server-assigned).
const (
	TxnStatusPending   = "pending"
	TxnStatusCompleted = "completed"
	TxnStatusFailed    = "failed"
	TxnStatusRefunded  = "refunded"
)

// PaginatedTransactions is the list envelope returned by the transaction endpoints.
type PaginatedTransactions struct {
	Items   []Transaction `json:"items"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Pages   int           `json:"pages"`
}
