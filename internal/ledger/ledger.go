// Package ledger turns raw decimal-string input into validated, derived
// monetary figures. All arithmetic is fixed-point (shopspring/decimal);
// results are formatted to exactly 2 fractional digits for display and for
// payloads sent to the Vendora service.
//
// Every function is pure and total: expected bad input comes back as a
// *ValidationError, never a panic, and nothing here performs I/O.
package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidationError describes a rejected monetary or quantity input. It is
// detected locally and never sent to the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validation reasons.
const (
	ReasonMalformed   = "not a valid amount"
	ReasonNegative    = "must not be negative"
	ReasonNotPositive = "must be greater than zero"
	ReasonTooPrecise  = "at most 2 decimal places allowed"
	ReasonFeeExceeds  = "fee cannot exceed gross amount"
	ReasonBadQuantity = "quantity must be a positive whole number"
)

// ParseAmount parses an optional monetary field. Empty or whitespace-only
// input means the field was omitted and counts as zero. Negative values and
// more than 2 fractional digits are rejected.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Reason: ReasonMalformed}
	}
	if d.IsNegative() {
		return decimal.Zero, &ValidationError{Field: field, Reason: ReasonNegative}
	}
	if d.Exponent() < -2 {
		return decimal.Zero, &ValidationError{Field: field, Reason: ReasonTooPrecise}
	}
	return d, nil
}

// ParseRequiredAmount parses a required monetary field (gross_amount,
// unit_price). Unlike ParseAmount, the value must be strictly positive.
func ParseRequiredAmount(field, s string) (decimal.Decimal, error) {
	d, err := ParseAmount(field, s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, &ValidationError{Field: field, Reason: ReasonNotPositive}
	}
	return d, nil
}

// ParseQuantity parses a line-item quantity: a positive integer. Fractional
// or non-positive quantities are a validation error, not rounded.
func ParseQuantity(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &ValidationError{Field: field, Reason: ReasonBadQuantity}
	}
	return n, nil
}

// Net computes gross - fee. A fee larger than gross fails validation rather
// than being clamped: clamping would misreport the seller's actual take.
func Net(gross, fee decimal.Decimal) (decimal.Decimal, error) {
	if fee.GreaterThan(gross) {
		return decimal.Zero, &ValidationError{Field: "fee_amount", Reason: ReasonFeeExceeds}
	}
	return gross.Sub(fee), nil
}

// LineTotal computes quantity x unitPrice for one invoice line.
func LineTotal(quantity int, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, &ValidationError{Field: "quantity", Reason: ReasonBadQuantity}
	}
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// Line is one (quantity, unit price) entry used for invoice totals.
type Line struct {
	Quantity  int
	UnitPrice decimal.Decimal
}

// Totals holds the derived invoice figures.
type Totals struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// InvoiceTotals computes subtotal = sum of line totals and
// total = subtotal + tax + shipping - discount. The total is deliberately
// not clamped at zero: a discount larger than everything else yields a
// negative total, which the UI surfaces as-is and the service may reject.
func InvoiceTotals(lines []Line, tax, shipping, discount decimal.Decimal) (Totals, error) {
	subtotal := decimal.Zero
	for _, line := range lines {
		lt, err := LineTotal(line.Quantity, line.UnitPrice)
		if err != nil {
			return Totals{}, err
		}
		subtotal = subtotal.Add(lt)
	}
	total := subtotal.Add(tax).Add(shipping).Sub(discount)
	return Totals{Subtotal: subtotal, Total: total}, nil
}

// EstimatedProfit computes net - buyPrice when the linked item has a buy
// price. A nil buyPrice yields nil: absence is a distinct case from a
// zero-cost item.
func EstimatedProfit(net decimal.Decimal, buyPrice *decimal.Decimal) *decimal.Decimal {
	if buyPrice == nil {
		return nil
	}
	profit := net.Sub(*buyPrice)
	return &profit
}

// ItemProfit computes the realized profit for a single completed item sale:
// actual sell price - buy price - fee.
func ItemProfit(actualSellPrice, buyPrice, fee decimal.Decimal) decimal.Decimal {
	return actualSellPrice.Sub(buyPrice).Sub(fee)
}

// Format renders a decimal with exactly 2 fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}
