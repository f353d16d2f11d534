// Package export writes fetched listings to local CSV files, using the same
// column layout as the service's own export endpoints so the two are
// interchangeable in a spreadsheet.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/as4584/Vendora/internal/model"
)

// WriteInventory writes inventory items as CSV.
func WriteInventory(w io.Writer, items []model.InventoryItem) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Name", "Category", "SKU", "UPC", "Size", "Color", "Condition",
		"Buy Price", "Expected Sell Price", "Actual Sell Price",
		"Status", "Platform", "Created At",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, item := range items {
		row := []string{
			item.Name,
			item.Category,
			item.SKU,
			item.UPC,
			item.Size,
			item.Color,
			item.Condition,
			item.BuyPrice,
			item.ExpectedSellPrice,
			item.ActualSellPrice,
			item.Status,
			item.Platform,
			item.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing item row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTransactions writes transactions as CSV.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Date", "Method", "Status", "Gross Amount", "Fee Amount",
		"Net Amount", "Is Refund", "Notes",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, txn := range txns {
		refund := "no"
		if txn.IsRefund {
			refund = "yes"
		}
		row := []string{
			txn.CreatedAt.Format(time.RFC3339),
			txn.Method,
			txn.Status,
			txn.GrossAmount,
			txn.FeeAmount,
			txn.NetAmount,
			refund,
			txn.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing transaction row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
