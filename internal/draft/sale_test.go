package draft

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/as4584/Vendora/internal/api"
	"github.com/as4584/Vendora/internal/ledger"
	"github.com/as4584/Vendora/internal/model"
)

func TestSaleTotals(t *testing.T) {
	sale := &Sale{Method: model.MethodVenmo, GrossAmount: "100.00", FeeAmount: "3.20"}

	totals, err := sale.Totals()
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Net != "96.80" {
		t.Errorf("expected net 96.80, got %q", totals.Net)
	}
	if totals.EstimatedProfit != "" {
		t.Errorf("expected no profit estimate without a linked item, got %q", totals.EstimatedProfit)
	}
}

func TestSaleTotalsWithLinkedItem(t *testing.T) {
	sale := &Sale{
		Method:      model.MethodCash,
		GrossAmount: "50.00",
		Item:        &model.InventoryItem{ID: "i-1", Name: "Vintage tee", BuyPrice: "30.00"},
	}

	totals, err := sale.Totals()
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals.Net != "50.00" {
		t.Errorf("expected net 50.00, got %q", totals.Net)
	}
	if totals.EstimatedProfit != "20.00" {
		t.Errorf("expected profit 20.00, got %q", totals.EstimatedProfit)
	}

	// An item without a recorded cost gives no estimate rather than zero.
	sale.Item.BuyPrice = ""
	totals, err = sale.Totals()
	if err != nil {
		t.Fatalf("Totals without buy price: %v", err)
	}
	if totals.EstimatedProfit != "" {
		t.Errorf("expected no estimate, got %q", totals.EstimatedProfit)
	}
}

func TestSaleTotalsFeeExceedsGross(t *testing.T) {
	sale := &Sale{Method: model.MethodCash, GrossAmount: "5.00", FeeAmount: "6.00"}
	_, err := sale.Totals()
	var verr *ledger.ValidationError
	if !errors.As(err, &verr) || verr.Reason != ledger.ReasonFeeExceeds {
		t.Fatalf("expected fee-exceeds error, got %v", err)
	}
}

func TestSalePayload(t *testing.T) {
	sale := &Sale{
		Method:      model.MethodPayPal,
		GrossAmount: "42.5",
		Notes:       "weekend market",
		Item:        &model.InventoryItem{ID: "i-7"},
	}

	payload, err := sale.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload.GrossAmount != "42.50" {
		t.Errorf("expected normalized gross 42.50, got %q", payload.GrossAmount)
	}
	if payload.FeeAmount != "0.00" {
		t.Errorf("expected omitted fee to default to 0.00, got %q", payload.FeeAmount)
	}
	if payload.ItemID != "i-7" {
		t.Errorf("expected linked item id, got %q", payload.ItemID)
	}
	if payload.ExternalReferenceID == "" {
		t.Error("expected a client reference id")
	}

	// Each payload build gets a fresh reference id.
	second, _ := sale.Payload()
	if second.ExternalReferenceID == payload.ExternalReferenceID {
		t.Error("expected distinct reference ids per build")
	}
}

func TestSalePayloadRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		sale Sale
	}{
		{"unknown method", Sale{Method: "bitcoin", GrossAmount: "10.00"}},
		{"missing gross", Sale{Method: model.MethodCash}},
		{"zero gross", Sale{Method: model.MethodCash, GrossAmount: "0"}},
		{"negative fee", Sale{Method: model.MethodCash, GrossAmount: "10.00", FeeAmount: "-1"}},
		{"overprecise gross", Sale{Method: model.MethodCash, GrossAmount: "10.001"}},
	}
	for i := range cases {
		tc := &cases[i]
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.sale.Payload(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaleSubmitInFlightGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})

	// Only the first request blocks; the retry after the guard re-arms gets
	// an immediate response.
	var firstRequest sync.Once
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		firstRequest.Do(func() {
			close(started)
			<-release
		})
		json.NewEncoder(w).Encode(model.Transaction{ID: "t-1", NetAmount: "10.00"})
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := api.New(server.URL)
	sale := &Sale{Method: model.MethodCash, GrossAmount: "10.00"}

	done := make(chan error, 1)
	go func() {
		_, err := sale.Submit(context.Background(), client)
		done <- err
	}()

	<-started
	// Second tap while the first request is outstanding.
	if _, err := sale.Submit(context.Background(), client); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// Guard re-arms after completion: a retry is allowed.
	if _, err := sale.Submit(context.Background(), client); err != nil {
		t.Fatalf("resubmit after completion: %v", err)
	}
}

func TestSaleSubmitValidationNeverHitsNetwork(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	t.Cleanup(server.Close)

	sale := &Sale{Method: model.MethodCash, GrossAmount: "not-a-number"}
	if _, err := sale.Submit(context.Background(), api.New(server.URL)); err == nil {
		t.Fatal("expected validation error")
	}
	if requests != 0 {
		t.Errorf("validation failure must not reach the network, saw %d requests", requests)
	}
}
