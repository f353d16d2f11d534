package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/as4584/Vendora/internal/model"
)

// newTestClient wires a Client to a fake Vendora service.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL)
}

func TestLoginStoresToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "seller@example.com" || req.Password != "hunter22" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
			return
		}
		json.NewEncoder(w).Encode(TokenResponse{AccessToken: "tok-1", TokenType: "bearer"})
	})
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
			return
		}
		json.NewEncoder(w).Encode(model.User{ID: "u-1", Email: "seller@example.com"})
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	token, err := client.Login(ctx, LoginRequest{Email: "seller@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token.AccessToken != "tok-1" {
		t.Errorf("expected token 'tok-1', got %q", token.AccessToken)
	}

	// The token must ride along on subsequent requests.
	user, err := client.Me(ctx)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if user.Email != "seller@example.com" {
		t.Errorf("expected seller email, got %q", user.Email)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials"})
	})

	client := newTestClient(t, mux)
	_, err := client.Login(context.Background(), LoginRequest{Email: "x", Password: "y"})
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid credentials" {
		t.Errorf("expected plain detail message, got %v", err)
	}
}

func TestListItems(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /inventory", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("page"); got != "2" {
			t.Errorf("expected page=2, got %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "10" {
			t.Errorf("expected per_page=10, got %q", got)
		}
		json.NewEncoder(w).Encode(model.PaginatedItems{
			Items: []model.InventoryItem{{ID: "i-1", Name: "Jordan 4", Status: model.StatusListed}},
			Total: 11, Page: 2, PerPage: 10, Pages: 2,
		})
	})

	client := newTestClient(t, mux)
	page, err := client.ListItems(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].Name != "Jordan 4" {
		t.Errorf("unexpected items: %+v", page.Items)
	}
	if page.Total != 11 {
		t.Errorf("expected total 11, got %d", page.Total)
	}
}

func TestUpdateItemStatusConflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /inventory/i-1/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"detail": map[string]any{
				"error":               "invalid_transition",
				"message":             "Cannot transition from 'sold' to 'in_stock'.",
				"current_status":      "sold",
				"target_status":       "in_stock",
				"allowed_transitions": []string{"shipped", "paid"},
			},
		})
	})

	client := newTestClient(t, mux)
	_, err := client.UpdateItemStatus(context.Background(), "i-1", model.StatusInStock)
	if err == nil {
		t.Fatal("expected rejection")
	}
	if !IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Code != "invalid_transition" {
		t.Errorf("expected code invalid_transition, got %q", apiErr.Code)
	}
	if apiErr.CurrentStatus != "sold" {
		t.Errorf("expected current_status sold, got %q", apiErr.CurrentStatus)
	}
	if len(apiErr.AllowedTransitions) != 2 {
		t.Errorf("expected allowed transitions, got %v", apiErr.AllowedTransitions)
	}
}

func TestDeleteItemNoContent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /inventory/i-9", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := newTestClient(t, mux)
	if err := client.DeleteItem(context.Background(), "i-9"); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
}

func TestCreateTransaction(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		var payload TransactionPayload
		json.NewDecoder(r.Body).Decode(&payload)
		if payload.GrossAmount != "100.00" || payload.FeeAmount != "3.20" {
			t.Errorf("unexpected payload amounts: %+v", payload)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.Transaction{
			ID:          "t-1",
			Method:      payload.Method,
			GrossAmount: payload.GrossAmount,
			FeeAmount:   payload.FeeAmount,
			NetAmount:   "96.80",
			Status:      model.TxnStatusCompleted,
		})
	})

	client := newTestClient(t, mux)
	txn, err := client.CreateTransaction(context.Background(), TransactionPayload{
		Method:      model.MethodPayPal,
		GrossAmount: "100.00",
		FeeAmount:   "3.20",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	// The service's net is authoritative, whatever the client estimated.
	if txn.NetAmount != "96.80" {
		t.Errorf("expected net 96.80, got %q", txn.NetAmount)
	}
}

func TestTransientError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing is listening anymore

	client := New(server.URL)
	_, err := client.GetDashboard(context.Background())
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient error, got %v", err)
	}
}

func TestExportInventoryRaw(t *testing.T) {
	const csv = "id,name,status\ni-1,Jordan 4,listed\n"
	mux := http.NewServeMux()
	mux.HandleFunc("GET /export/inventory", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(csv))
	})

	client := newTestClient(t, mux)
	data, err := client.ExportInventory(context.Background())
	if err != nil {
		t.Fatalf("ExportInventory: %v", err)
	}
	if string(data) != csv {
		t.Errorf("unexpected export body: %q", data)
	}
}
