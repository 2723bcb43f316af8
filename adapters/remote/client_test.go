package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"print-cost/core/types"
	"print-cost/internal/errors"
)

func wireSpec() *types.ProductJobSpec {
	return &types.ProductJobSpec{
		ProductType:  "flyer",
		Format:       "A6",
		Quantity:     1000,
		Sides:        2,
		PaperType:    "coated",
		PaperDensity: 130,
		Lamination:   types.LaminationNone,
		Urgency:      types.UrgencyStandard,
		CustomerTier: types.CustomerGold,
		Cutting:      true,
	}
}

func okResponse() map[string]any {
	line := func(name string, qty, unit, total float64) map[string]any {
		return map[string]any{"name": name, "quantity": qty, "unit_price": unit, "total": total}
	}
	return map[string]any{
		"price_per_item": 0.18,
		"materials":      []any{line("coated 130", 263, 0.14, 36.82)},
		"services":       []any{line("printing", 526, 0.35, 184.10)},
		"production_time": "3-5 business days",
	}
}

func TestClientPrice(t *testing.T) {
	var captured estimateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/estimate" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("cannot decode request: %v", err)
		}
		json.NewEncoder(w).Encode(okResponse())
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, nil)
	quote, err := client.Price(context.Background(), wireSpec(), types.TrimSize{WidthMM: 105, HeightMM: 148})
	if err != nil {
		t.Fatalf("Price failed: %v", err)
	}

	if captured.ProductType != "flyer" || captured.Quantity != 1000 {
		t.Errorf("request product/quantity = %s/%d", captured.ProductType, captured.Quantity)
	}
	if captured.TrimWidthMM != 105 || captured.TrimHeightMM != 148 {
		t.Errorf("request trim = %gx%g, want 105x148", captured.TrimWidthMM, captured.TrimHeightMM)
	}
	if captured.Params["customer_tier"] != "gold" {
		t.Errorf("customer_tier param = %q", captured.Params["customer_tier"])
	}
	if captured.Params["cutting"] != "true" {
		t.Errorf("cutting param = %q", captured.Params["cutting"])
	}
	if _, ok := captured.Params["pages"]; ok {
		t.Error("pages param sent for a pageless product")
	}

	if !quote.PricePerItem.Equal(decimal.NewFromFloat(0.18)) {
		t.Errorf("PricePerItem = %s, want 0.18", quote.PricePerItem)
	}
	if len(quote.Materials) != 1 || len(quote.Services) != 1 {
		t.Fatalf("lines = %d materials, %d services", len(quote.Materials), len(quote.Services))
	}
	if !quote.Materials[0].Total.Equal(decimal.NewFromFloat(36.82)) {
		t.Errorf("material total = %s, want 36.82", quote.Materials[0].Total)
	}
	if quote.ProductionTime != "3-5 business days" {
		t.Errorf("ProductionTime = %q", quote.ProductionTime)
	}
}

func TestClientPriceRejectsEmptyLines(t *testing.T) {
	resp := okResponse()
	resp["services"] = []any{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second, nil).Price(context.Background(), wireSpec(), types.TrimSize{WidthMM: 105, HeightMM: 148})
	if !errors.IsType(err, errors.TypeEmptyLines) {
		t.Errorf("error type = %s, want %s", errors.TypeOf(err), errors.TypeEmptyLines)
	}
}

func TestClientPriceRejectsNonPositivePrice(t *testing.T) {
	resp := okResponse()
	resp["price_per_item"] = 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second, nil).Price(context.Background(), wireSpec(), types.TrimSize{WidthMM: 105, HeightMM: 148})
	if !errors.IsType(err, errors.TypeNonPositivePrice) {
		t.Errorf("error type = %s, want %s", errors.TypeOf(err), errors.TypeNonPositivePrice)
	}
}

func TestClientPriceServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second, nil).Price(context.Background(), wireSpec(), types.TrimSize{WidthMM: 105, HeightMM: 148})
	if !errors.IsType(err, errors.TypeRemote) {
		t.Errorf("error type = %s, want %s", errors.TypeOf(err), errors.TypeRemote)
	}
}

func TestClientPriceUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := NewClient(server.URL, time.Second, nil).Price(context.Background(), wireSpec(), types.TrimSize{WidthMM: 105, HeightMM: 148})
	if !errors.IsType(err, errors.TypeRemote) {
		t.Errorf("error type = %s, want %s", errors.TypeOf(err), errors.TypeRemote)
	}
}

func TestClientPriceMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, time.Second, nil).Price(context.Background(), wireSpec(), types.TrimSize{WidthMM: 105, HeightMM: 148})
	if !errors.IsType(err, errors.TypeRemote) {
		t.Errorf("error type = %s, want %s", errors.TypeOf(err), errors.TypeRemote)
	}
}
