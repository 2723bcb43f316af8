package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"print-cost/adapters/warehouse"
	"print-cost/core/engine"
	"print-cost/core/product"
	"print-cost/core/types"
	"print-cost/internal/errors"
)

const testCatalog = `
snapshot {
  id = "snap-api"
}

paper "coated" {
  density "130" {
    unit_price = 0.14
    available  = 24000
  }
}
`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.hcl")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	cache := warehouse.NewSnapshotCache(path, time.Hour, nil)
	if _, _, err := cache.Refresh(); err != nil {
		t.Fatalf("catalog refresh failed: %v", err)
	}
	estimator := engine.New(product.Default(), types.SheetSRA3())
	server := httptest.NewServer(NewServer(estimator, cache, nil, "test", nil).Handler())
	t.Cleanup(server.Close)
	return server
}

func flyerBody() map[string]any {
	return map[string]any{
		"product_type":  "flyer",
		"format":        "A6",
		"quantity":      1000,
		"sides":         1,
		"paper_type":    "coated",
		"paper_density": 130,
		"lamination":    "none",
		"urgency":       "standard",
		"customer_tier": "regular",
	}
}

func postJSON(t *testing.T, url string, body any) (*http.Response, Envelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("cannot decode envelope: %v", err)
	}
	return resp, env
}

func TestHealthEndpoint(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatal(err)
	}
	if health.Status != "ok" || health.Version != "test" {
		t.Errorf("health = %+v", health)
	}
	if health.SnapshotID != "snap-api" {
		t.Errorf("SnapshotID = %q, want snap-api", health.SnapshotID)
	}
}

func TestEstimateEndpoint(t *testing.T) {
	server := testServer(t)

	resp, env := postJSON(t, server.URL+"/api/v1/estimate", flyerBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (error: %+v)", resp.StatusCode, env.Error)
	}
	if env.RequestID == "" {
		t.Error("envelope has no request ID")
	}
	if env.Result == nil {
		t.Fatal("envelope has no result")
	}
	if !env.Result.Total.Equal(decimal.NewFromFloat(117.81)) {
		t.Errorf("Total = %s, want 117.81", env.Result.Total)
	}
	if env.Result.SnapshotID != "snap-api" {
		t.Errorf("SnapshotID = %q, want snap-api", env.Result.SnapshotID)
	}
	if env.Result.Source != types.SourceLocal {
		t.Errorf("Source = %q, want local", env.Result.Source)
	}
}

func TestEstimateInvalidSpec(t *testing.T) {
	server := testServer(t)

	body := flyerBody()
	body["quantity"] = 0
	body["paper_type"] = ""

	resp, env := postJSON(t, server.URL+"/api/v1/estimate", body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if env.Error == nil {
		t.Fatal("envelope has no error body")
	}
	if env.Error.Kind != string(errors.TypeValidation) {
		t.Errorf("kind = %q, want %s", env.Error.Kind, errors.TypeValidation)
	}
	for _, field := range []string{"quantity", "paper_type"} {
		if _, ok := env.Error.Fields[field]; !ok {
			t.Errorf("missing field error for %q, have %v", field, env.Error.Fields.Fields())
		}
	}
}

func TestEstimatePaperMiss(t *testing.T) {
	server := testServer(t)

	body := flyerBody()
	body["paper_type"] = "recycled"

	resp, env := postJSON(t, server.URL+"/api/v1/estimate", body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Kind != string(errors.TypePaperNotFound) {
		t.Fatalf("error = %+v, want kind %s", env.Error, errors.TypePaperNotFound)
	}
}

func TestEstimateMalformedBody(t *testing.T) {
	server := testServer(t)

	resp, err := http.Post(server.URL+"/api/v1/estimate", "application/json", bytes.NewReader([]byte("{")))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestValidateEndpoint(t *testing.T) {
	server := testServer(t)

	// A valid spec answers with an empty envelope.
	resp, env := postJSON(t, server.URL+"/api/v1/validate", flyerBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if env.Error != nil {
		t.Errorf("valid spec produced error %+v", env.Error)
	}

	body := flyerBody()
	body["sides"] = 3
	resp, env = postJSON(t, server.URL+"/api/v1/validate", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 for validate", resp.StatusCode)
	}
	if env.Error == nil {
		t.Fatal("invalid spec produced no error body")
	}
	if _, ok := env.Error.Fields["sides"]; !ok {
		t.Errorf("missing sides field error, have %v", env.Error.Fields.Fields())
	}
}

func TestFormatsEndpoint(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/api/v1/formats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var formats []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&formats); err != nil {
		t.Fatal(err)
	}
	if len(formats) == 0 {
		t.Fatal("no formats listed")
	}
}

func TestProductsEndpoint(t *testing.T) {
	server := testServer(t)

	resp, err := http.Get(server.URL + "/api/v1/products")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var products []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		t.Fatal(err)
	}
	if len(products) == 0 {
		t.Fatal("no products listed")
	}
}
