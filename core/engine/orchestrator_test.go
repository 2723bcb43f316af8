package engine

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"print-cost/core/pricing"
	"print-cost/core/product"
	"print-cost/core/types"
	"print-cost/internal/errors"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Equal(b)
})

func testEstimator() *Estimator {
	return New(product.Default(), types.SheetSRA3())
}

func testStock() *types.StockCatalogSnapshot {
	refreshed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	stock := types.NewStockCatalogSnapshot("snap-1", refreshed, types.CurrencyUSD)
	stock.Put(types.StockItem{PaperType: "coated", Density: 130, UnitPrice: decimal.NewFromFloat(0.14), Available: 24000})
	stock.Put(types.StockItem{PaperType: "cardstock", Density: 300, UnitPrice: decimal.NewFromFloat(0.32), Available: 6000})
	return stock
}

func flyerSpec() types.ProductJobSpec {
	return types.ProductJobSpec{
		ProductType:  "flyer",
		Format:       "A6",
		Quantity:     1000,
		Sides:        1,
		PaperType:    "coated",
		PaperDensity: 130,
		Lamination:   types.LaminationNone,
		Urgency:      types.UrgencyStandard,
		CustomerTier: types.CustomerRegular,
	}
}

func TestEstimateFlyerScenario(t *testing.T) {
	spec := flyerSpec()
	result, err := testEstimator().Estimate(&spec, testStock(), pricing.DefaultPolicy())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	if result.Imposition.ItemsPerSheet != 4 {
		t.Errorf("ItemsPerSheet = %v, want 4", result.Imposition.ItemsPerSheet)
	}
	if result.Imposition.SheetsNeeded != 263 {
		t.Errorf("SheetsNeeded = %d, want 263", result.Imposition.SheetsNeeded)
	}

	// material: 263 sheets x 0.14 = 36.82
	// services: setup 5.00, printing 263 x 0.35 = 92.05
	// subtotal 133.87, volume discount 0.12 -> 117.8056 -> 117.81
	if !result.Subtotal.Equal(decimal.NewFromFloat(133.87)) {
		t.Errorf("Subtotal = %s, want 133.87", result.Subtotal)
	}
	if !result.Total.Equal(decimal.NewFromFloat(117.81)) {
		t.Errorf("Total = %s, want 117.81", result.Total)
	}
	if !result.PricePerItem.Equal(decimal.NewFromFloat(0.12)) {
		t.Errorf("PricePerItem = %s, want 0.12", result.PricePerItem)
	}
	if result.Source != types.SourceLocal {
		t.Errorf("Source = %s, want local", result.Source)
	}
	if result.SnapshotID != "snap-1" {
		t.Errorf("SnapshotID = %s, want snap-1", result.SnapshotID)
	}
	if result.ProductionTime != "3-5 business days" {
		t.Errorf("ProductionTime = %q", result.ProductionTime)
	}
}

func TestEstimateIsIdempotent(t *testing.T) {
	spec := flyerSpec()
	stock := testStock()
	policy := pricing.DefaultPolicy()
	estimator := testEstimator()

	first, err := estimator.Estimate(&spec, stock, policy)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := estimator.Estimate(&spec, stock, policy)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if diff := cmp.Diff(first, second, decimalComparer); diff != "" {
		t.Errorf("results differ between identical runs:\n%s", diff)
	}
}

func TestEstimateFloorScenario(t *testing.T) {
	spec := flyerSpec()
	spec.Quantity = 5
	result, err := testEstimator().Estimate(&spec, testStock(), pricing.DefaultPolicy())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	if !result.Total.Equal(decimal.NewFromFloat(8.00)) {
		t.Errorf("Total = %s, want the 8.00 floor", result.Total)
	}
	if !result.DiscountAmount.IsZero() {
		t.Errorf("DiscountAmount = %s, want 0 under the floor", result.DiscountAmount)
	}
}

func TestEstimatePaperNotFoundAbortsPipeline(t *testing.T) {
	spec := flyerSpec()
	spec.PaperType = "recycled"
	result, err := testEstimator().Estimate(&spec, testStock(), pricing.DefaultPolicy())
	if err == nil {
		t.Fatal("expected PaperTypeNotFound")
	}
	if !errors.IsType(err, errors.TypePaperNotFound) {
		t.Errorf("expected PAPER_TYPE_NOT_FOUND, got %v", err)
	}
	if result != nil {
		t.Error("no result may be produced on failure")
	}
}

func TestEstimateInvalidSpecStopsBeforePipeline(t *testing.T) {
	spec := flyerSpec()
	spec.Quantity = 0
	spec.Sides = 7
	_, err := testEstimator().Estimate(&spec, testStock(), pricing.DefaultPolicy())
	if err == nil {
		t.Fatal("expected ValidationFailed")
	}
	if !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("expected VALIDATION_FAILED, got %v", err)
	}
	fields := FieldErrors(err)
	if fields == nil {
		t.Fatal("expected field errors on the validation error")
	}
	if _, ok := fields["quantity"]; !ok {
		t.Errorf("expected a quantity field error, got %v", fields.Fields())
	}
	if _, ok := fields["sides"]; !ok {
		t.Errorf("expected a sides field error, got %v", fields.Fields())
	}
}

func TestEstimateBookletScalesSheetsByPages(t *testing.T) {
	spec := flyerSpec()
	spec.ProductType = "booklet"
	spec.Format = "A5"
	spec.Pages = 16
	spec.Quantity = 200

	result, err := testEstimator().Estimate(&spec, testStock(), pricing.DefaultPolicy())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}
	// A5 on SRA3: 2x2 = 4 per sheet, ceil(200/4*1.05) = 53 imposed sheets,
	// 16 pages = 4 sheet passes -> 212 material sheets
	wantSheets := decimal.NewFromInt(212)
	if !result.Materials[0].Quantity.Equal(wantSheets) {
		t.Errorf("material sheets = %s, want %s", result.Materials[0].Quantity, wantSheets)
	}
}

func TestEstimateDerivesOptionServiceLines(t *testing.T) {
	spec := flyerSpec()
	spec.ProductType = "business_card"
	spec.Format = "90x50"
	spec.Quantity = 500
	spec.PaperType = "cardstock"
	spec.PaperDensity = 300
	spec.Lamination = types.LaminationMatte
	spec.RoundedCorners = true

	result, err := testEstimator().Estimate(&spec, testStock(), pricing.DefaultPolicy())
	if err != nil {
		t.Fatalf("Estimate failed: %v", err)
	}

	names := make(map[string]bool)
	for _, line := range result.Services {
		names[line.Name] = true
	}
	for _, want := range []string{"press setup", "printing", "lamination (matte)", "rounded corners"} {
		if !names[want] {
			t.Errorf("missing service line %q, have %v", want, names)
		}
	}
}

// stubPricer answers with a fixed quote or error
type stubPricer struct {
	quote *RemoteQuote
	err   error
	calls int
}

func (s *stubPricer) Price(ctx context.Context, spec *types.ProductJobSpec, trim types.TrimSize) (*RemoteQuote, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

func remoteQuote() *RemoteQuote {
	return &RemoteQuote{
		PricePerItem: decimal.NewFromFloat(0.18),
		Materials:    []types.Line{types.NewLine("coated 130", decimal.NewFromInt(263), decimal.NewFromFloat(0.14))},
		Services:     []types.Line{types.NewLine("printing", decimal.NewFromInt(263), decimal.NewFromFloat(0.35))},
	}
}

func TestEstimateRemoteUsesAuthoritativeTotals(t *testing.T) {
	spec := flyerSpec()
	pricer := &stubPricer{quote: remoteQuote()}

	result, err := testEstimator().EstimateRemote(context.Background(), pricer, &spec, testStock())
	if err != nil {
		t.Fatalf("EstimateRemote failed: %v", err)
	}
	if result.Source != types.SourceRemote {
		t.Errorf("Source = %s, want remote", result.Source)
	}
	// 0.18 * 1000
	if !result.Total.Equal(decimal.NewFromFloat(180)) {
		t.Errorf("Total = %s, want 180", result.Total)
	}
}

func TestEstimateRemoteRejectsEmptyLines(t *testing.T) {
	spec := flyerSpec()
	quote := remoteQuote()
	quote.Services = nil
	pricer := &stubPricer{quote: quote}

	_, err := testEstimator().EstimateRemote(context.Background(), pricer, &spec, testStock())
	if err == nil {
		t.Fatal("expected EmptyMaterialsOrServices")
	}
	if !errors.IsType(err, errors.TypeEmptyLines) {
		t.Errorf("expected EMPTY_MATERIALS_OR_SERVICES, got %v", err)
	}
}

func TestEstimateRemoteRejectsNonPositivePrice(t *testing.T) {
	spec := flyerSpec()
	quote := remoteQuote()
	quote.PricePerItem = decimal.Zero
	pricer := &stubPricer{quote: quote}

	_, err := testEstimator().EstimateRemote(context.Background(), pricer, &spec, testStock())
	if err == nil {
		t.Fatal("expected NonPositivePrice")
	}
	if !errors.IsType(err, errors.TypeNonPositivePrice) {
		t.Errorf("expected NON_POSITIVE_PRICE, got %v", err)
	}
}

func TestEstimateRemoteInvalidSpecSkipsRemoteCall(t *testing.T) {
	spec := flyerSpec()
	spec.Quantity = 0
	pricer := &stubPricer{quote: remoteQuote()}

	_, err := testEstimator().EstimateRemote(context.Background(), pricer, &spec, testStock())
	if err == nil {
		t.Fatal("expected ValidationFailed")
	}
	if pricer.calls != 0 {
		t.Errorf("remote pricer called %d times for an invalid spec", pricer.calls)
	}
}
