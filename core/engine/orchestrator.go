// Package engine composes format resolution, imposition, material
// matching and pricing into the single estimate operation the rest of
// the application consumes. The pipeline is synchronous and
// side-effect-free: a run is a pure function of (spec, snapshot, policy)
// and yields a complete result or a typed error, never a partial result.
package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"print-cost/core/format"
	"print-cost/core/imposition"
	"print-cost/core/material"
	"print-cost/core/pricing"
	"print-cost/core/product"
	"print-cost/core/types"
	"print-cost/core/validate"
	"print-cost/internal/errors"
)

// State tracks one spec's estimation lifecycle
type State int

const (
	StateIdle State = iota
	StateValidating
	StateInvalid
	StateEstimating
	StateEstimated
	StateFailed
)

// String returns the state name
func (s State) String() string {
	names := []string{"idle", "validating", "invalid", "estimating", "estimated", "failed"}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// RemoteQuote is the authoritative answer of the remote pricing service
type RemoteQuote struct {
	// PricePerItem is the final per-unit price
	PricePerItem decimal.Decimal

	// Materials are the service-supplied material lines
	Materials []types.Line

	// Services are the service-supplied work lines
	Services []types.Line

	// ProductionTime is the service-supplied turnaround label, optional
	ProductionTime string
}

// RemotePricer delegates pricing to the production pricing service
type RemotePricer interface {
	// Price requests a quote for a resolved job. Transport failures
	// surface as RemoteUnavailable errors.
	Price(ctx context.Context, spec *types.ProductJobSpec, trim types.TrimSize) (*RemoteQuote, error)
}

// Estimator runs the estimation pipeline
type Estimator struct {
	products *product.Registry
	sheet    types.PressSheet
	waste    float64
}

// New creates an estimator over a product catalog and press sheet class
func New(products *product.Registry, sheet types.PressSheet) *Estimator {
	return &Estimator{
		products: products,
		sheet:    sheet,
		waste:    imposition.DefaultWasteRatio,
	}
}

// WithWasteRatio overrides the default waste allowance
func (e *Estimator) WithWasteRatio(ratio float64) *Estimator {
	e.waste = ratio
	return e
}

// Sheet returns the press sheet the estimator imposes on
func (e *Estimator) Sheet() types.PressSheet {
	return e.sheet
}

// Products returns the product catalog in use
func (e *Estimator) Products() *product.Registry {
	return e.products
}

// Validate runs the full field validation for a spec
func (e *Estimator) Validate(spec *types.ProductJobSpec, stock *types.StockCatalogSnapshot) types.ValidationErrors {
	return validate.Validate(spec, validate.Input{
		Products: e.products,
		Sheet:    e.sheet,
		Stock:    stock,
	})
}

// Estimate runs the local pipeline: validation, format resolution,
// imposition, material matching and price composition, in that order.
// The first failing step aborts the run. Structural validation runs
// without the snapshot so a stock miss surfaces as its own typed error
// from the material matcher, not as a generic validation failure.
func (e *Estimator) Estimate(spec *types.ProductJobSpec, stock *types.StockCatalogSnapshot, policy *pricing.Policy) (*types.EstimationResult, error) {
	if errs := e.Validate(spec, nil); !errs.IsValid() {
		return nil, validationError(errs)
	}

	trim, imp, err := e.resolveAndImpose(spec)
	if err != nil {
		return nil, err
	}

	entry, ok := e.products.Get(spec.ProductType)
	if !ok {
		return nil, errors.Config("product type not in catalog: " + spec.ProductType)
	}

	sheets := materialSheets(spec, entry, imp)
	match, err := material.FindStock(stock, spec.PaperType, spec.PaperDensity, sheets)
	if err != nil {
		return nil, err
	}
	materials := []types.Line{match.Line()}

	services := deriveServices(spec, entry, sheets)
	if len(services) == 0 {
		return nil, errors.New(errors.TypeEmptyLines, "no service lines derived; product rates are not configured")
	}

	breakdown, err := pricing.Price(spec, materials, services, policy)
	if err != nil {
		return nil, err
	}

	return &types.EstimationResult{
		Spec:           *spec,
		Trim:           trim,
		Imposition:     imp,
		Materials:      materials,
		Services:       services,
		Subtotal:       breakdown.Subtotal,
		DiscountAmount: breakdown.DiscountAmount,
		Total:          breakdown.Total,
		PricePerItem:   breakdown.PricePerItem,
		Currency:       stock.Currency,
		ProductionTime: product.ProductionTimeLabel(spec.Urgency),
		Source:         types.SourceLocal,
		SnapshotID:     stock.ID,
	}, nil
}

// EstimateRemote runs validation and imposition locally, then delegates
// pricing to the remote service. The service's totals are authoritative;
// an empty line list or a non-positive price is a hard configuration
// error, never zero cost.
func (e *Estimator) EstimateRemote(ctx context.Context, remote RemotePricer, spec *types.ProductJobSpec, stock *types.StockCatalogSnapshot) (*types.EstimationResult, error) {
	if errs := e.Validate(spec, nil); !errs.IsValid() {
		return nil, validationError(errs)
	}

	trim, imp, err := e.resolveAndImpose(spec)
	if err != nil {
		return nil, err
	}

	quote, err := remote.Price(ctx, spec, trim)
	if err != nil {
		return nil, err
	}
	if len(quote.Materials) == 0 || len(quote.Services) == 0 {
		return nil, errors.New(errors.TypeEmptyLines,
			"remote pricing returned no material or service lines; product configuration is incomplete")
	}
	if !quote.PricePerItem.IsPositive() {
		return nil, errors.Newf(errors.TypeNonPositivePrice,
			"remote pricing returned non-positive per-item price %s", quote.PricePerItem)
	}

	quantity := decimal.NewFromInt(int64(spec.Quantity))
	total := quote.PricePerItem.Mul(quantity).Round(2)
	subtotal := types.SumLines(quote.Materials).Add(types.SumLines(quote.Services))

	productionTime := quote.ProductionTime
	if productionTime == "" {
		productionTime = product.ProductionTimeLabel(spec.Urgency)
	}

	return &types.EstimationResult{
		Spec:           *spec,
		Trim:           trim,
		Imposition:     imp,
		Materials:      quote.Materials,
		Services:       quote.Services,
		Subtotal:       subtotal,
		DiscountAmount: decimal.Zero,
		Total:          total,
		PricePerItem:   quote.PricePerItem.Round(2),
		Currency:       stock.Currency,
		ProductionTime: productionTime,
		Source:         types.SourceRemote,
		SnapshotID:     stock.ID,
	}, nil
}

// resolveAndImpose runs format resolution and imposition for a validated spec
func (e *Estimator) resolveAndImpose(spec *types.ProductJobSpec) (types.TrimSize, types.ImpositionResult, error) {
	trim, err := format.Resolve(spec.Format, spec.CustomWidthMM, spec.CustomHeightMM)
	if err != nil {
		return types.TrimSize{}, types.ImpositionResult{}, err
	}

	opts := imposition.Options{WasteRatio: e.waste}
	if entry, ok := e.products.Get(spec.ProductType); ok && entry.Roll {
		opts.Roll = true
	}
	if !spec.HasCustomSize() {
		if ratio, ok := format.ItemsPerSheetOverride(spec.Format); ok {
			opts.ItemsPerSheetOverride = ratio
		}
	}

	imp, err := imposition.Compute(trim, e.sheet, spec.Quantity, opts)
	if err != nil {
		return types.TrimSize{}, types.ImpositionResult{}, err
	}
	return trim, imp, nil
}

// materialSheets scales the imposed sheet count for page-bearing
// products: every four pages consume one additional press sheet pass.
func materialSheets(spec *types.ProductJobSpec, entry product.Entry, imp types.ImpositionResult) int {
	sheets := imp.SheetsNeeded
	if entry.Capabilities.HasPages && spec.Pages > 4 {
		sheets *= spec.Pages / 4
	}
	return sheets
}

// deriveServices builds the work lines a job needs from its option flags
// and the imposed sheet count, priced at the product's standard rates.
func deriveServices(spec *types.ProductJobSpec, entry product.Entry, sheets int) []types.Line {
	one := decimal.NewFromInt(1)
	sheetQty := decimal.NewFromInt(int64(sheets))
	sideQty := sheetQty.Mul(decimal.NewFromInt(int64(spec.Sides)))
	itemQty := decimal.NewFromInt(int64(spec.Quantity))

	lines := []types.Line{
		types.NewLine("press setup", one, entry.Rates.Setup),
		types.NewLine("printing", sideQty, entry.Rates.Impression),
	}

	if entry.Capabilities.HasLamination && spec.Lamination != types.LaminationNone {
		lines = append(lines, types.NewLine("lamination ("+string(spec.Lamination)+")", sideQty, entry.Rates.LaminationPerSide))
	}
	if entry.Capabilities.HasCutting && spec.Cutting {
		lines = append(lines, types.NewLine("cutting", sheetQty, entry.Rates.Cutting))
	}
	if entry.Capabilities.HasFolding && spec.Folding {
		lines = append(lines, types.NewLine("folding", itemQty, entry.Rates.Folding))
	}
	if entry.Capabilities.HasRoundedCorners && spec.RoundedCorners {
		lines = append(lines, types.NewLine("rounded corners", itemQty, entry.Rates.RoundedCorners))
	}
	if entry.Capabilities.HasMagnetic && spec.Magnetic {
		lines = append(lines, types.NewLine("magnetic backing", itemQty, entry.Rates.MagneticPerItem))
	}

	return lines
}

// validationError wraps field errors into a single typed error carrying
// the full field mapping in its context.
func validationError(errs types.ValidationErrors) error {
	e := errors.Validation("job specification is invalid")
	for field, msg := range errs {
		e = e.WithContext(field, msg)
	}
	return e
}

// FieldErrors extracts the field mapping from a validation error, or nil
func FieldErrors(err error) types.ValidationErrors {
	domainErr, ok := err.(*errors.Error)
	if !ok || domainErr.Type != errors.TypeValidation {
		return nil
	}
	fields := types.ValidationErrors{}
	for k, v := range domainErr.Context {
		if msg, ok := v.(string); ok {
			fields[k] = msg
		}
	}
	return fields
}
