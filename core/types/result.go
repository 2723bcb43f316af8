// Package types - Estimation result types
package types

import "github.com/shopspring/decimal"

// ImpositionResult is the output of the imposition calculation.
// Derived deterministically from trim size, press sheet and quantity;
// never mutated after creation.
type ImpositionResult struct {
	// ItemsPerSheet is the number of finished items obtainable from one
	// press sheet. Below 1 for catalog formats that need several sheets
	// per item.
	ItemsPerSheet float64 `json:"items_per_sheet"`

	// SheetsNeeded is the press sheet count including waste allowance
	SheetsNeeded int `json:"sheets_needed"`

	// WasteRatio is the waste allowance applied
	WasteRatio float64 `json:"waste_ratio"`

	// RollMaterial marks length-based products where sheet imposition
	// does not apply
	RollMaterial bool `json:"roll_material,omitempty"`
}

// EstimateSource identifies which path produced an estimate
type EstimateSource string

const (
	// SourceLocal is the local preview/fallback calculation
	SourceLocal EstimateSource = "local"

	// SourceRemote is the authoritative remote pricing service
	SourceRemote EstimateSource = "remote"
)

// EstimationResult is the immutable snapshot returned to the caller.
// It is never partially filled: the pipeline yields either a complete
// result or a typed error.
type EstimationResult struct {
	// Spec is the job specification the estimate was produced for
	Spec ProductJobSpec `json:"spec"`

	// Trim is the resolved trim size
	Trim TrimSize `json:"trim"`

	// Imposition is the sheet layout calculation
	Imposition ImpositionResult `json:"imposition"`

	// Materials are the priced stock consumption lines
	Materials []Line `json:"materials"`

	// Services are the priced work lines
	Services []Line `json:"services"`

	// Subtotal is the pre-adjustment sum of all lines, full precision
	Subtotal decimal.Decimal `json:"subtotal"`

	// DiscountAmount is the discount granted; zero when the minimum-order
	// floor overrides the discounted value
	DiscountAmount decimal.Decimal `json:"discount_amount"`

	// Total is the final order price, rounded to 2 fractional digits
	Total decimal.Decimal `json:"total"`

	// PricePerItem is Total / Quantity, rounded to 2 fractional digits
	PricePerItem decimal.Decimal `json:"price_per_item"`

	// Currency is the price currency
	Currency Currency `json:"currency"`

	// ProductionTime is the human-readable turnaround label
	ProductionTime string `json:"production_time"`

	// Source identifies the pricing path that produced this result
	Source EstimateSource `json:"source"`

	// SnapshotID identifies the stock catalog snapshot used
	SnapshotID string `json:"snapshot_id,omitempty"`
}
