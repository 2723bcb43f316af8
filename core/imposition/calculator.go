// Package imposition computes how many finished items fit on one press
// sheet and how many sheets a job consumes. The layout is a plain grid
// in the orientation the trim size already encodes; there is no rotation
// search. Higher-yield strategies belong here as explicit options, never
// as silent changes to the default.
package imposition

import (
	"math"

	"print-cost/core/types"
	"print-cost/internal/errors"
)

// DefaultWasteRatio is the make-ready allowance applied when the caller
// does not specify one.
const DefaultWasteRatio = 0.05

// epsilon guards the division for fractional items-per-sheet ratios.
const epsilon = 1e-9

// Options adjust a single imposition calculation
type Options struct {
	// WasteRatio is the make-ready allowance, e.g. 0.05 for 5%
	WasteRatio float64

	// ItemsPerSheetOverride bypasses the grid calculation when > 0.
	// Catalog formats larger than the working sheet use this with a
	// fractional value (several sheets per item).
	ItemsPerSheetOverride float64

	// Roll marks length-based materials where sheet imposition does
	// not apply; the per-length calculation is the caller's concern.
	Roll bool
}

// DefaultOptions returns options with the standard waste allowance
func DefaultOptions() Options {
	return Options{WasteRatio: DefaultWasteRatio}
}

// CheckFeasible verifies the piece can be cut from the working sheet at
// all. Roll materials are exempt and must not be passed here.
func CheckFeasible(trim types.TrimSize, sheet types.PressSheet) error {
	if trim.WidthMM > sheet.WorkingWidthMM || trim.HeightMM > sheet.WorkingHeightMM {
		return errors.InfeasibleFormat(trim.WidthMM, trim.HeightMM, sheet.WorkingWidthMM, sheet.WorkingHeightMM)
	}
	return nil
}

// Compute derives the imposition for a trim size, press sheet and target
// quantity. The result is deterministic and never mutated afterwards.
func Compute(trim types.TrimSize, sheet types.PressSheet, quantity int, opts Options) (types.ImpositionResult, error) {
	if quantity < 1 {
		return types.ImpositionResult{}, errors.Newf(errors.TypeValidation, "quantity must be >= 1, got %d", quantity)
	}
	if opts.WasteRatio < 0 {
		return types.ImpositionResult{}, errors.Newf(errors.TypeValidation, "waste ratio must be >= 0, got %v", opts.WasteRatio)
	}

	if opts.Roll {
		return types.ImpositionResult{
			ItemsPerSheet: 1,
			SheetsNeeded:  int(math.Ceil(float64(quantity) * (1 + opts.WasteRatio))),
			WasteRatio:    opts.WasteRatio,
			RollMaterial:  true,
		}, nil
	}

	itemsPerSheet := opts.ItemsPerSheetOverride
	if itemsPerSheet <= 0 {
		if err := CheckFeasible(trim, sheet); err != nil {
			return types.ImpositionResult{}, err
		}
		across := math.Floor(sheet.WorkingWidthMM / trim.WidthMM)
		down := math.Floor(sheet.WorkingHeightMM / trim.HeightMM)
		itemsPerSheet = math.Max(across*down, 0)
		if itemsPerSheet < 1 {
			// Feasibility passed, so at least one piece fits.
			return types.ImpositionResult{}, errors.Internal("grid imposition produced zero items per sheet", nil)
		}
	}

	sheets := math.Ceil(float64(quantity) / math.Max(itemsPerSheet, epsilon) * (1 + opts.WasteRatio))
	if sheets < 1 {
		sheets = 1
	}

	return types.ImpositionResult{
		ItemsPerSheet: itemsPerSheet,
		SheetsNeeded:  int(sheets),
		WasteRatio:    opts.WasteRatio,
	}, nil
}
