package imposition

import (
	"testing"

	"print-cost/core/types"
	"print-cost/internal/errors"
)

func TestComputeA6OnSRA3(t *testing.T) {
	trim := types.TrimSize{WidthMM: 105, HeightMM: 148}
	result, err := Compute(trim, types.SheetSRA3(), 1000, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	// floor(306/105) * floor(436/148) = 2 * 2
	if result.ItemsPerSheet != 4 {
		t.Errorf("ItemsPerSheet = %v, want 4", result.ItemsPerSheet)
	}
	// ceil(1000/4 * 1.05)
	if result.SheetsNeeded != 263 {
		t.Errorf("SheetsNeeded = %d, want 263", result.SheetsNeeded)
	}
}

func TestComputeInfeasibleFormat(t *testing.T) {
	trim := types.TrimSize{WidthMM: 400, HeightMM: 500}
	_, err := Compute(trim, types.SheetSRA3(), 10, DefaultOptions())
	if err == nil {
		t.Fatal("expected InfeasibleFormat, got nil")
	}
	if !errors.IsType(err, errors.TypeInfeasibleFormat) {
		t.Errorf("expected INFEASIBLE_FORMAT, got %v", err)
	}
}

func TestSheetsNeededMonotonicInQuantity(t *testing.T) {
	trim := types.TrimSize{WidthMM: 105, HeightMM: 148}
	sheet := types.SheetSRA3()
	prev := 0
	for quantity := 1; quantity <= 2000; quantity += 7 {
		result, err := Compute(trim, sheet, quantity, DefaultOptions())
		if err != nil {
			t.Fatalf("Compute(quantity=%d) failed: %v", quantity, err)
		}
		if result.SheetsNeeded < prev {
			t.Fatalf("SheetsNeeded decreased: quantity=%d sheets=%d prev=%d", quantity, result.SheetsNeeded, prev)
		}
		prev = result.SheetsNeeded
	}
}

func TestComputeRatioOverride(t *testing.T) {
	// A2 needs two sheets per finished item.
	trim := types.TrimSize{WidthMM: 420, HeightMM: 594}
	opts := DefaultOptions()
	opts.ItemsPerSheetOverride = 0.5
	result, err := Compute(trim, types.SheetSRA3(), 10, opts)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if result.ItemsPerSheet != 0.5 {
		t.Errorf("ItemsPerSheet = %v, want 0.5", result.ItemsPerSheet)
	}
	// ceil(10/0.5 * 1.05) = 21
	if result.SheetsNeeded != 21 {
		t.Errorf("SheetsNeeded = %d, want 21", result.SheetsNeeded)
	}
}

func TestComputeRollMaterial(t *testing.T) {
	opts := DefaultOptions()
	opts.Roll = true
	result, err := Compute(types.TrimSize{WidthMM: 2000, HeightMM: 1000}, types.SheetSRA3(), 3, opts)
	if err != nil {
		t.Fatalf("Compute failed for roll material: %v", err)
	}
	if !result.RollMaterial {
		t.Error("RollMaterial flag not set")
	}
	if result.ItemsPerSheet != 1 {
		t.Errorf("roll ItemsPerSheet = %v, want 1", result.ItemsPerSheet)
	}
}

func TestComputeMinimumOneSheet(t *testing.T) {
	trim := types.TrimSize{WidthMM: 74, HeightMM: 105}
	result, err := Compute(trim, types.SheetSRA3(), 1, DefaultOptions())
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if result.SheetsNeeded < 1 {
		t.Errorf("SheetsNeeded = %d, want >= 1", result.SheetsNeeded)
	}
}

func TestComputeRejectsBadQuantity(t *testing.T) {
	trim := types.TrimSize{WidthMM: 105, HeightMM: 148}
	if _, err := Compute(trim, types.SheetSRA3(), 0, DefaultOptions()); err == nil {
		t.Error("expected error for quantity 0")
	}
}
