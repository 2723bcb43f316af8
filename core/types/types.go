// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "math"

// TrimToleranceMM is the tolerance used when comparing trim sizes
// against catalog entries.
const TrimToleranceMM = 1.0

// TrimSize is the finished, cut size of a printed piece in millimeters
type TrimSize struct {
	// WidthMM is the trim width in millimeters
	WidthMM float64 `json:"width_mm"`

	// HeightMM is the trim height in millimeters
	HeightMM float64 `json:"height_mm"`
}

// IsValid checks that both dimensions are finite and positive
func (t TrimSize) IsValid() bool {
	return t.WidthMM > 0 && t.HeightMM > 0 &&
		!math.IsInf(t.WidthMM, 0) && !math.IsNaN(t.WidthMM) &&
		!math.IsInf(t.HeightMM, 0) && !math.IsNaN(t.HeightMM)
}

// Equals compares two trim sizes within TrimToleranceMM
func (t TrimSize) Equals(other TrimSize) bool {
	return math.Abs(t.WidthMM-other.WidthMM) <= TrimToleranceMM &&
		math.Abs(t.HeightMM-other.HeightMM) <= TrimToleranceMM
}

// AreaMM2 returns the trim area in square millimeters
func (t TrimSize) AreaMM2() float64 {
	return t.WidthMM * t.HeightMM
}

// PressSheet describes one press sheet class. Working dimensions are the
// usable imprint area after trim margins and are strictly smaller than the
// raw sheet.
type PressSheet struct {
	// Class names the sheet class (e.g. "SRA3")
	Class string `json:"class"`

	// RawWidthMM is the physical sheet width
	RawWidthMM float64 `json:"raw_width_mm"`

	// RawHeightMM is the physical sheet height
	RawHeightMM float64 `json:"raw_height_mm"`

	// WorkingWidthMM is the usable imprint width
	WorkingWidthMM float64 `json:"working_width_mm"`

	// WorkingHeightMM is the usable imprint height
	WorkingHeightMM float64 `json:"working_height_mm"`
}

// IsValid checks the working-area invariant
func (p PressSheet) IsValid() bool {
	return p.WorkingWidthMM > 0 && p.WorkingHeightMM > 0 &&
		p.WorkingWidthMM < p.RawWidthMM && p.WorkingHeightMM < p.RawHeightMM
}

// SheetSRA3 is the one sheet class the press currently runs.
// Raw SRA3 is 320x450mm; 7mm grip and trim margins leave 306x436mm usable.
func SheetSRA3() PressSheet {
	return PressSheet{
		Class:           "SRA3",
		RawWidthMM:      320,
		RawHeightMM:     450,
		WorkingWidthMM:  306,
		WorkingHeightMM: 436,
	}
}

// UrgencyTier is a named turnaround-speed class
type UrgencyTier string

const (
	UrgencyStandard UrgencyTier = "standard"
	UrgencyExpress  UrgencyTier = "express"
	UrgencyUrgent   UrgencyTier = "urgent"
)

// String returns the string representation
func (u UrgencyTier) String() string {
	return string(u)
}

// IsValid checks if the tier is known
func (u UrgencyTier) IsValid() bool {
	switch u {
	case UrgencyStandard, UrgencyExpress, UrgencyUrgent:
		return true
	default:
		return false
	}
}

// CustomerTier is a loyalty class assigned by the shop
type CustomerTier string

const (
	CustomerRegular  CustomerTier = "regular"
	CustomerSilver   CustomerTier = "silver"
	CustomerGold     CustomerTier = "gold"
	CustomerPlatinum CustomerTier = "platinum"
)

// String returns the string representation
func (c CustomerTier) String() string {
	return string(c)
}

// IsValid checks if the tier is known
func (c CustomerTier) IsValid() bool {
	switch c {
	case CustomerRegular, CustomerSilver, CustomerGold, CustomerPlatinum:
		return true
	default:
		return false
	}
}

// Lamination is a finishing option applied after printing
type Lamination string

const (
	LaminationNone   Lamination = "none"
	LaminationMatte  Lamination = "matte"
	LaminationGlossy Lamination = "glossy"
	LaminationSoft   Lamination = "soft_touch"
)

// IsValid checks if the lamination kind is known
func (l Lamination) IsValid() bool {
	switch l {
	case LaminationNone, LaminationMatte, LaminationGlossy, LaminationSoft:
		return true
	default:
		return false
	}
}
