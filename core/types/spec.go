// Package types - Job specification types
package types

import "sort"

// ProductJobSpec is the complete description of one print job as entered
// by the customer. It is constructed by the calling surface, re-validated
// on every field change and consumed read-only by the engine.
type ProductJobSpec struct {
	// ProductType is the product catalog key (e.g. "business_card")
	ProductType string `json:"product_type"`

	// Format is the format token: a catalog name ("A6") or a
	// dimension string ("100x150"). Ignored when a custom size is set.
	Format string `json:"format,omitempty"`

	// CustomWidthMM is an explicit trim width; takes precedence over Format
	CustomWidthMM *float64 `json:"custom_width_mm,omitempty"`

	// CustomHeightMM is an explicit trim height; takes precedence over Format
	CustomHeightMM *float64 `json:"custom_height_mm,omitempty"`

	// Quantity is the number of finished items, >= 1
	Quantity int `json:"quantity"`

	// Sides is 1 or 2
	Sides int `json:"sides"`

	// PaperType is the stock catalog paper key
	PaperType string `json:"paper_type"`

	// PaperDensity is the paper weight in g/m2
	PaperDensity int `json:"paper_density"`

	// Lamination is the lamination kind
	Lamination Lamination `json:"lamination"`

	// Urgency is the turnaround tier
	Urgency UrgencyTier `json:"urgency"`

	// CustomerTier is the ordering customer's loyalty tier
	CustomerTier CustomerTier `json:"customer_tier"`

	// Pages is the page count for page-bearing products (booklets)
	Pages int `json:"pages,omitempty"`

	// Cutting requests contour/format cutting
	Cutting bool `json:"cutting,omitempty"`

	// Folding requests folding
	Folding bool `json:"folding,omitempty"`

	// Magnetic requests magnetic backing
	Magnetic bool `json:"magnetic,omitempty"`

	// RoundedCorners requests corner rounding
	RoundedCorners bool `json:"rounded_corners,omitempty"`
}

// HasCustomSize reports whether an explicit trim size pair is present
func (s *ProductJobSpec) HasCustomSize() bool {
	return s.CustomWidthMM != nil && s.CustomHeightMM != nil
}

// ValidationErrors maps field names to human-readable messages.
// An empty map means the spec is valid.
type ValidationErrors map[string]string

// Add records a message for a field, keeping the first message per field
func (v ValidationErrors) Add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

// IsValid reports whether no errors were recorded
func (v ValidationErrors) IsValid() bool {
	return len(v) == 0
}

// Fields returns the error field names in sorted order
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}
