// Package format - Catalog format resolution
package format

import (
	"sort"
	"strings"

	"print-cost/core/types"
	"print-cost/internal/errors"
)

// catalogEntry is one standard format. ItemsPerSheet is an imposition
// override for formats that do not grid-pack onto the working sheet:
// below 1 means several sheets per finished item, 1 means full-sheet.
// Zero means the grid calculation applies.
type catalogEntry struct {
	trim          types.TrimSize
	itemsPerSheet float64
}

// catalog is the fixed table of standard formats, keyed lower-case.
var catalog = map[string]catalogEntry{
	"a0":   {trim: types.TrimSize{WidthMM: 841, HeightMM: 1189}, itemsPerSheet: 0.125},
	"a1":   {trim: types.TrimSize{WidthMM: 594, HeightMM: 841}, itemsPerSheet: 0.25},
	"a2":   {trim: types.TrimSize{WidthMM: 420, HeightMM: 594}, itemsPerSheet: 0.5},
	"a3":   {trim: types.TrimSize{WidthMM: 297, HeightMM: 420}},
	"a4":   {trim: types.TrimSize{WidthMM: 210, HeightMM: 297}},
	"a5":   {trim: types.TrimSize{WidthMM: 148, HeightMM: 210}},
	"a6":   {trim: types.TrimSize{WidthMM: 105, HeightMM: 148}},
	"a7":   {trim: types.TrimSize{WidthMM: 74, HeightMM: 105}},
	"dl":   {trim: types.TrimSize{WidthMM: 99, HeightMM: 210}},
	"sra3": {trim: types.TrimSize{WidthMM: 320, HeightMM: 450}, itemsPerSheet: 1},
}

// Resolve turns a format token or an explicit custom pair into a trim size.
// A complete custom pair takes precedence over any token. Tokens are matched
// case-insensitively against the catalog; tokens that are themselves
// dimension strings parse through the shared dimension routine.
func Resolve(token string, customWidth, customHeight *float64) (types.TrimSize, error) {
	if customWidth != nil && customHeight != nil {
		trim := types.TrimSize{WidthMM: *customWidth, HeightMM: *customHeight}
		if !trim.IsValid() {
			return types.TrimSize{}, errors.Newf(errors.TypeValidation,
				"custom size must have positive width and height, got %vx%v", *customWidth, *customHeight)
		}
		return trim, nil
	}

	key := strings.ToLower(strings.TrimSpace(token))
	if key == "" {
		return types.TrimSize{}, errors.UnknownFormat(token)
	}
	if entry, ok := catalog[key]; ok {
		return entry.trim, nil
	}
	if looksLikeDimensions(key) {
		trim, err := ParseDimensions(key)
		if err != nil {
			return types.TrimSize{}, errors.UnknownFormat(token)
		}
		return trim, nil
	}
	return types.TrimSize{}, errors.UnknownFormat(token)
}

// ItemsPerSheetOverride returns the static items-per-sheet ratio for
// formats that bypass the grid calculation, or false when the grid applies.
func ItemsPerSheetOverride(token string) (float64, bool) {
	entry, ok := catalog[strings.ToLower(strings.TrimSpace(token))]
	if !ok || entry.itemsPerSheet == 0 {
		return 0, false
	}
	return entry.itemsPerSheet, true
}

// IsCatalogToken reports whether a token names a catalog format
func IsCatalogToken(token string) bool {
	_, ok := catalog[strings.ToLower(strings.TrimSpace(token))]
	return ok
}

// Info describes one catalog format for listing surfaces
type Info struct {
	// Name is the canonical token
	Name string `json:"name"`

	// Trim is the trim size
	Trim types.TrimSize `json:"trim"`

	// ItemsPerSheet is the imposition override, 0 when the grid applies
	ItemsPerSheet float64 `json:"items_per_sheet,omitempty"`
}

// List returns all catalog formats sorted by name
func List() []Info {
	out := make([]Info, 0, len(catalog))
	for name, entry := range catalog {
		out = append(out, Info{Name: name, Trim: entry.trim, ItemsPerSheet: entry.itemsPerSheet})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
