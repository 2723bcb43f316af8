// Package format resolves format tokens to trim sizes.
package format

import (
	"math"
	"strconv"
	"strings"

	"print-cost/core/types"
	"print-cost/internal/errors"
)

// dimension strings accept "x", the multiplication sign, "*" and a
// literal space as separators, case-insensitively: "100x150",
// "100 X 150", "100×150", "100*150".
var separators = strings.NewReplacer("×", "x", "*", "x", "X", "x", " ", "x")

// ParseDimensions parses a "WxH" dimension string into a trim size.
// Rejects non-finite and non-positive values.
func ParseDimensions(s string) (types.TrimSize, error) {
	normalized := separators.Replace(strings.TrimSpace(s))

	parts := make([]string, 0, 2)
	for _, p := range strings.Split(normalized, "x") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) != 2 {
		return types.TrimSize{}, errors.Newf(errors.TypeParsing, "not a dimension string: %q", s)
	}

	width, err := parseMM(parts[0])
	if err != nil {
		return types.TrimSize{}, errors.Wrapf(errors.TypeParsing, err, "bad width in %q", s)
	}
	height, err := parseMM(parts[1])
	if err != nil {
		return types.TrimSize{}, errors.Wrapf(errors.TypeParsing, err, "bad height in %q", s)
	}

	return types.TrimSize{WidthMM: width, HeightMM: height}, nil
}

func parseMM(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, errors.Newf(errors.TypeParsing, "dimension must be a positive number, got %v", v)
	}
	return v, nil
}

// looksLikeDimensions reports whether a token plausibly encodes "WxH"
func looksLikeDimensions(s string) bool {
	normalized := separators.Replace(strings.TrimSpace(s))
	return strings.ContainsAny(normalized, "x") && strings.ContainsAny(normalized, "0123456789")
}
