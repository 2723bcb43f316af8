// Package material resolves an abstract (paper type, density) pair to a
// concrete stock SKU from a catalog snapshot. It never reserves stock and
// never fabricates a price: a miss is a hard error for the caller, not a
// zero-cost line.
package material

import (
	"github.com/shopspring/decimal"

	"print-cost/core/types"
	"print-cost/internal/errors"
)

// Match is a resolved SKU with the quantity required by the job
type Match struct {
	// Item is the matched stock SKU
	Item types.StockItem

	// SheetsRequired is the press sheet count the job consumes
	SheetsRequired int

	// InStock reports whether the snapshot shows enough sheets on hand.
	// Reservation is the warehouse's concern; this is informational.
	InStock bool
}

// Line converts the match into a priced material line
func (m Match) Line() types.Line {
	return types.NewLine(
		m.Item.PaperType,
		decimal.NewFromInt(int64(m.SheetsRequired)),
		m.Item.UnitPrice,
	)
}

// FindStock looks up the SKU for a (paper type, density) pair. Paper type
// is matched by exact key, density by exact numeric match against the
// type's known densities.
func FindStock(catalog *types.StockCatalogSnapshot, paperType string, density int, sheetsRequired int) (Match, error) {
	if catalog == nil {
		return Match{}, errors.Config("no stock catalog snapshot supplied")
	}
	if !catalog.HasPaperType(paperType) {
		return Match{}, errors.PaperNotFound(paperType)
	}
	item, ok := catalog.Lookup(paperType, density)
	if !ok {
		return Match{}, errors.DensityNotAvailable(paperType, density).
			WithContext("known_densities", catalog.Densities(paperType))
	}
	return Match{
		Item:           item,
		SheetsRequired: sheetsRequired,
		InStock:        item.Available >= sheetsRequired,
	}, nil
}
