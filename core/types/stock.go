// Package types - Stock catalog types
package types

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is one concrete inventory SKU: a (paper type, density) pair
// with a known unit price and availability.
type StockItem struct {
	// PaperType is the paper catalog key
	PaperType string `json:"paper_type"`

	// Density is the paper weight in g/m2
	Density int `json:"density"`

	// UnitPrice is the price per press sheet
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Available is the sheet count currently on hand
	Available int `json:"available"`
}

// StockCatalogSnapshot is a point-in-time view of the warehouse stock.
// The engine treats a snapshot as immutable for the duration of one
// estimation call; refreshing is the caller's concern.
type StockCatalogSnapshot struct {
	// ID identifies this snapshot
	ID string `json:"id"`

	// RefreshedAt is when the snapshot was taken
	RefreshedAt time.Time `json:"refreshed_at"`

	// Currency is the currency all unit prices are quoted in
	Currency Currency `json:"currency"`

	papers map[string]map[int]StockItem
}

// NewStockCatalogSnapshot creates an empty snapshot
func NewStockCatalogSnapshot(id string, refreshedAt time.Time, currency Currency) *StockCatalogSnapshot {
	return &StockCatalogSnapshot{
		ID:          id,
		RefreshedAt: refreshedAt,
		Currency:    currency,
		papers:      make(map[string]map[int]StockItem),
	}
}

// Put adds or replaces a stock item
func (s *StockCatalogSnapshot) Put(item StockItem) {
	densities, ok := s.papers[item.PaperType]
	if !ok {
		densities = make(map[int]StockItem)
		s.papers[item.PaperType] = densities
	}
	densities[item.Density] = item
}

// HasPaperType reports whether a paper type exists in the snapshot
func (s *StockCatalogSnapshot) HasPaperType(paperType string) bool {
	_, ok := s.papers[paperType]
	return ok
}

// Lookup finds the item for a (paper type, density) pair
func (s *StockCatalogSnapshot) Lookup(paperType string, density int) (StockItem, bool) {
	densities, ok := s.papers[paperType]
	if !ok {
		return StockItem{}, false
	}
	item, ok := densities[density]
	return item, ok
}

// PaperTypes returns the known paper type keys in sorted order
func (s *StockCatalogSnapshot) PaperTypes() []string {
	keys := make([]string, 0, len(s.papers))
	for k := range s.papers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Densities returns the known densities for a paper type in ascending order
func (s *StockCatalogSnapshot) Densities(paperType string) []int {
	densities, ok := s.papers[paperType]
	if !ok {
		return nil
	}
	out := make([]int, 0, len(densities))
	for d := range densities {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of SKUs in the snapshot
func (s *StockCatalogSnapshot) Len() int {
	n := 0
	for _, densities := range s.papers {
		n += len(densities)
	}
	return n
}
