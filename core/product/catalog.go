// Package product defines the product catalog: what the shop can make,
// which options each product carries and the service rates attached to it.
// Validation and the UI both introspect capability sets here instead of
// branching on product names.
package product

import (
	"sort"

	"github.com/shopspring/decimal"

	"print-cost/core/types"
)

// DefaultMaxQuantity is the order ceiling for products without an
// explicit limit.
const DefaultMaxQuantity = 10000

// Capabilities declares which options a product exposes
type Capabilities struct {
	// HasPages marks page-bearing products (booklets, catalogs)
	HasPages bool `json:"has_pages"`

	// HasLamination allows a lamination kind other than none
	HasLamination bool `json:"has_lamination"`

	// HasCutting allows format/contour cutting
	HasCutting bool `json:"has_cutting"`

	// HasFolding allows folding
	HasFolding bool `json:"has_folding"`

	// HasMagnetic allows magnetic backing
	HasMagnetic bool `json:"has_magnetic"`

	// HasRoundedCorners allows corner rounding
	HasRoundedCorners bool `json:"has_rounded_corners"`
}

// ServiceRates are the shop's standard rates for the work a product needs
type ServiceRates struct {
	// Setup is the one-time press setup charge per order
	Setup decimal.Decimal `json:"setup"`

	// Impression is the charge per press sheet per printed side
	Impression decimal.Decimal `json:"impression"`

	// LaminationPerSide is the charge per press sheet per laminated side
	LaminationPerSide decimal.Decimal `json:"lamination_per_side"`

	// Cutting is the charge per press sheet for cutting
	Cutting decimal.Decimal `json:"cutting"`

	// Folding is the charge per item for folding
	Folding decimal.Decimal `json:"folding"`

	// RoundedCorners is the charge per item for corner rounding
	RoundedCorners decimal.Decimal `json:"rounded_corners"`

	// MagneticPerItem is the charge per item for magnetic backing
	MagneticPerItem decimal.Decimal `json:"magnetic_per_item"`
}

// Entry is one product catalog entry
type Entry struct {
	// Key is the catalog key used in job specifications
	Key string `json:"key"`

	// Label is the display name
	Label string `json:"label"`

	// Capabilities is the option set this product exposes
	Capabilities Capabilities `json:"capabilities"`

	// MaxQuantity is the per-order quantity ceiling
	MaxQuantity int `json:"max_quantity"`

	// Roll marks continuous/roll materials where sheet imposition does
	// not apply
	Roll bool `json:"roll"`

	// DefaultFormat is the format preselected for this product
	DefaultFormat string `json:"default_format,omitempty"`

	// Rates are the service rates used by the local pricing path
	Rates ServiceRates `json:"rates"`
}

// Registry holds product entries keyed by product type
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds or replaces an entry
func (r *Registry) Register(e Entry) {
	if e.MaxQuantity <= 0 {
		e.MaxQuantity = DefaultMaxQuantity
	}
	r.entries[e.Key] = e
}

// Get returns the entry for a product type
func (r *Registry) Get(key string) (Entry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// MaxQuantity returns the quantity ceiling for a product type,
// falling back to DefaultMaxQuantity for unlisted types
func (r *Registry) MaxQuantity(key string) int {
	if e, ok := r.entries[key]; ok {
		return e.MaxQuantity
	}
	return DefaultMaxQuantity
}

// Keys returns the registered product keys in sorted order
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// productionTimes maps urgency tiers to turnaround labels
var productionTimes = map[types.UrgencyTier]string{
	types.UrgencyStandard: "3-5 business days",
	types.UrgencyExpress:  "1-2 business days",
	types.UrgencyUrgent:   "same day",
}

// ProductionTimeLabel returns the turnaround label for an urgency tier
func ProductionTimeLabel(tier types.UrgencyTier) string {
	if label, ok := productionTimes[tier]; ok {
		return label
	}
	return productionTimes[types.UrgencyStandard]
}

func rate(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Default returns the registry of the shop's standard products
func Default() *Registry {
	r := NewRegistry()

	standard := ServiceRates{
		Setup:             rate(5.00),
		Impression:        rate(0.35),
		LaminationPerSide: rate(0.25),
		Cutting:           rate(0.10),
		Folding:           rate(0.02),
		RoundedCorners:    rate(0.03),
		MagneticPerItem:   rate(0.40),
	}

	r.Register(Entry{
		Key:   "business_card",
		Label: "Business cards",
		Capabilities: Capabilities{
			HasLamination:     true,
			HasCutting:        true,
			HasRoundedCorners: true,
			HasMagnetic:       true,
		},
		MaxQuantity:   50000,
		DefaultFormat: "90x50",
		Rates:         standard,
	})
	r.Register(Entry{
		Key:   "flyer",
		Label: "Flyers",
		Capabilities: Capabilities{
			HasLamination: true,
			HasCutting:    true,
			HasFolding:    true,
		},
		DefaultFormat: "A6",
		Rates:         standard,
	})
	r.Register(Entry{
		Key:   "booklet",
		Label: "Booklets",
		Capabilities: Capabilities{
			HasPages:   true,
			HasFolding: true,
			HasCutting: true,
		},
		MaxQuantity:   5000,
		DefaultFormat: "A5",
		Rates:         standard,
	})
	r.Register(Entry{
		Key:   "poster",
		Label: "Posters",
		Capabilities: Capabilities{
			HasLamination: true,
		},
		MaxQuantity:   2000,
		DefaultFormat: "A2",
		Rates:         standard,
	})
	r.Register(Entry{
		Key:          "banner",
		Label:        "Banners",
		Capabilities: Capabilities{},
		MaxQuantity:  500,
		Roll:         true,
		Rates:        standard,
	})
	r.Register(Entry{
		Key:   "sticker",
		Label: "Stickers",
		Capabilities: Capabilities{
			HasCutting:    true,
			HasLamination: true,
		},
		DefaultFormat: "A7",
		Rates:         standard,
	})
	r.Register(Entry{
		Key:   "postcard",
		Label: "Postcards",
		Capabilities: Capabilities{
			HasLamination:     true,
			HasRoundedCorners: true,
			HasMagnetic:       true,
		},
		DefaultFormat: "A6",
		Rates:         standard,
	})
	r.Register(Entry{
		Key:   "calendar",
		Label: "Wall calendars",
		Capabilities: Capabilities{
			HasPages:      true,
			HasLamination: true,
		},
		MaxQuantity:   3000,
		DefaultFormat: "A3",
		Rates:         standard,
	})

	return r
}
