// Package pricing combines material and service costs into a final price
// under a named policy bundle. Each policy knob is a pure lookup over the
// job specification; composition order is fixed for reproducibility.
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"

	"print-cost/core/types"
)

// DefaultMaxDiscountCap bounds the combined volume+loyalty fraction.
const DefaultMaxDiscountCap = 0.25

// VolumeTier grants a discount fraction from a quantity threshold upward
type VolumeTier struct {
	// MinQuantity is the tier threshold (inclusive)
	MinQuantity int `json:"min_quantity"`

	// Fraction is the discount fraction, e.g. 0.08 for 8%
	Fraction decimal.Decimal `json:"fraction"`
}

// MinimumOrder is a price floor scoped to a product type and/or format.
// Empty scope fields match anything.
type MinimumOrder struct {
	// ProductType scopes the floor to one product, empty = any
	ProductType string `json:"product_type,omitempty"`

	// Format scopes the floor to one format token, empty = any
	Format string `json:"format,omitempty"`

	// Floor is the minimum order total
	Floor decimal.Decimal `json:"floor"`
}

// Policy is the bundle of independently toggleable price adjustments
type Policy struct {
	// Urgency maps urgency tiers to price multipliers
	Urgency map[types.UrgencyTier]decimal.Decimal `json:"urgency"`

	// Volume contains quantity discount tiers
	Volume []VolumeTier `json:"volume"`

	// Loyalty maps customer tiers to discount fractions
	Loyalty map[types.CustomerTier]decimal.Decimal `json:"loyalty"`

	// MaxDiscountCap bounds the combined discount fraction
	MaxDiscountCap decimal.Decimal `json:"max_discount_cap"`

	// MinimumOrders are scoped price floors; the most specific match wins
	MinimumOrders []MinimumOrder `json:"minimum_orders"`

	// DefaultFloor applies when no scoped floor matches
	DefaultFloor decimal.Decimal `json:"default_floor"`
}

// UrgencyMultiplier returns the multiplier for a tier, 1 when unlisted
func (p *Policy) UrgencyMultiplier(tier types.UrgencyTier) decimal.Decimal {
	if m, ok := p.Urgency[tier]; ok {
		return m
	}
	return decimal.NewFromInt(1)
}

// VolumeDiscount returns the discount fraction for a quantity: the tier
// with the highest threshold not exceeding the quantity.
func (p *Policy) VolumeDiscount(quantity int) decimal.Decimal {
	best := decimal.Zero
	bestMin := -1
	for _, tier := range p.Volume {
		if quantity >= tier.MinQuantity && tier.MinQuantity > bestMin {
			best = tier.Fraction
			bestMin = tier.MinQuantity
		}
	}
	return best
}

// LoyaltyDiscount returns the discount fraction for a customer tier
func (p *Policy) LoyaltyDiscount(tier types.CustomerTier) decimal.Decimal {
	if f, ok := p.Loyalty[tier]; ok {
		return f
	}
	return decimal.Zero
}

// MinimumOrderCost returns the price floor for a (format, product type)
// combination. Scoped entries beat the default floor; among scoped
// entries the one matching more fields wins.
func (p *Policy) MinimumOrderCost(formatToken, productType string) decimal.Decimal {
	floor := p.DefaultFloor
	bestSpecificity := -1
	for _, m := range p.MinimumOrders {
		if m.ProductType != "" && m.ProductType != productType {
			continue
		}
		if m.Format != "" && m.Format != formatToken {
			continue
		}
		specificity := 0
		if m.ProductType != "" {
			specificity++
		}
		if m.Format != "" {
			specificity++
		}
		if specificity > bestSpecificity {
			floor = m.Floor
			bestSpecificity = specificity
		}
	}
	return floor
}

// Cap returns the discount cap, falling back to DefaultMaxDiscountCap
func (p *Policy) Cap() decimal.Decimal {
	if p.MaxDiscountCap.IsPositive() {
		return p.MaxDiscountCap
	}
	return decimal.NewFromFloat(DefaultMaxDiscountCap)
}

// Normalize sorts policy tables so serialized policies are deterministic
func (p *Policy) Normalize() {
	sort.Slice(p.Volume, func(i, j int) bool { return p.Volume[i].MinQuantity < p.Volume[j].MinQuantity })
	sort.Slice(p.MinimumOrders, func(i, j int) bool {
		if p.MinimumOrders[i].ProductType != p.MinimumOrders[j].ProductType {
			return p.MinimumOrders[i].ProductType < p.MinimumOrders[j].ProductType
		}
		return p.MinimumOrders[i].Format < p.MinimumOrders[j].Format
	})
}

// DefaultPolicy returns the shop's standard policy bundle
func DefaultPolicy() *Policy {
	frac := decimal.NewFromFloat
	return &Policy{
		Urgency: map[types.UrgencyTier]decimal.Decimal{
			types.UrgencyStandard: frac(1.0),
			types.UrgencyExpress:  frac(1.5),
			types.UrgencyUrgent:   frac(2.0),
		},
		Volume: []VolumeTier{
			{MinQuantity: 100, Fraction: frac(0.03)},
			{MinQuantity: 250, Fraction: frac(0.05)},
			{MinQuantity: 500, Fraction: frac(0.08)},
			{MinQuantity: 1000, Fraction: frac(0.12)},
			{MinQuantity: 2500, Fraction: frac(0.15)},
		},
		Loyalty: map[types.CustomerTier]decimal.Decimal{
			types.CustomerRegular:  decimal.Zero,
			types.CustomerSilver:   frac(0.03),
			types.CustomerGold:     frac(0.05),
			types.CustomerPlatinum: frac(0.10),
		},
		MaxDiscountCap: frac(DefaultMaxDiscountCap),
		MinimumOrders: []MinimumOrder{
			{ProductType: "business_card", Floor: frac(8.00)},
			{ProductType: "booklet", Floor: frac(15.00)},
		},
		DefaultFloor: frac(8.00),
	}
}
