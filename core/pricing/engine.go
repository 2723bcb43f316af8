// Package pricing - Price composition
package pricing

import (
	"github.com/shopspring/decimal"

	"print-cost/core/types"
	"print-cost/internal/errors"
)

// moneyPlaces is the rounding applied to the final total and per-item
// price. Intermediate values keep full precision so rounding error never
// compounds.
const moneyPlaces = 2

// Breakdown is the priced outcome of one composition run
type Breakdown struct {
	// Subtotal is the pre-adjustment sum of all lines, full precision
	Subtotal decimal.Decimal `json:"subtotal"`

	// DiscountAmount is the granted discount; zero when the floor wins
	DiscountAmount decimal.Decimal `json:"discount_amount"`

	// Total is the final order price, rounded to 2 fractional digits
	Total decimal.Decimal `json:"total"`

	// PricePerItem is Total / quantity, rounded to 2 fractional digits
	PricePerItem decimal.Decimal `json:"price_per_item"`
}

// Price combines material and service lines under a policy. The step
// order is fixed and not commutative:
//
//  1. subtotal = sum of line totals
//  2. urgency multiplier
//  3. volume + loyalty discount, additive, capped
//  4. minimum-order floor
//  5. per-item division
//
// Validation guarantees quantity >= 1 before this call.
func Price(spec *types.ProductJobSpec, materials, services []types.Line, policy *Policy) (Breakdown, error) {
	if policy == nil {
		return Breakdown{}, errors.Config("no pricing policy supplied")
	}
	if spec.Quantity < 1 {
		return Breakdown{}, errors.Internal("pricing reached with quantity < 1", nil)
	}

	subtotal := types.SumLines(materials).Add(types.SumLines(services))

	afterUrgency := subtotal.Mul(policy.UrgencyMultiplier(spec.Urgency))

	combined := policy.VolumeDiscount(spec.Quantity).Add(policy.LoyaltyDiscount(spec.CustomerTier))
	if cap := policy.Cap(); combined.GreaterThan(cap) {
		combined = cap
	}
	discounted := afterUrgency.Mul(decimal.NewFromInt(1).Sub(combined))

	floor := policy.MinimumOrderCost(spec.Format, spec.ProductType)

	var total, discountAmount decimal.Decimal
	if discounted.LessThan(floor) {
		total = floor
		discountAmount = decimal.Zero
	} else {
		total = discounted
		discountAmount = afterUrgency.Sub(discounted)
	}

	total = total.Round(moneyPlaces)
	if !total.IsPositive() {
		return Breakdown{}, errors.Newf(errors.TypeNonPositivePrice,
			"computed total %s is not positive", total)
	}

	perItem := total.Div(decimal.NewFromInt(int64(spec.Quantity))).Round(moneyPlaces)

	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          total,
		PricePerItem:   perItem,
	}, nil
}
