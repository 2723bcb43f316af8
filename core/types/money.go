// Package types - Monetary types
package types

import "github.com/shopspring/decimal"

// Currency represents a currency code
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyRUB Currency = "RUB"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Line is a priced consumption line: a material drawn from stock or a
// service performed on the job.
type Line struct {
	// Name is a human-readable label
	Name string `json:"name"`

	// Quantity is the consumed quantity
	Quantity decimal.Decimal `json:"quantity"`

	// UnitPrice is the price per unit
	UnitPrice decimal.Decimal `json:"unit_price"`

	// Total is Quantity * UnitPrice. When a remote pricing service is
	// authoritative the service-supplied value wins and the local product
	// is informational only.
	Total decimal.Decimal `json:"total"`
}

// NewLine creates a line with the total derived from quantity and unit price
func NewLine(name string, quantity, unitPrice decimal.Decimal) Line {
	return Line{
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     quantity.Mul(unitPrice),
	}
}

// SumLines returns the sum of line totals at full precision
func SumLines(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total)
	}
	return sum
}
