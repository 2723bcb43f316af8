// Package warehouse loads stock catalog snapshots and pricing policies
// from the shop's HCL catalog files. It is the engine's view of the
// warehouse collaborator: read-only, snapshot-based, no reservations.
package warehouse

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"print-cost/core/pricing"
	"print-cost/core/types"
	"print-cost/internal/errors"
)

type catalogFile struct {
	Snapshot *snapshotBlock `hcl:"snapshot,block"`
	Papers   []paperBlock   `hcl:"paper,block"`
	Policy   *policyBlock   `hcl:"policy,block"`
}

type snapshotBlock struct {
	ID       string `hcl:"id,optional"`
	Currency string `hcl:"currency,optional"`
}

type paperBlock struct {
	Type      string         `hcl:"type,label"`
	Densities []densityBlock `hcl:"density,block"`
}

type densityBlock struct {
	Density   string  `hcl:"density,label"`
	UnitPrice float64 `hcl:"unit_price"`
	Available int     `hcl:"available"`
}

type policyBlock struct {
	MaxDiscountCap *float64            `hcl:"max_discount_cap,optional"`
	DefaultFloor   *float64            `hcl:"default_floor,optional"`
	Urgency        []urgencyBlock      `hcl:"urgency,block"`
	Volume         []volumeBlock       `hcl:"volume,block"`
	Loyalty        []loyaltyBlock      `hcl:"loyalty,block"`
	MinimumOrders  []minimumOrderBlock `hcl:"minimum_order,block"`
}

type urgencyBlock struct {
	Tier       string  `hcl:"tier,label"`
	Multiplier float64 `hcl:"multiplier"`
}

type volumeBlock struct {
	MinQuantity int     `hcl:"min_quantity"`
	Fraction    float64 `hcl:"fraction"`
}

type loyaltyBlock struct {
	Tier     string  `hcl:"tier,label"`
	Fraction float64 `hcl:"fraction"`
}

type minimumOrderBlock struct {
	Product string  `hcl:"product,optional"`
	Format  string  `hcl:"format,optional"`
	Floor   float64 `hcl:"floor"`
}

// Load reads a catalog file and returns the stock snapshot plus the
// policy bundle it declares. A missing policy block falls back to the
// default policy.
func Load(path string) (*types.StockCatalogSnapshot, *pricing.Policy, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Wrap(errors.TypeConfig, "cannot read catalog file", err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, nil, errors.Parsing("catalog file is not valid HCL", diagError(diags))
	}

	var parsed catalogFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, nil, errors.Parsing("catalog file has unexpected structure", diagError(diags))
	}

	snapshot, err := buildSnapshot(path, parsed)
	if err != nil {
		return nil, nil, err
	}

	policy := pricing.DefaultPolicy()
	if parsed.Policy != nil {
		policy = buildPolicy(parsed.Policy)
	}

	return snapshot, policy, nil
}

func buildSnapshot(path string, parsed catalogFile) (*types.StockCatalogSnapshot, error) {
	id := filepath.Base(path)
	currency := types.CurrencyUSD
	if parsed.Snapshot != nil {
		if parsed.Snapshot.ID != "" {
			id = parsed.Snapshot.ID
		}
		if parsed.Snapshot.Currency != "" {
			currency = types.Currency(parsed.Snapshot.Currency)
		}
	}

	refreshedAt := time.Now().UTC()
	if info, err := os.Stat(path); err == nil {
		refreshedAt = info.ModTime().UTC()
	}

	snapshot := types.NewStockCatalogSnapshot(id, refreshedAt, currency)
	for _, paper := range parsed.Papers {
		for _, d := range paper.Densities {
			density, err := strconv.Atoi(d.Density)
			if err != nil || density <= 0 {
				return nil, errors.Newf(errors.TypeConfig,
					"paper %q has bad density label %q", paper.Type, d.Density)
			}
			if d.UnitPrice <= 0 {
				return nil, errors.Newf(errors.TypeConfig,
					"paper %q density %d has non-positive unit price", paper.Type, density)
			}
			snapshot.Put(types.StockItem{
				PaperType: paper.Type,
				Density:   density,
				UnitPrice: decimal.NewFromFloat(d.UnitPrice),
				Available: d.Available,
			})
		}
	}
	if snapshot.Len() == 0 {
		return nil, errors.Config("catalog file declares no paper stock")
	}
	return snapshot, nil
}

func buildPolicy(block *policyBlock) *pricing.Policy {
	policy := &pricing.Policy{
		Urgency: make(map[types.UrgencyTier]decimal.Decimal),
		Loyalty: make(map[types.CustomerTier]decimal.Decimal),
	}

	if block.MaxDiscountCap != nil {
		policy.MaxDiscountCap = decimal.NewFromFloat(*block.MaxDiscountCap)
	}
	if block.DefaultFloor != nil {
		policy.DefaultFloor = decimal.NewFromFloat(*block.DefaultFloor)
	}
	for _, u := range block.Urgency {
		policy.Urgency[types.UrgencyTier(u.Tier)] = decimal.NewFromFloat(u.Multiplier)
	}
	for _, v := range block.Volume {
		policy.Volume = append(policy.Volume, pricing.VolumeTier{
			MinQuantity: v.MinQuantity,
			Fraction:    decimal.NewFromFloat(v.Fraction),
		})
	}
	for _, l := range block.Loyalty {
		policy.Loyalty[types.CustomerTier(l.Tier)] = decimal.NewFromFloat(l.Fraction)
	}
	for _, m := range block.MinimumOrders {
		policy.MinimumOrders = append(policy.MinimumOrders, pricing.MinimumOrder{
			ProductType: m.Product,
			Format:      m.Format,
			Floor:       decimal.NewFromFloat(m.Floor),
		})
	}
	policy.Normalize()
	return policy
}

func diagError(diags hcl.Diagnostics) error {
	return fmt.Errorf("%s", diags.Error())
}
