// Package validate checks a job specification for completeness and
// internal consistency. Every rule runs independently so a single pass
// reports all field errors together; nothing here short-circuits.
package validate

import (
	"fmt"

	"print-cost/core/format"
	"print-cost/core/imposition"
	"print-cost/core/material"
	"print-cost/core/product"
	"print-cost/core/types"
)

// Input bundles everything validation needs besides the spec itself
type Input struct {
	// Products is the product catalog
	Products *product.Registry

	// Sheet is the press sheet in use
	Sheet types.PressSheet

	// Stock is the catalog snapshot for cross-field material checks.
	// Nil skips the stock rules (preview surfaces without a snapshot).
	Stock *types.StockCatalogSnapshot
}

// Validate returns a complete field-to-message mapping for the spec.
// An empty mapping means the spec is valid.
func Validate(spec *types.ProductJobSpec, in Input) types.ValidationErrors {
	errs := types.ValidationErrors{}

	entry, productKnown := product.Entry{}, false
	if in.Products != nil {
		entry, productKnown = in.Products.Get(spec.ProductType)
	}

	validateProduct(spec, errs)
	validateQuantity(spec, in.Products, errs)
	validateFormat(spec, entry, in.Sheet, errs)
	validatePages(spec, entry, productKnown, errs)
	validateRequiredFields(spec, errs)
	validateStock(spec, in.Stock, errs)

	return errs
}

func validateProduct(spec *types.ProductJobSpec, errs types.ValidationErrors) {
	if spec.ProductType == "" {
		errs.Add("product_type", "product type is required")
	}
}

func validateQuantity(spec *types.ProductJobSpec, products *product.Registry, errs types.ValidationErrors) {
	if spec.Quantity < 1 {
		errs.Add("quantity", "quantity must be a positive integer")
		return
	}
	max := product.DefaultMaxQuantity
	if products != nil {
		max = products.MaxQuantity(spec.ProductType)
	}
	if spec.Quantity > max {
		errs.Add("quantity", fmt.Sprintf("quantity exceeds the maximum of %d for this product", max))
	}
}

func validateFormat(spec *types.ProductJobSpec, entry product.Entry, sheet types.PressSheet, errs types.ValidationErrors) {
	// A half-specified custom pair is an error on its own; Resolve would
	// silently fall back to the token.
	if (spec.CustomWidthMM == nil) != (spec.CustomHeightMM == nil) {
		errs.Add("format", "custom size requires both width and height")
		return
	}
	if !spec.HasCustomSize() && spec.Format == "" {
		errs.Add("format", "format is required")
		return
	}

	trim, err := format.Resolve(spec.Format, spec.CustomWidthMM, spec.CustomHeightMM)
	if err != nil {
		errs.Add("format", err.Error())
		return
	}

	if entry.Roll {
		return
	}
	if _, hasOverride := format.ItemsPerSheetOverride(spec.Format); hasOverride && !spec.HasCustomSize() {
		return
	}
	if err := imposition.CheckFeasible(trim, sheet); err != nil {
		errs.Add("format", err.Error())
	}
}

func validatePages(spec *types.ProductJobSpec, entry product.Entry, productKnown bool, errs types.ValidationErrors) {
	if !productKnown || !entry.Capabilities.HasPages {
		return
	}
	if spec.Pages < 4 {
		errs.Add("pages", "page count must be at least 4")
		return
	}
	if spec.Pages%4 != 0 {
		errs.Add("pages", "page count must be a multiple of 4")
	}
}

func validateRequiredFields(spec *types.ProductJobSpec, errs types.ValidationErrors) {
	if spec.PaperType == "" {
		errs.Add("paper_type", "paper type is required")
	}
	if spec.PaperDensity <= 0 {
		errs.Add("paper_density", "paper density is required")
	}
	if spec.Sides != 1 && spec.Sides != 2 {
		errs.Add("sides", "sides must be 1 or 2")
	}
	if spec.Lamination == "" || !spec.Lamination.IsValid() {
		errs.Add("lamination", "lamination kind is required")
	}
	if spec.Urgency == "" || !spec.Urgency.IsValid() {
		errs.Add("urgency", "urgency tier is required")
	}
	if spec.CustomerTier == "" || !spec.CustomerTier.IsValid() {
		errs.Add("customer_tier", "customer tier is required")
	}
}

// validateStock delegates cross-validity of (paper type, density) to the
// material matcher and surfaces its misses as field errors instead of
// letting the estimate degrade silently.
func validateStock(spec *types.ProductJobSpec, stock *types.StockCatalogSnapshot, errs types.ValidationErrors) {
	if stock == nil || spec.PaperType == "" || spec.PaperDensity <= 0 {
		return
	}
	_, err := material.FindStock(stock, spec.PaperType, spec.PaperDensity, 0)
	if err == nil {
		return
	}
	if !stock.HasPaperType(spec.PaperType) {
		errs.Add("paper_type", err.Error())
	} else {
		errs.Add("paper_density", err.Error())
	}
}
