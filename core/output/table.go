// Package output - Human-readable table renderer
package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"print-cost/core/types"
)

// TableFormatter renders a result as an aligned text table
type TableFormatter struct{}

// Format returns the format type
func (f *TableFormatter) Format() Format {
	return FormatCLI
}

// Render writes the estimate breakdown
func (f *TableFormatter) Render(w io.Writer, result *types.EstimationResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Product:\t%s\n", result.Spec.ProductType)
	fmt.Fprintf(tw, "Trim size:\t%.0f x %.0f mm\n", result.Trim.WidthMM, result.Trim.HeightMM)
	fmt.Fprintf(tw, "Quantity:\t%d\n", result.Spec.Quantity)
	if result.Imposition.RollMaterial {
		fmt.Fprintf(tw, "Material:\troll (length-based)\n")
	} else {
		fmt.Fprintf(tw, "Items per sheet:\t%g\n", result.Imposition.ItemsPerSheet)
		fmt.Fprintf(tw, "Sheets needed:\t%d (waste %.0f%%)\n",
			result.Imposition.SheetsNeeded, result.Imposition.WasteRatio*100)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "LINE\tQTY\tUNIT\tTOTAL")
	for _, line := range result.Materials {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", line.Name, line.Quantity, line.UnitPrice, line.Total)
	}
	for _, line := range result.Services {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", line.Name, line.Quantity, line.UnitPrice, line.Total)
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "Subtotal:\t%s %s\n", result.Subtotal.Round(2), result.Currency)
	if result.DiscountAmount.IsPositive() {
		fmt.Fprintf(tw, "Discount:\t-%s %s\n", result.DiscountAmount.Round(2), result.Currency)
	}
	fmt.Fprintf(tw, "Total:\t%s %s\n", result.Total, result.Currency)
	fmt.Fprintf(tw, "Per item:\t%s %s\n", result.PricePerItem, result.Currency)
	fmt.Fprintf(tw, "Production time:\t%s\n", result.ProductionTime)
	fmt.Fprintf(tw, "Priced by:\t%s\n", result.Source)

	return tw.Flush()
}
