// Package cmd - catalog listing commands
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"print-cost/core/format"
	"print-cost/core/product"
)

// formatsCmd lists the standard format catalog
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the standard format catalog",
	Run: func(cmd *cobra.Command, args []string) {
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FORMAT\tTRIM (MM)\tIMPOSITION")
		for _, info := range format.List() {
			layout := "grid"
			if info.ItemsPerSheet > 0 {
				layout = fmt.Sprintf("%g items/sheet", info.ItemsPerSheet)
			}
			fmt.Fprintf(tw, "%s\t%.0f x %.0f\t%s\n", info.Name, info.Trim.WidthMM, info.Trim.HeightMM, layout)
		}
		tw.Flush()
	},
}

// productsCmd lists the product catalog
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List the product catalog",
	Run: func(cmd *cobra.Command, args []string) {
		registry := product.Default()
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PRODUCT\tLABEL\tMAX QTY\tOPTIONS")
		for _, key := range registry.Keys() {
			entry, _ := registry.Get(key)
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", entry.Key, entry.Label, entry.MaxQuantity, describeCapabilities(entry))
		}
		tw.Flush()
	},
}

func describeCapabilities(entry product.Entry) string {
	var opts []byte
	add := func(flag bool, name string) {
		if flag {
			if len(opts) > 0 {
				opts = append(opts, ", "...)
			}
			opts = append(opts, name...)
		}
	}
	add(entry.Roll, "roll material")
	add(entry.Capabilities.HasPages, "pages")
	add(entry.Capabilities.HasLamination, "lamination")
	add(entry.Capabilities.HasCutting, "cutting")
	add(entry.Capabilities.HasFolding, "folding")
	add(entry.Capabilities.HasMagnetic, "magnetic")
	add(entry.Capabilities.HasRoundedCorners, "rounded corners")
	if len(opts) == 0 {
		return "-"
	}
	return string(opts)
}
