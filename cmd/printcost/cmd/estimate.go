// Package cmd - estimate command
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"print-cost/adapters/remote"
	"print-cost/adapters/warehouse"
	"print-cost/core/engine"
	"print-cost/core/output"
	"print-cost/core/product"
	"print-cost/core/types"
	"print-cost/internal/config"
	"print-cost/internal/errors"
	"print-cost/internal/logging"
)

var (
	outputFormat string
	catalogPath  string

	jobProduct  string
	jobFormat   string
	jobWidth    float64
	jobHeight   float64
	jobQuantity int
	jobSides    int
	jobPaper    string
	jobDensity  int
	jobLam      string
	jobUrgency  string
	jobCustomer string
	jobPages    int
	jobCutting  bool
	jobFolding  bool
	jobMagnetic bool
	jobRounded  bool
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the price of one print job",
	Long: `Estimate a job against the stock catalog and pricing policy.

Formats accept catalog names (A6, DL) or explicit dimensions ("100x150").

Examples:
  print-cost estimate --product flyer --format A6 --quantity 1000 --paper coated --density 130
  print-cost estimate --product business_card --quantity 500 --width 90 --height 50 --paper cardstock --density 300
  print-cost estimate --product booklet --format A5 --pages 16 --quantity 200 --output json`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format (cli, json)")
	estimateCmd.Flags().StringVar(&catalogPath, "catalog", "", "stock catalog HCL file (overrides config)")

	estimateCmd.Flags().StringVar(&jobProduct, "product", "", "product type (see 'print-cost products')")
	estimateCmd.Flags().StringVar(&jobFormat, "format", "", "format token or dimension string")
	estimateCmd.Flags().Float64Var(&jobWidth, "width", 0, "custom trim width in mm")
	estimateCmd.Flags().Float64Var(&jobHeight, "height", 0, "custom trim height in mm")
	estimateCmd.Flags().IntVarP(&jobQuantity, "quantity", "q", 0, "number of finished items")
	estimateCmd.Flags().IntVar(&jobSides, "sides", 1, "printed sides (1 or 2)")
	estimateCmd.Flags().StringVar(&jobPaper, "paper", "", "paper type")
	estimateCmd.Flags().IntVar(&jobDensity, "density", 0, "paper density in g/m2")
	estimateCmd.Flags().StringVar(&jobLam, "lamination", "none", "lamination (none, matte, glossy, soft_touch)")
	estimateCmd.Flags().StringVar(&jobUrgency, "urgency", "standard", "urgency tier (standard, express, urgent)")
	estimateCmd.Flags().StringVar(&jobCustomer, "customer", "regular", "customer tier (regular, silver, gold, platinum)")
	estimateCmd.Flags().IntVar(&jobPages, "pages", 0, "page count for page-bearing products")
	estimateCmd.Flags().BoolVar(&jobCutting, "cutting", false, "request cutting")
	estimateCmd.Flags().BoolVar(&jobFolding, "folding", false, "request folding")
	estimateCmd.Flags().BoolVar(&jobMagnetic, "magnetic", false, "request magnetic backing")
	estimateCmd.Flags().BoolVar(&jobRounded, "rounded-corners", false, "request corner rounding")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	path := catalogPath
	if path == "" {
		path = cfg.Catalog.Path
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("catalog file does not exist: %s", path)
	}

	snapshot, policy, err := warehouse.Load(path)
	if err != nil {
		return err
	}
	logging.Info("catalog loaded",
		zap.String("snapshot_id", snapshot.ID),
		zap.Int("skus", snapshot.Len()))

	spec := buildSpec()
	estimator := engine.New(product.Default(), types.SheetSRA3())

	var result *types.EstimationResult
	if cfg.Pricing.RemoteURL != "" {
		client := remote.NewClient(cfg.Pricing.RemoteURL,
			time.Duration(cfg.Pricing.TimeoutSeconds)*time.Second, logging.Logger)
		result, err = estimator.EstimateRemote(cmd.Context(), client, spec, snapshot)
	} else {
		result, err = estimator.Estimate(spec, snapshot, policy)
	}
	if err != nil {
		if fields := engine.FieldErrors(err); fields != nil {
			fmt.Fprintln(os.Stderr, "Specification is invalid:")
			for _, field := range fields.Fields() {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", field, fields[field])
			}
			return errors.Validation("estimate aborted")
		}
		return err
	}

	name := outputFormat
	if name == "" {
		name = cfg.Output.DefaultFormat
	}
	formatter, err := output.New(name)
	if err != nil {
		return err
	}
	return formatter.Render(os.Stdout, result)
}

func buildSpec() *types.ProductJobSpec {
	spec := &types.ProductJobSpec{
		ProductType:    jobProduct,
		Format:         jobFormat,
		Quantity:       jobQuantity,
		Sides:          jobSides,
		PaperType:      jobPaper,
		PaperDensity:   jobDensity,
		Lamination:     types.Lamination(jobLam),
		Urgency:        types.UrgencyTier(jobUrgency),
		CustomerTier:   types.CustomerTier(jobCustomer),
		Pages:          jobPages,
		Cutting:        jobCutting,
		Folding:        jobFolding,
		Magnetic:       jobMagnetic,
		RoundedCorners: jobRounded,
	}
	if jobWidth > 0 && jobHeight > 0 {
		spec.CustomWidthMM = &jobWidth
		spec.CustomHeightMM = &jobHeight
	}
	return spec
}
