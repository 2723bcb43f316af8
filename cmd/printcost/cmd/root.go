// Package cmd provides the CLI commands for print-cost.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"print-cost/internal/config"
	"print-cost/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "print-cost",
	Short: "Estimate print job costs",
	Long: `print-cost estimates the price of print-shop jobs.

It resolves the trim size, lays the job out on press sheets, matches the
paper against the stock catalog and composes the final price under the
shop's pricing policy.

Examples:
  print-cost estimate --product flyer --format A6 --quantity 1000
  print-cost estimate --product business_card --quantity 500 --output json
  print-cost formats`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.print-cost.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("print-cost version 0.1.0")
	},
}
