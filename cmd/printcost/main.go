package main

import (
	"os"

	"print-cost/cmd/printcost/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
