// Package main provides the nutriscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "nutriscope",
		Short: "Additive risk scoring for food ingredient lists",
		Long: `Nutriscope detects food additives in ingredient lists, resolves their
risk tiers against a curated knowledge base, and scores the overall
additive burden of a product.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newLookupCmd(),
		newHistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
