package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/pkg/additive"
)

func newLookupCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "lookup <code-or-name>",
		Short: "Look up an additive in the knowledge base",
		Long: `Looks up an additive by E-number or name and prints its curated record:
display name, origin, and risk assessment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(args[0], outputFmt)
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func runLookup(key, outputFmt string) error {
	registry, err := additive.Default()
	if err != nil {
		return fmt.Errorf("loading additive knowledge base: %w", err)
	}

	record := registry.Lookup(key, key)
	if record == nil {
		return fmt.Errorf("no additive found for %q", key)
	}

	if outputFmt == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	fmt.Println(record.DisplayName)
	if record.RiskTier != nil {
		fmt.Printf("  Risk tier: %s\n", record.RiskTier)
	}
	if record.Origin != "" {
		fmt.Printf("  Origin: %s\n", record.Origin)
	}
	if record.ShortSummary != "" {
		fmt.Printf("  %s\n", record.ShortSummary)
	}
	if record.RiskDescription != "" {
		fmt.Printf("  %s\n", record.RiskDescription)
	}
	if len(record.MatchKeys) > 0 {
		fmt.Printf("  Known as: %s\n", strings.Join(record.MatchKeys, ", "))
	}
	return nil
}
