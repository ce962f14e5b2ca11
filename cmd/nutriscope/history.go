package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/pkg/config"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously analyzed ingredient lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")

	return cmd
}

func runHistory(limit int) error {
	dir := config.AnalysisDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No analyses yet. Run `nutriscope analyze` first.")
			return nil
		}
		return fmt.Errorf("reading analysis dir: %w", err)
	}

	var analyses []savedAnalysis
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		var a savedAnalysis
		if err := json.Unmarshal(data, &a); err != nil {
			continue
		}
		analyses = append(analyses, a)
	}

	if len(analyses) == 0 {
		fmt.Println("No analyses yet. Run `nutriscope analyze` first.")
		return nil
	}

	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].AnalyzedAt > analyses[j].AnalyzedAt
	})
	if limit > 0 && len(analyses) > limit {
		analyses = analyses[:limit]
	}

	for _, a := range analyses {
		first := ""
		if len(a.Ingredients) > 0 {
			first = a.Ingredients[0]
			if len(a.Ingredients) > 1 {
				first += fmt.Sprintf(" (+%d more)", len(a.Ingredients)-1)
			}
		}
		fmt.Printf("%s  %3d/100  %-20s  %s\n",
			a.AnalyzedAt, a.Score, a.Label, first)
	}
	return nil
}
