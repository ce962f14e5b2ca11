package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/internal/detector"
	"github.com/nutriscope/nutriscope/pkg/additive"
	"github.com/nutriscope/nutriscope/pkg/config"
	"github.com/nutriscope/nutriscope/pkg/scoring"
	"github.com/nutriscope/nutriscope/pkg/surface"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		ingredients    string
		file           string
		detectionsFile string
		detectorURL    string
		outputFmt      string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score the additive burden of an ingredient list",
		Long: `Runs detection, risk tier resolution, and scoring for one ingredient
list. Detection happens against the remote detector service, or offline
from a saved detection file passed with --detections.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), analyzeOpts{
				ingredients:    ingredients,
				file:           file,
				detectionsFile: detectionsFile,
				detectorURL:    detectorURL,
				outputFmt:      outputFmt,
			})
		},
	}

	cmd.Flags().StringVar(&ingredients, "ingredients", "", "Comma-separated ingredient list")
	cmd.Flags().StringVar(&file, "file", "", "Path to a file with one ingredient per line")
	cmd.Flags().StringVar(&detectionsFile, "detections", "", "Path to a saved detection JSON (offline mode)")
	cmd.Flags().StringVar(&detectorURL, "detector-url", "", "Detector service URL (default: from config)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

type analyzeOpts struct {
	ingredients    string
	file           string
	detectionsFile string
	detectorURL    string
	outputFmt      string
}

func runAnalyze(ctx context.Context, opts analyzeOpts) error {
	ingredients, err := gatherIngredients(opts)
	if err != nil {
		return err
	}
	if len(ingredients) == 0 {
		return fmt.Errorf("no ingredients given; use --ingredients or --file")
	}

	cfg := loadConfig()
	weights := scoring.Defaults().WithOverrides(cfg.Scoring.Weights)

	registry, err := additive.Default()
	if err != nil {
		return fmt.Errorf("loading additive knowledge base: %w", err)
	}
	engine := scoring.NewEngine(registry, weights)

	detection, err := resolveDetection(ctx, opts, cfg, ingredients)
	if err != nil {
		return err
	}

	summary := engine.ComputeScore(detection.Additives, detection.UltraProcessed)

	// Save result to disk for the history command
	saveAnalysisResult(ingredients, summary)

	// Render output
	switch opts.outputFmt {
	case "json":
		renderer := &surface.JSONRenderer{}
		return renderer.Render(os.Stdout, summary)
	default:
		renderer := &surface.TerminalRenderer{}
		return renderer.Render(os.Stdout, summary)
	}
}

func gatherIngredients(opts analyzeOpts) ([]string, error) {
	var raw []string
	switch {
	case opts.ingredients != "":
		raw = strings.Split(opts.ingredients, ",")
	case opts.file != "":
		data, err := os.ReadFile(opts.file)
		if err != nil {
			return nil, fmt.Errorf("reading ingredient file: %w", err)
		}
		raw = strings.Split(string(data), "\n")
	}

	var out []string
	for _, ing := range raw {
		if trimmed := strings.TrimSpace(ing); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}

func resolveDetection(ctx context.Context, opts analyzeOpts, cfg *config.Config, ingredients []string) (*detector.Detection, error) {
	if opts.detectionsFile != "" {
		data, err := os.ReadFile(opts.detectionsFile)
		if err != nil {
			return nil, fmt.Errorf("reading detections file: %w", err)
		}
		var d detector.Detection
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parsing detections file: %w", err)
		}
		return &d, nil
	}

	url := firstNonEmpty(opts.detectorURL, cfg.Detector.URL)
	if url == "" {
		return nil, fmt.Errorf("no detector URL configured; pass --detector-url, set detector.url in config, or use --detections for offline mode")
	}

	fmt.Fprintf(os.Stderr, "Detecting additives (%d ingredients)...\n", len(ingredients))
	client := detector.NewClient(url, cfg.Detector.APIKey, time.Duration(cfg.Detector.Timeout)*time.Second)
	detection, err := client.Detect(ctx, ingredients)
	if err != nil {
		return nil, fmt.Errorf("detecting additives: %w", err)
	}
	fmt.Fprintf(os.Stderr, "  Found %d additives, %d ultra-processed ingredients\n",
		len(detection.Additives), len(detection.UltraProcessed))
	return detection, nil
}

// savedAnalysis is the on-disk format used by the history command.
type savedAnalysis struct {
	*scoring.Summary
	ContentHash string   `json:"content_hash"`
	Ingredients []string `json:"ingredients"`
	AnalyzedAt  string   `json:"analyzed_at"`
}

// saveAnalysisResult persists a summary to the analysis cache directory.
func saveAnalysisResult(ingredients []string, summary *scoring.Summary) {
	dir := config.AnalysisDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create analysis dir: %v\n", err)
		return
	}

	hash := scoring.ContentHash(ingredients)
	wrapped := savedAnalysis{
		Summary:     summary,
		ContentHash: hash,
		Ingredients: ingredients,
		AnalyzedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(wrapped, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal analysis: %v\n", err)
		return
	}

	path := filepath.Join(dir, hash+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save analysis: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Analysis saved: %s\n", path)
}

func loadConfig() *config.Config {
	wd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	path := config.FindConfigFile(wd)
	if path == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config %s: %v\n", path, err)
		return config.DefaultConfig()
	}
	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
