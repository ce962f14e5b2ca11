// Package config handles loading and managing Nutriscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for Nutriscope.
type Config struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Detector DetectorConfig `yaml:"detector"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	// Weights overrides individual scoring weights by key
	// (e.g. "high_risk_cost: 30"). Unset keys keep their defaults.
	Weights map[string]float64 `yaml:"weights"`
}

// DetectorConfig points at the remote ingredient/additive detector.
type DetectorConfig struct {
	URL     string `yaml:"url"`
	APIKey  string `yaml:"api_key"`
	Timeout int    `yaml:"timeout"` // seconds
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Weights: map[string]float64{},
		},
		Detector: DetectorConfig{
			Timeout: 30,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// FindConfigFile looks for .nutriscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".nutriscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the local cache directory.
// Uses ~/.cache/nutriscope/ to keep analysis results out of the working tree.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "nutriscope")
}

// AnalysisDir returns the directory where the CLI stores analysis results.
func AnalysisDir() string {
	return filepath.Join(CacheDir(), "analyses")
}
