package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Detector.Timeout != 30 {
		t.Errorf("expected default detector timeout 30, got %d", cfg.Detector.Timeout)
	}
	if cfg.Scoring.Weights == nil {
		t.Error("expected Weights map to be initialized, got nil")
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "non-existent file returns defaults",
			yaml: "", // signal: don't create a file
			check: func(t *testing.T, cfg *Config) {
				if cfg.Detector.Timeout != 30 {
					t.Errorf("expected default timeout 30, got %d", cfg.Detector.Timeout)
				}
			},
		},
		{
			name: "full config",
			yaml: `
scoring:
  weights:
    high_risk_cost: 30
    burden_penalty_cap: 20
detector:
  url: https://detector.example.com
  api_key: secret
  timeout: 10
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Detector.URL != "https://detector.example.com" {
					t.Errorf("Detector.URL = %q", cfg.Detector.URL)
				}
				if cfg.Detector.Timeout != 10 {
					t.Errorf("Detector.Timeout = %d, want 10", cfg.Detector.Timeout)
				}
				if cfg.Scoring.Weights["high_risk_cost"] != 30 {
					t.Errorf("weights[high_risk_cost] = %v, want 30", cfg.Scoring.Weights["high_risk_cost"])
				}
			},
		},
		{
			name: "partial config keeps defaults",
			yaml: `
detector:
  url: http://localhost:9090
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Detector.URL != "http://localhost:9090" {
					t.Errorf("Detector.URL = %q", cfg.Detector.URL)
				}
				if cfg.Detector.Timeout != 30 {
					t.Errorf("Detector.Timeout = %d, want default 30", cfg.Detector.Timeout)
				}
			},
		},
		{
			name:    "malformed yaml",
			yaml:    "detector: [not a mapping",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tt.yaml == "" {
				path = filepath.Join(t.TempDir(), "does-not-exist.yaml")
			} else {
				if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
					t.Fatalf("writing config: %v", err)
				}
			}

			cfg, err := Load(path)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfgDir := filepath.Join(root, ".nutriscope")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(cfgDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(nested); got != cfgPath {
		t.Errorf("FindConfigFile(%q) = %q, want %q", nested, got, cfgPath)
	}

	empty := t.TempDir()
	if got := FindConfigFile(empty); got != "" {
		t.Errorf("FindConfigFile(%q) = %q, want empty", empty, got)
	}
}
