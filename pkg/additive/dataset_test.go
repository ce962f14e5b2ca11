package additive_test

import (
	"testing"

	"github.com/nutriscope/nutriscope/pkg/additive"
)

// The embedded dataset is domain data maintained separately from the
// code; these tests are the load-time assertions guarding its integrity.

func TestDefaultDatasetLoads(t *testing.T) {
	registry, err := additive.Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}
	if registry.Len() == 0 {
		t.Fatal("embedded dataset is empty")
	}

	// Default() must hand back the same registry on every call.
	again, err := additive.Default()
	if err != nil {
		t.Fatalf("Default() second call: %v", err)
	}
	if registry != again {
		t.Error("Default() returned a different registry on the second call")
	}
}

func TestDefaultDatasetEntriesWellFormed(t *testing.T) {
	registry, err := additive.Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}

	for _, rec := range registry.Records() {
		if len(rec.MatchKeys) == 0 {
			t.Errorf("record %q has no match keys", rec.DisplayName)
		}
		for _, key := range rec.MatchKeys {
			if additive.NormalizeKey(key) != key {
				t.Errorf("record %q: key %q is not stored normalized", rec.DisplayName, key)
			}
		}
	}
}

func TestDefaultDatasetKnownEntries(t *testing.T) {
	registry, err := additive.Default()
	if err != nil {
		t.Fatalf("Default(): %v", err)
	}

	tests := []struct {
		code     string
		name     string
		wantTier additive.RiskTier
	}{
		{"E102", "", additive.HighRisk},     // tartrazine
		{"", "aspartame", additive.HighRisk},
		{"E330", "", additive.NoRisk},       // citric acid
		{"E621", "", additive.LowRisk},      // MSG
		{"E211", "", additive.ModerateRisk}, // sodium benzoate
	}

	for _, tt := range tests {
		rec := registry.Lookup(tt.code, tt.name)
		if rec == nil {
			t.Errorf("Lookup(%q, %q) = nil, want a curated record", tt.code, tt.name)
			continue
		}
		if rec.RiskTier == nil {
			t.Errorf("Lookup(%q, %q): record has no curated tier", tt.code, tt.name)
			continue
		}
		if *rec.RiskTier != tt.wantTier {
			t.Errorf("Lookup(%q, %q) tier = %v, want %v", tt.code, tt.name, *rec.RiskTier, tt.wantTier)
		}
	}
}
