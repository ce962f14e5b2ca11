package additive_test

import (
	"testing"

	"github.com/nutriscope/nutriscope/pkg/additive"
)

func tierPtr(t additive.RiskTier) *additive.RiskTier { return &t }

func TestRegistryLookup(t *testing.T) {
	registry, err := additive.NewRegistry([]additive.Record{
		{
			MatchKeys:   []string{"e102", "tartrazine"},
			DisplayName: "Tartrazine",
			RiskTier:    tierPtr(additive.HighRisk),
		},
		{
			MatchKeys:   []string{"e330", "citric acid"},
			DisplayName: "Citric Acid",
			RiskTier:    tierPtr(additive.NoRisk),
		},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		name     string
		code     string
		rawName  string
		wantName string // expected DisplayName, "" for miss
	}{
		{"hit by code", "E102", "Yellow 5", "Tartrazine"},
		{"hit by name when code unknown", "E999", "Tartrazine", "Tartrazine"},
		{"hit by name with empty code", "", "citric acid", "Citric Acid"},
		{"case insensitive", "e102", "TARTRAZINE", "Tartrazine"},
		{"whitespace trimmed", "  E330  ", "ignored", "Citric Acid"},
		{"code tried before name", "E330", "Tartrazine", "Citric Acid"},
		{"miss is nil, not an error", "E555", "Unknown Substance", ""},
		{"no partial matching at this layer", "", "citric", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := registry.Lookup(tt.code, tt.rawName)
			if tt.wantName == "" {
				if rec != nil {
					t.Errorf("Lookup(%q, %q) = %+v, want nil", tt.code, tt.rawName, rec)
				}
				return
			}
			if rec == nil {
				t.Fatalf("Lookup(%q, %q) = nil, want %q", tt.code, tt.rawName, tt.wantName)
			}
			if rec.DisplayName != tt.wantName {
				t.Errorf("Lookup(%q, %q).DisplayName = %q, want %q", tt.code, tt.rawName, rec.DisplayName, tt.wantName)
			}
		})
	}
}

func TestRegistryConflictingTiersRejected(t *testing.T) {
	_, err := additive.NewRegistry([]additive.Record{
		{MatchKeys: []string{"e951"}, RiskTier: tierPtr(additive.HighRisk)},
		{MatchKeys: []string{"E951"}, RiskTier: tierPtr(additive.LowRisk)},
	})
	if err == nil {
		t.Fatal("expected error for conflicting risk tiers on the same key")
	}
}

func TestRegistryDuplicateKeySameTierKeepsFirst(t *testing.T) {
	registry, err := additive.NewRegistry([]additive.Record{
		{MatchKeys: []string{"e330"}, DisplayName: "Citric Acid", RiskTier: tierPtr(additive.NoRisk)},
		{MatchKeys: []string{"e330"}, DisplayName: "Citric Acid (dup)", RiskTier: tierPtr(additive.NoRisk)},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	rec := registry.Lookup("e330", "")
	if rec == nil || rec.DisplayName != "Citric Acid" {
		t.Errorf("expected the first registration to win, got %+v", rec)
	}
}

func TestRegistryEmptyKeysIgnored(t *testing.T) {
	registry, err := additive.NewRegistry([]additive.Record{
		{MatchKeys: []string{"", "  ", "e100"}, DisplayName: "Curcumin"},
	})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	if rec := registry.Lookup("", "e100"); rec == nil {
		t.Error("expected lookup by the non-empty key to succeed")
	}
	if rec := registry.Lookup("", ""); rec != nil {
		t.Error("empty keys must never match")
	}
}

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"E300", "e300"},
		{"  Ascorbic Acid ", "ascorbic acid"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := additive.NormalizeKey(tt.in); got != tt.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRiskTierTextRoundTrip(t *testing.T) {
	for _, tier := range []additive.RiskTier{additive.NoRisk, additive.LowRisk, additive.ModerateRisk, additive.HighRisk} {
		text, err := tier.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", tier, err)
		}
		var back additive.RiskTier
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if back != tier {
			t.Errorf("round trip: %v -> %s -> %v", tier, text, back)
		}
	}

	var tier additive.RiskTier
	if err := tier.UnmarshalText([]byte("extreme")); err == nil {
		t.Error("expected error for unknown tier name")
	}
}

func TestRiskTierOrdering(t *testing.T) {
	if !(additive.NoRisk < additive.LowRisk && additive.LowRisk < additive.ModerateRisk && additive.ModerateRisk < additive.HighRisk) {
		t.Error("risk tiers must be ordered NoRisk < LowRisk < ModerateRisk < HighRisk")
	}
}
