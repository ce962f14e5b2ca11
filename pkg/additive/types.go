// Package additive defines the core data model for Nutriscope.
// These types are the shared vocabulary between the knowledge base,
// the scorer, and the external detector contract.
package additive

import "fmt"

// RiskTier is the four-level ordinal classification of additive concern,
// ordered from least to most concerning. The ordering is load-bearing:
// the scorer uses it to pick the worst tier present and to look up
// penalty weights.
type RiskTier int

const (
	NoRisk RiskTier = iota
	LowRisk
	ModerateRisk
	HighRisk
)

var tierNames = map[RiskTier]string{
	NoRisk:       "none",
	LowRisk:      "low",
	ModerateRisk: "moderate",
	HighRisk:     "high",
}

func (t RiskTier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return fmt.Sprintf("RiskTier(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler so tiers serialize as
// their stable wire names rather than raw integers.
func (t RiskTier) MarshalText() ([]byte, error) {
	name, ok := tierNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown risk tier %d", int(t))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *RiskTier) UnmarshalText(text []byte) error {
	for tier, name := range tierNames {
		if name == string(text) {
			*t = tier
			return nil
		}
	}
	return fmt.Errorf("unknown risk tier %q", string(text))
}

// Verdict is the external detector's coarse three-valued safety
// classification, used as a fallback signal when no curated tier exists.
type Verdict string

const (
	VerdictNeutral Verdict = "NEUTRAL"
	VerdictCaution Verdict = "CAUTION"
	VerdictAvoid   Verdict = "AVOID"
)

// Record is one knowledge-base entry: everything curated about a single
// additive substance. Records are constructed once at load time and
// never mutated.
type Record struct {
	// MatchKeys are the normalized lookup strings for this record:
	// an E-number-style code and/or common-name spellings. All keys
	// point at the same record.
	MatchKeys []string `json:"match_keys"`

	// DisplayName overrides the raw detected name for display, if set.
	DisplayName string `json:"display_name,omitempty"`

	// Free-text fields, opaque to the scorer.
	ShortSummary    string `json:"short_summary,omitempty"`
	LongDescription string `json:"long_description,omitempty"`
	Origin          string `json:"origin,omitempty"`
	RiskDescription string `json:"risk_description,omitempty"`

	// RiskTier is the curated tier override. When nil, the scorer
	// derives a tier from the detector's verdict instead.
	RiskTier *RiskTier `json:"risk_tier,omitempty"`
}

// DetectedAdditive is one additive occurrence found in a product's
// ingredient list by the external detector. Consumed read-only.
type DetectedAdditive struct {
	Name string `json:"name"`
	Code string `json:"code,omitempty"` // E-number-style code, possibly empty

	// Group is the functional category ("emulsifier", "colouring").
	// Used for fallback description generation only, never for scoring.
	Group string `json:"group,omitempty"`

	// Origin is a free-text origin classification ("synthetic", "plant").
	// Fallback signal for tier inference when no curated tier exists.
	Origin string `json:"origin,omitempty"`

	Verdict Verdict `json:"verdict"`

	// ChildWarning marks colourings that carry regulatory
	// child-behaviour warnings.
	ChildWarning     bool `json:"child_warning,omitempty"`
	SulphiteAllergen bool `json:"sulphite_allergen,omitempty"`
}

// UltraProcessedIngredient is an ingredient flagged as indicating heavy
// industrial processing, tracked separately from named additives but
// de-duplicated against them by the scorer.
type UltraProcessedIngredient struct {
	Name string `json:"name"`

	// NovaGroup is the external 1-4 processing-intensity classification;
	// 4 denotes ultra-processed.
	NovaGroup int `json:"nova_group"`

	// ProcessingPenalty is a pre-computed severity score from the
	// external detector.
	ProcessingPenalty float64 `json:"processing_penalty"`
}
