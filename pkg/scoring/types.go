// Package scoring implements the Nutriscope additive risk scorer.
// It reduces detected additive and ultra-processed-ingredient occurrences
// into a single explainable 0-100 score with a per-tier breakdown.
package scoring

import "github.com/nutriscope/nutriscope/pkg/additive"

// Summary is the complete output of scoring one ingredient list.
// Immutable once computed; recomputed whenever the input list changes.
type Summary struct {
	// Score is 0-100, monotonically decreasing as risk increases.
	// 100 means no penalized additives were found.
	Score int `json:"score"`

	// OverallTier is the single worst tier present among penalized
	// items, or NoRisk when nothing was penalized.
	OverallTier additive.RiskTier `json:"overall_tier"`

	// TotalAdditives counts every detected additive including
	// fortification substances, which are shown but never penalized.
	TotalAdditives int `json:"total_additives"`

	Breakdown Breakdown `json:"breakdown"`

	ChildWarning    bool `json:"child_warning"`
	SulphiteWarning bool `json:"sulphite_warning"`

	// Label is the deterministic grade banding for the badge.
	Label string `json:"label"`
}

// Breakdown counts penalized items per risk tier. Fortification
// substances contribute to no tier.
type Breakdown struct {
	NoRisk       int `json:"none"`
	LowRisk      int `json:"low"`
	ModerateRisk int `json:"moderate"`
	HighRisk     int `json:"high"`
}

// Add increments the count for the given tier.
func (b *Breakdown) Add(tier additive.RiskTier) {
	switch tier {
	case additive.HighRisk:
		b.HighRisk++
	case additive.ModerateRisk:
		b.ModerateRisk++
	case additive.LowRisk:
		b.LowRisk++
	default:
		b.NoRisk++
	}
}

// Count returns the count for the given tier.
func (b Breakdown) Count(tier additive.RiskTier) int {
	switch tier {
	case additive.HighRisk:
		return b.HighRisk
	case additive.ModerateRisk:
		return b.ModerateRisk
	case additive.LowRisk:
		return b.LowRisk
	default:
		return b.NoRisk
	}
}

// Total returns the penalized item count across all tiers.
func (b Breakdown) Total() int {
	return b.NoRisk + b.LowRisk + b.ModerateRisk + b.HighRisk
}

// WorstTier returns the highest tier with a nonzero count, or NoRisk
// when every count is zero.
func (b Breakdown) WorstTier() additive.RiskTier {
	switch {
	case b.HighRisk > 0:
		return additive.HighRisk
	case b.ModerateRisk > 0:
		return additive.ModerateRisk
	case b.LowRisk > 0:
		return additive.LowRisk
	default:
		return additive.NoRisk
	}
}

// LabelForScore maps a score and total additive count to the banding
// label shown on the badge. A product with only fortification additives
// scores 100 but still reads "Few Additives", not "No Additives".
func LabelForScore(score, totalAdditives int) string {
	if totalAdditives == 0 {
		return "No Additives"
	}
	switch {
	case score >= 80:
		return "Few Additives"
	case score >= 60:
		return "Some Additives"
	case score >= 40:
		return "Several Additives"
	case score >= 20:
		return "Many Additives"
	default:
		return "High Additive Count"
	}
}
