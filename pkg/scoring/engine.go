package scoring

import (
	"strings"

	"github.com/nutriscope/nutriscope/pkg/additive"
)

// Engine scores ingredient analyses against the additive knowledge base.
// It is stateless and pure: safe for any number of concurrent callers.
type Engine struct {
	registry *additive.Registry
	weights  Weights
}

// NewEngine creates a scoring engine backed by the given knowledge base.
// A nil registry is allowed; tier resolution then relies entirely on the
// detector's verdict fallback.
func NewEngine(registry *additive.Registry, weights Weights) *Engine {
	return &Engine{registry: registry, weights: weights}
}

// ComputeScore reduces the detected occurrences to a Summary.
//
// The function is total: empty inputs yield the canonical "no additives"
// result, and malformed numeric fields are clamped rather than rejected,
// so a displayable score is always produced.
func (e *Engine) ComputeScore(detected []additive.DetectedAdditive, ultraProcessed []additive.UltraProcessedIngredient) *Summary {
	var (
		breakdown Breakdown
		fortified int
		seenNames = make(map[string]bool)
		seenCodes = make(map[string]bool)
		summary   Summary
	)

	for _, d := range detected {
		name := additive.NormalizeKey(d.Name)
		code := additive.NormalizeKey(d.Code)

		if d.ChildWarning {
			summary.ChildWarning = true
		}
		if d.SulphiteAllergen {
			summary.SulphiteWarning = true
		}

		// Fortification items count toward the total and toward the
		// seen sets (so ultra-processed matching cannot re-count
		// them), but carry zero penalty.
		if name != "" {
			seenNames[name] = true
		}
		if code != "" {
			seenCodes[code] = true
		}
		if IsFortification(d.Code, d.Name) {
			fortified++
			continue
		}

		breakdown.Add(e.resolveTier(d))
	}

	for _, u := range ultraProcessed {
		name := additive.NormalizeKey(u.Name)
		if name == "" || alreadyCounted(name, seenNames, seenCodes) {
			continue
		}
		breakdown.Add(e.ultraProcessedTier(u))
		seenNames[name] = true
	}

	penalized := breakdown.Total()
	score := 100
	if penalized > 0 {
		cost := breakdown.HighRisk*e.weights.HighRiskCost +
			breakdown.ModerateRisk*e.weights.ModerateRiskCost +
			breakdown.LowRisk*e.weights.LowRiskCost +
			breakdown.NoRisk*e.weights.NoRiskCost

		burden := penalized * e.weights.BurdenPenaltyPerItem
		if burden > e.weights.BurdenPenaltyCap {
			burden = e.weights.BurdenPenaltyCap
		}

		score = 100 - cost - burden
		if score < 0 {
			score = 0
		}
	}

	summary.Score = score
	summary.OverallTier = breakdown.WorstTier()
	summary.TotalAdditives = penalized + fortified
	summary.Breakdown = breakdown
	summary.Label = LabelForScore(score, summary.TotalAdditives)

	return &summary
}

// resolveTier determines the risk tier for a detected additive.
// Curated knowledge-base data always wins over the verdict heuristic.
func (e *Engine) resolveTier(d additive.DetectedAdditive) additive.RiskTier {
	if e.registry != nil {
		if rec := e.registry.Lookup(d.Code, d.Name); rec != nil && rec.RiskTier != nil {
			return *rec.RiskTier
		}
	}

	switch d.Verdict {
	case additive.VerdictAvoid:
		return additive.HighRisk
	case additive.VerdictCaution:
		if d.ChildWarning {
			return additive.HighRisk
		}
		return additive.ModerateRisk
	default:
		origin := strings.ToLower(d.Origin)
		if strings.Contains(origin, "plant") || strings.Contains(origin, "natural") {
			return additive.NoRisk
		}
		return additive.LowRisk
	}
}

// ultraProcessedTier assigns a tier by processing severity. Out-of-range
// inputs are clamped to the nearest valid value.
func (e *Engine) ultraProcessedTier(u additive.UltraProcessedIngredient) additive.RiskTier {
	nova := u.NovaGroup
	if nova < 1 {
		nova = 1
	}
	if nova > 4 {
		nova = 4
	}
	penalty := u.ProcessingPenalty
	if penalty < 0 {
		penalty = 0
	}

	switch {
	case nova >= e.weights.NovaUltraProcessed:
		return additive.HighRisk
	case penalty >= e.weights.ProcessingPenaltyModerate:
		return additive.ModerateRisk
	default:
		return additive.LowRisk
	}
}

// alreadyCounted reports whether an ultra-processed ingredient name
// overlaps something already tallied: an exact name match, a substring
// match in either direction, or a seen code appearing inside the name.
//
// The substring comparison is deliberately approximate ("salt" matches
// "sea salt"); it mirrors the established badge behaviour and is pinned
// by regression tests.
func alreadyCounted(name string, seenNames, seenCodes map[string]bool) bool {
	if seenNames[name] {
		return true
	}
	for seen := range seenNames {
		if strings.Contains(name, seen) || strings.Contains(seen, name) {
			return true
		}
	}
	for code := range seenCodes {
		if strings.Contains(name, code) {
			return true
		}
	}
	return false
}
