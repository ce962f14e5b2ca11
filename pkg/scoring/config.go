package scoring

// Weights holds the scoring weights and thresholds for the engine.
type Weights struct {
	// Per-item unit costs by resolved risk tier.
	HighRiskCost     int
	ModerateRiskCost int
	LowRiskCost      int
	NoRiskCost       int // natural but still counted

	// Flat "too many additives" cost, independent of tier.
	BurdenPenaltyPerItem int
	BurdenPenaltyCap     int

	// Ultra-processed ingredient thresholds.
	NovaUltraProcessed        int     // NOVA group at or above this scores HighRisk
	ProcessingPenaltyModerate float64 // processing penalty at or above this scores ModerateRisk
}

// WithOverrides returns a copy of w with any recognized keys from the
// config override map applied. Unknown keys are ignored.
func (w Weights) WithOverrides(overrides map[string]float64) Weights {
	for key, v := range overrides {
		switch key {
		case "high_risk_cost":
			w.HighRiskCost = int(v)
		case "moderate_risk_cost":
			w.ModerateRiskCost = int(v)
		case "low_risk_cost":
			w.LowRiskCost = int(v)
		case "no_risk_cost":
			w.NoRiskCost = int(v)
		case "burden_penalty_per_item":
			w.BurdenPenaltyPerItem = int(v)
		case "burden_penalty_cap":
			w.BurdenPenaltyCap = int(v)
		case "nova_ultra_processed":
			w.NovaUltraProcessed = int(v)
		case "processing_penalty_moderate":
			w.ProcessingPenaltyModerate = v
		}
	}
	return w
}
