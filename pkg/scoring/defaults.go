package scoring

// Defaults returns the default scoring weights.
//
// The burden penalty makes additive count matter independent of
// severity: five or more additives cannot reach the top banding even
// when each one is individually low-risk.
func Defaults() Weights {
	return Weights{
		HighRiskCost:     25,
		ModerateRiskCost: 12,
		LowRiskCost:      6,
		NoRiskCost:       2,

		BurdenPenaltyPerItem: 3,
		BurdenPenaltyCap:     25,

		NovaUltraProcessed:        4,
		ProcessingPenaltyModerate: 10,
	}
}
