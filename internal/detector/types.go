package detector

import "github.com/nutriscope/nutriscope/pkg/additive"

// DetectRequest is the payload sent to the detector service.
type DetectRequest struct {
	Ingredients []string `json:"ingredients"`
}

// Detection is the detector's response for one ingredient list.
type Detection struct {
	Additives      []additive.DetectedAdditive         `json:"additives"`
	UltraProcessed []additive.UltraProcessedIngredient `json:"ultra_processed"`
	Confidence     float64                             `json:"confidence"`
}
