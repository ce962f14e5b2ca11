package api

import (
	"net/http"
)

type additiveResponse struct {
	DisplayName     string  `json:"display_name"`
	ShortSummary    string  `json:"short_summary,omitempty"`
	LongDescription string  `json:"long_description,omitempty"`
	Origin          string  `json:"origin,omitempty"`
	RiskDescription string  `json:"risk_description,omitempty"`
	RiskTier        *string `json:"risk_tier,omitempty"`
}

// handleGetAdditive returns the knowledge-base record for an additive code
// or name.
func (h *Handler) handleGetAdditive(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	record := h.registry.Lookup(key, key)
	if record == nil {
		writeError(w, http.StatusNotFound, "additive not found")
		return
	}

	resp := additiveResponse{
		DisplayName:     record.DisplayName,
		ShortSummary:    record.ShortSummary,
		LongDescription: record.LongDescription,
		Origin:          record.Origin,
		RiskDescription: record.RiskDescription,
	}
	if record.RiskTier != nil {
		tier := record.RiskTier.String()
		resp.RiskTier = &tier
	}
	writeJSON(w, http.StatusOK, resp)
}
