package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/nutriscope/nutriscope/internal/product"
)

type logReactionRequest struct {
	Symptom  string  `json:"symptom"`
	Severity int     `json:"severity"`
	Notes    *string `json:"notes,omitempty"`
}

type reactionResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Symptom   string  `json:"symptom"`
	Severity  int     `json:"severity"`
	Notes     *string `json:"notes,omitempty"`
	LoggedAt  string  `json:"logged_at"`
}

func reactionToResponse(r *product.Reaction) reactionResponse {
	return reactionResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		Symptom:   r.Symptom,
		Severity:  r.Severity,
		Notes:     r.Notes,
		LoggedAt:  r.LoggedAt.Format(timeLayout),
	}
}

func (h *Handler) handleLogReaction(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")
	if _, err := h.products.GetProduct(r.Context(), productID); err != nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	var req logReactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Symptom == "" {
		writeError(w, http.StatusBadRequest, "symptom is required")
		return
	}

	reaction, err := h.products.LogReaction(r.Context(), productID, req.Symptom, req.Severity, req.Notes)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to log reaction: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reactionToResponse(reaction))
}

func (h *Handler) handleListReactions(w http.ResponseWriter, r *http.Request) {
	reactions, err := h.products.ListReactionsByProduct(r.Context(), r.PathValue("productID"))
	if err != nil {
		writeJSON(w, http.StatusOK, []reactionResponse{})
		return
	}

	result := make([]reactionResponse, 0, len(reactions))
	for i := range reactions {
		result = append(result, reactionToResponse(&reactions[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

// handleListRecentReactions returns the latest reactions across all
// products, for the app's reaction-diary feed.
func (h *Handler) handleListRecentReactions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	reactions, err := h.products.ListRecentReactions(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusOK, []reactionResponse{})
		return
	}

	result := make([]reactionResponse, 0, len(reactions))
	for i := range reactions {
		result = append(result, reactionToResponse(&reactions[i]))
	}
	writeJSON(w, http.StatusOK, result)
}
