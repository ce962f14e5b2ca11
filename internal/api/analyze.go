package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nutriscope/nutriscope/internal/analysis"
	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// analyzeRequest is the JSON body for POST /api/v1/analyze.
type analyzeRequest struct {
	Ingredients []string `json:"ingredients"`
}

func cleanIngredients(raw []string) []string {
	var out []string
	for _, ing := range raw {
		if strings.TrimSpace(ing) != "" {
			out = append(out, ing)
		}
	}
	return out
}

// handleAnalyze scores an ad-hoc ingredient list without attaching it to a
// product.
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Ingredients = cleanIngredients(req.Ingredients)
	if len(req.Ingredients) == 0 {
		writeError(w, http.StatusBadRequest, "ingredients must not be empty")
		return
	}

	h.analyze(w, r, analysis.AnalyzeRequest{Ingredients: req.Ingredients})
}

// handleAnalyzeProduct scores an ingredient list and records the analysis
// against an existing product.
func (h *Handler) handleAnalyzeProduct(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("productID")
	if _, err := h.products.GetProduct(r.Context(), productID); err != nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.Ingredients = cleanIngredients(req.Ingredients)
	if len(req.Ingredients) == 0 {
		writeError(w, http.StatusBadRequest, "ingredients must not be empty")
		return
	}

	h.analyze(w, r, analysis.AnalyzeRequest{ProductID: &productID, Ingredients: req.Ingredients})
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request, req analysis.AnalyzeRequest) {
	// Hot lists skip the pipeline entirely. The in-memory cache only serves
	// ad-hoc requests; product-bound analyses always reach the service so the
	// product's history is recorded.
	contentHash := scoring.ContentHash(req.Ingredients)
	if req.ProductID == nil {
		if cached := h.cache.Get(contentHash); cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result, err := h.analysisSvc.AnalyzeProduct(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadGateway, "analysis failed: "+err.Error())
		return
	}

	h.cache.Put(contentHash, &analysis.Result{
		AnalysisID: result.AnalysisID,
		Summary:    result.Summary,
		Cached:     true,
	})
	writeJSON(w, http.StatusOK, result)
}

// handleGetAnalysis returns a stored analysis row by ID.
func (h *Handler) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	row, err := h.products.GetAnalysisByID(r.Context(), r.PathValue("analysisID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}
	writeJSON(w, http.StatusOK, analysisRowToResponse(row))
}
