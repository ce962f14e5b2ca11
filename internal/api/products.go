package api

import (
	"encoding/json"
	"net/http"

	"github.com/nutriscope/nutriscope/internal/product"
)

type productResponse struct {
	ID        string  `json:"id"`
	Barcode   *string `json:"barcode,omitempty"`
	Name      string  `json:"name"`
	Brand     *string `json:"brand,omitempty"`
	CreatedAt string  `json:"created_at"`
}

type analysisResponse struct {
	ID             string          `json:"id"`
	ProductID      *string         `json:"product_id,omitempty"`
	ContentHash    string          `json:"content_hash"`
	Status         string          `json:"status"`
	ErrorMessage   *string         `json:"error_message,omitempty"`
	Score          *int            `json:"score,omitempty"`
	OverallTier    *string         `json:"overall_tier,omitempty"`
	TotalAdditives *int            `json:"total_additives,omitempty"`
	Summary        json.RawMessage `json:"summary,omitempty"`
	CreatedAt      string          `json:"created_at"`
}

const timeLayout = "2006-01-02T15:04:05Z"

func productToResponse(p *product.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Barcode:   p.Barcode,
		Name:      p.Name,
		Brand:     p.Brand,
		CreatedAt: p.CreatedAt.Format(timeLayout),
	}
}

func analysisRowToResponse(a *product.AnalysisRow) analysisResponse {
	return analysisResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		ContentHash:    a.ContentHash,
		Status:         a.Status,
		ErrorMessage:   a.ErrorMessage,
		Score:          a.Score,
		OverallTier:    a.OverallTier,
		TotalAdditives: a.TotalAdditives,
		Summary:        a.Summary,
		CreatedAt:      a.CreatedAt.Format(timeLayout),
	}
}

type createProductRequest struct {
	Barcode *string `json:"barcode,omitempty"`
	Name    string  `json:"name"`
	Brand   *string `json:"brand,omitempty"`
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	p, err := h.products.UpsertProduct(r.Context(), req.Barcode, req.Name, req.Brand)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save product: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, productToResponse(p))
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	// Barcode lookup doubles as the scan endpoint for mobile clients.
	if barcode := r.URL.Query().Get("barcode"); barcode != "" {
		p, err := h.products.GetProductByBarcode(r.Context(), barcode)
		if err != nil {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeJSON(w, http.StatusOK, []productResponse{productToResponse(p)})
		return
	}

	products, err := h.products.ListProducts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, []productResponse{})
		return
	}

	result := make([]productResponse, 0, len(products))
	for i := range products {
		result = append(result, productToResponse(&products[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.GetProduct(r.Context(), r.PathValue("productID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, productToResponse(p))
}

func (h *Handler) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.products.ListAnalysesByProduct(r.Context(), r.PathValue("productID"))
	if err != nil {
		writeJSON(w, http.StatusOK, []analysisResponse{})
		return
	}

	result := make([]analysisResponse, 0, len(analyses))
	for i := range analyses {
		result = append(result, analysisRowToResponse(&analyses[i]))
	}
	writeJSON(w, http.StatusOK, result)
}
