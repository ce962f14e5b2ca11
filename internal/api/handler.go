// Package api implements the hosted Nutriscope REST API.
// It provides analyze and read endpoints backed by Postgres and blob storage.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/nutriscope/nutriscope/internal/analysis"
	"github.com/nutriscope/nutriscope/internal/product"
	"github.com/nutriscope/nutriscope/pkg/additive"
)

// Handler is the top-level API handler for the hosted Nutriscope service.
type Handler struct {
	db          *sql.DB
	products    *product.Service
	analysisSvc *analysis.Service
	registry    *additive.Registry
	cache       *SummaryCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, products *product.Service, analysisSvc *analysis.Service, registry *additive.Registry, cache *SummaryCache) *Handler {
	if cache == nil {
		cache = NewSummaryCacheFromEnv()
	}
	return &Handler{
		db:          db,
		products:    products,
		analysisSvc: analysisSvc,
		registry:    registry,
		cache:       cache,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	mux.HandleFunc("POST /api/v1/analyze", h.handleAnalyze)
	mux.HandleFunc("POST /api/v1/products/{productID}/analyze", h.handleAnalyzeProduct)
	mux.HandleFunc("POST /api/products", h.handleCreateProduct)
	mux.HandleFunc("POST /api/products/{productID}/reactions", h.handleLogReaction)

	// Read endpoints
	mux.HandleFunc("GET /api/v1/additives/{key}", h.handleGetAdditive)
	mux.HandleFunc("GET /api/products", h.handleListProducts)
	mux.HandleFunc("GET /api/products/{productID}", h.handleGetProduct)
	mux.HandleFunc("GET /api/products/{productID}/analyses", h.handleListAnalyses)
	mux.HandleFunc("GET /api/products/{productID}/reactions", h.handleListReactions)
	mux.HandleFunc("GET /api/reactions", h.handleListRecentReactions)
	mux.HandleFunc("GET /api/analyses/{analysisID}", h.handleGetAnalysis)

	mux.HandleFunc("GET /healthz", h.handleHealthz)
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.PingContext(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
