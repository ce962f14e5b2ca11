package analysis

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/nutriscope/nutriscope/internal/detector"
	"github.com/nutriscope/nutriscope/internal/product"
	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// AnalysisStatus represents the lifecycle of an analysis.
const (
	StatusQueued    = "QUEUED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// AnalyzeRequest describes what to analyze.
type AnalyzeRequest struct {
	ProductID   *string
	Ingredients []string
}

// Result is the outcome of an analysis run.
type Result struct {
	AnalysisID string           `json:"analysis_id"`
	Summary    *scoring.Summary `json:"summary"`
	Cached     bool             `json:"cached"`
}

// Detector abstracts the detection client so the analysis package does not
// depend on a live HTTP endpoint.
type Detector interface {
	Detect(ctx context.Context, ingredients []string) (*detector.Detection, error)
}

// Service orchestrates the analysis pipeline.
type Service struct {
	db       *sql.DB
	products *product.Service
	storage  StorageClient
	detector Detector
	engine   *scoring.Engine
}

// NewService creates a new analysis Service.
func NewService(db *sql.DB, products *product.Service, storage StorageClient, det Detector, engine *scoring.Engine) *Service {
	return &Service{
		db:       db,
		products: products,
		storage:  storage,
		detector: det,
		engine:   engine,
	}
}

// AnalyzeProduct runs the full pipeline for one ingredient list. Identical
// lists are memoized on their content hash: a completed analysis with the
// same hash short-circuits detection and scoring, and the stored summary is
// reused.
func (s *Service) AnalyzeProduct(ctx context.Context, req AnalyzeRequest) (*Result, error) {
	contentHash := scoring.ContentHash(req.Ingredients)

	// 1. Memoization check
	if cached, err := s.products.GetLatestAnalysisByHash(ctx, contentHash); err == nil {
		return s.reuseAnalysis(ctx, req, cached)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check memoized analysis: %w", err)
	}

	// 2. Create the analysis record
	analysisID, err := s.createAnalysis(ctx, req.ProductID, contentHash)
	if err != nil {
		return nil, fmt.Errorf("create analysis: %w", err)
	}

	if err = s.updateStatus(ctx, analysisID, StatusRunning, nil); err != nil {
		return nil, fmt.Errorf("update status to running: %w", err)
	}

	// On failure, mark the analysis as failed
	defer func() {
		if err != nil {
			errMsg := err.Error()
			if updateErr := s.updateStatus(ctx, analysisID, StatusFailed, &errMsg); updateErr != nil {
				log.Printf("failed to update analysis status: %v", updateErr)
			}
		}
	}()

	// 3. Detect additives and ultra-processed ingredients
	detection, err := s.detector.Detect(ctx, req.Ingredients)
	if err != nil {
		return nil, fmt.Errorf("detect additives: %w", err)
	}

	detectionData, err := json.Marshal(detection)
	if err != nil {
		return nil, fmt.Errorf("marshal detection: %w", err)
	}
	if err = s.storage.PutDetection(ctx, analysisID, detectionData); err != nil {
		return nil, fmt.Errorf("put detection blob: %w", err)
	}

	// 4. Score
	summary := s.engine.ComputeScore(detection.Additives, detection.UltraProcessed)

	summaryData, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	if err = s.storage.PutSummary(ctx, analysisID, summaryData); err != nil {
		return nil, fmt.Errorf("put summary blob: %w", err)
	}

	// 5. Finalize the analysis record
	detectionRef := "detections/" + analysisID + ".json"
	summaryRef := "summaries/" + analysisID + ".json"
	_, err = s.db.ExecContext(ctx,
		`UPDATE analyses
		 SET status = $1, score = $2, overall_tier = $3, total_additives = $4,
		     summary = $5, detection_ref = $6, summary_ref = $7, updated_at = now()
		 WHERE id = $8`,
		StatusCompleted, summary.Score, summary.OverallTier.String(), summary.TotalAdditives,
		summaryData, detectionRef, summaryRef, analysisID,
	)
	if err != nil {
		return nil, fmt.Errorf("finalize analysis: %w", err)
	}

	log.Printf("analysis %s completed: score=%d tier=%s additives=%d",
		analysisID, summary.Score, summary.OverallTier, summary.TotalAdditives)
	return &Result{AnalysisID: analysisID, Summary: summary}, nil
}

// reuseAnalysis returns a memoized summary. When the request names a product
// the cached row does not belong to, a new completed row is recorded against
// that product, pointing at the same stored blobs, so the product's history
// stays complete.
func (s *Service) reuseAnalysis(ctx context.Context, req AnalyzeRequest, cached *product.AnalysisRow) (*Result, error) {
	var summary scoring.Summary
	if err := json.Unmarshal(cached.Summary, &summary); err != nil {
		return nil, fmt.Errorf("unmarshal cached summary: %w", err)
	}

	analysisID := cached.ID
	if req.ProductID != nil && (cached.ProductID == nil || *cached.ProductID != *req.ProductID) {
		id := uuid.NewString()
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO analyses (id, product_id, content_hash, status, score, overall_tier,
			                       total_additives, summary, detection_ref, summary_ref)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, req.ProductID, cached.ContentHash, StatusCompleted,
			cached.Score, cached.OverallTier, cached.TotalAdditives,
			cached.Summary, cached.DetectionRef, cached.SummaryRef,
		)
		if err != nil {
			return nil, fmt.Errorf("link cached analysis: %w", err)
		}
		analysisID = id
	}

	log.Printf("analysis cache hit for hash %s", cached.ContentHash)
	return &Result{AnalysisID: analysisID, Summary: &summary, Cached: true}, nil
}

// GetDetection loads the stored detection payload for an analysis.
func (s *Service) GetDetection(ctx context.Context, analysisID string) (*detector.Detection, error) {
	data, err := s.storage.GetDetection(ctx, analysisID)
	if err != nil {
		return nil, fmt.Errorf("load detection blob: %w", err)
	}
	var d detector.Detection
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal detection: %w", err)
	}
	return &d, nil
}

func (s *Service) createAnalysis(ctx context.Context, productID *string, contentHash string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, product_id, content_hash, status)
		 VALUES ($1, $2, $3, $4)`,
		id, productID, contentHash, StatusQueued,
	)
	if err != nil {
		return "", fmt.Errorf("insert analysis row: %w", err)
	}
	return id, nil
}

func (s *Service) updateStatus(ctx context.Context, id, status string, errMsg *string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE analyses SET status = $1, error_message = $2, updated_at = now() WHERE id = $3`,
		status, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("update analysis status: %w", err)
	}
	return nil
}
