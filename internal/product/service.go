// Package product manages the catalog side of Nutriscope: scanned products,
// their stored analyses, and user-logged reactions.
package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Service provides product, analysis, and reaction access backed by Postgres.
type Service struct {
	db *sql.DB
}

// Product represents a scanned food product.
type Product struct {
	ID        string
	Barcode   *string
	Name      string
	Brand     *string
	CreatedAt time.Time
}

// AnalysisRow represents an analysis record from the database. The full
// detection and summary payloads live in blob storage; the row carries the
// headline numbers and the storage refs.
type AnalysisRow struct {
	ID             string
	ProductID      *string
	ContentHash    string
	Status         string
	ErrorMessage   *string
	Score          *int
	OverallTier    *string
	TotalAdditives *int
	Summary        json.RawMessage
	DetectionRef   *string
	SummaryRef     *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Reaction represents a user-logged reaction after consuming a product.
type Reaction struct {
	ID        string
	ProductID string
	Symptom   string
	Severity  int
	Notes     *string
	LoggedAt  time.Time
}

// NewService creates a new product Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// UpsertProduct creates or updates a product. Products with a barcode are
// deduplicated on it; barcode-less products always insert a new row.
func (s *Service) UpsertProduct(ctx context.Context, barcode *string, name string, brand *string) (*Product, error) {
	p := &Product{}
	var err error
	if barcode != nil && *barcode != "" {
		err = s.db.QueryRowContext(ctx,
			`INSERT INTO products (barcode, name, brand)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (barcode) DO UPDATE
			   SET name = EXCLUDED.name,
			       brand = COALESCE(EXCLUDED.brand, products.brand)
			 RETURNING id, barcode, name, brand, created_at`,
			barcode, name, brand,
		).Scan(&p.ID, &p.Barcode, &p.Name, &p.Brand, &p.CreatedAt)
	} else {
		err = s.db.QueryRowContext(ctx,
			`INSERT INTO products (name, brand)
			 VALUES ($1, $2)
			 RETURNING id, barcode, name, brand, created_at`,
			name, brand,
		).Scan(&p.ID, &p.Barcode, &p.Name, &p.Brand, &p.CreatedAt)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert product %s: %w", name, err)
	}
	return p, nil
}

// GetProduct retrieves a product by ID.
func (s *Service) GetProduct(ctx context.Context, productID string) (*Product, error) {
	p := &Product{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, barcode, name, brand, created_at
		 FROM products WHERE id = $1`,
		productID,
	).Scan(&p.ID, &p.Barcode, &p.Name, &p.Brand, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	return p, nil
}

// GetProductByBarcode retrieves a product by barcode.
func (s *Service) GetProductByBarcode(ctx context.Context, barcode string) (*Product, error) {
	p := &Product{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, barcode, name, brand, created_at
		 FROM products WHERE barcode = $1`,
		barcode,
	).Scan(&p.ID, &p.Barcode, &p.Name, &p.Brand, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get product by barcode %s: %w", barcode, err)
	}
	return p, nil
}

// ListProducts returns all products, newest first.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, barcode, name, brand, created_at
		 FROM products ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Barcode, &p.Name, &p.Brand, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

const analysisColumns = `id, product_id, content_hash, status, error_message,
	        score, overall_tier, total_additives, summary, detection_ref, summary_ref,
	        created_at, updated_at`

func scanAnalysis(row interface{ Scan(...any) error }) (*AnalysisRow, error) {
	a := &AnalysisRow{}
	err := row.Scan(
		&a.ID, &a.ProductID, &a.ContentHash, &a.Status, &a.ErrorMessage,
		&a.Score, &a.OverallTier, &a.TotalAdditives, &a.Summary, &a.DetectionRef, &a.SummaryRef,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAnalysesByProduct returns all analyses for a product, newest first.
func (s *Service) ListAnalysesByProduct(ctx context.Context, productID string) ([]AnalysisRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+analysisColumns+`
		 FROM analyses WHERE product_id = $1 ORDER BY created_at DESC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []AnalysisRow
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		analyses = append(analyses, *a)
	}
	return analyses, rows.Err()
}

// GetAnalysisByID returns a single analysis by ID.
func (s *Service) GetAnalysisByID(ctx context.Context, analysisID string) (*AnalysisRow, error) {
	a, err := scanAnalysis(s.db.QueryRowContext(ctx,
		`SELECT `+analysisColumns+`
		 FROM analyses WHERE id = $1`,
		analysisID,
	))
	if err != nil {
		return nil, fmt.Errorf("get analysis %s: %w", analysisID, err)
	}
	return a, nil
}

// GetLatestAnalysisByHash returns the most recent completed analysis for an
// ingredient-list content hash, or sql.ErrNoRows wrapped if none exists.
func (s *Service) GetLatestAnalysisByHash(ctx context.Context, contentHash string) (*AnalysisRow, error) {
	a, err := scanAnalysis(s.db.QueryRowContext(ctx,
		`SELECT `+analysisColumns+`
		 FROM analyses WHERE content_hash = $1 AND status = 'COMPLETED'
		 ORDER BY created_at DESC LIMIT 1`,
		contentHash,
	))
	if err != nil {
		return nil, fmt.Errorf("get analysis by hash: %w", err)
	}
	return a, nil
}

// LogReaction records a reaction against a product. Severity is clamped
// to the 1..5 scale the mobile clients use.
func (s *Service) LogReaction(ctx context.Context, productID, symptom string, severity int, notes *string) (*Reaction, error) {
	if severity < 1 {
		severity = 1
	}
	if severity > 5 {
		severity = 5
	}

	r := &Reaction{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO reactions (product_id, symptom, severity, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, product_id, symptom, severity, notes, logged_at`,
		productID, symptom, severity, notes,
	).Scan(&r.ID, &r.ProductID, &r.Symptom, &r.Severity, &r.Notes, &r.LoggedAt)
	if err != nil {
		return nil, fmt.Errorf("log reaction: %w", err)
	}
	return r, nil
}

// ListReactionsByProduct returns all reactions for a product, newest first.
func (s *Service) ListReactionsByProduct(ctx context.Context, productID string) ([]Reaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, symptom, severity, notes, logged_at
		 FROM reactions WHERE product_id = $1 ORDER BY logged_at DESC`,
		productID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	defer rows.Close()

	var reactions []Reaction
	for rows.Next() {
		var r Reaction
		if err := rows.Scan(&r.ID, &r.ProductID, &r.Symptom, &r.Severity, &r.Notes, &r.LoggedAt); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}

// ListRecentReactions returns the most recent reactions across all products.
func (s *Service) ListRecentReactions(ctx context.Context, limit int) ([]Reaction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, symptom, severity, notes, logged_at
		 FROM reactions ORDER BY logged_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent reactions: %w", err)
	}
	defer rows.Close()

	var reactions []Reaction
	for rows.Next() {
		var r Reaction
		if err := rows.Scan(&r.ID, &r.ProductID, &r.Symptom, &r.Severity, &r.Notes, &r.LoggedAt); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}
