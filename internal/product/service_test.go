package product

import (
	"testing"
)

func TestProductStruct(t *testing.T) {
	barcode := "5012345678900"
	p := Product{
		ID:      "product-uuid-1",
		Barcode: &barcode,
		Name:    "Fizzy Orange",
	}

	if p.ID != "product-uuid-1" {
		t.Errorf("ID = %q, want %q", p.ID, "product-uuid-1")
	}
	if *p.Barcode != "5012345678900" {
		t.Errorf("Barcode = %q, want %q", *p.Barcode, "5012345678900")
	}
	if p.Brand != nil {
		t.Errorf("Brand = %v, want nil", p.Brand)
	}
}

func TestAnalysisRowOptionalFields(t *testing.T) {
	tests := []struct {
		name   string
		score  *int
		status string
		isNil  bool
	}{
		{
			name:   "completed analysis carries a score",
			score:  ptrInt(72),
			status: "COMPLETED",
			isNil:  false,
		},
		{
			name:   "queued analysis has no score yet",
			score:  nil,
			status: "QUEUED",
			isNil:  true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := AnalysisRow{
				ID:          "a-1",
				ContentHash: "deadbeef",
				Status:      tc.status,
				Score:       tc.score,
			}

			if (a.Score == nil) != tc.isNil {
				t.Errorf("Score nil = %v, want %v", a.Score == nil, tc.isNil)
			}
			if !tc.isNil && *a.Score != 72 {
				t.Errorf("Score = %d, want 72", *a.Score)
			}
		})
	}
}

func TestNewService(t *testing.T) {
	// NewService should not panic with nil db (it just stores the reference).
	svc := NewService(nil)
	if svc == nil {
		t.Fatal("NewService returned nil")
	}
}

func TestServiceMethodSet(t *testing.T) {
	// The Service methods all require a real Postgres database; full
	// integration tests need a test database. Verify the method set here.
	svc := &Service{}
	if svc.db != nil {
		t.Error("zero-value Service should have nil db")
	}

	_ = svc.UpsertProduct
	_ = svc.GetProduct
	_ = svc.GetProductByBarcode
	_ = svc.ListProducts
	_ = svc.ListAnalysesByProduct
	_ = svc.GetAnalysisByID
	_ = svc.GetLatestAnalysisByHash
	_ = svc.LogReaction
	_ = svc.ListReactionsByProduct
	_ = svc.ListRecentReactions
}

func TestReactionStruct(t *testing.T) {
	notes := "headache within an hour"
	r := Reaction{
		ID:        "reaction-uuid-1",
		ProductID: "product-uuid-1",
		Symptom:   "headache",
		Severity:  3,
		Notes:     &notes,
	}

	if r.Symptom != "headache" {
		t.Errorf("Symptom = %q, want %q", r.Symptom, "headache")
	}
	if r.Severity != 3 {
		t.Errorf("Severity = %d, want 3", r.Severity)
	}
	if *r.Notes != notes {
		t.Errorf("Notes = %q, want %q", *r.Notes, notes)
	}
}

func ptrInt(v int) *int {
	return &v
}
