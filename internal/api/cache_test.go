package api

import (
	"testing"

	"github.com/nutriscope/nutriscope/internal/analysis"
)

func result(id string) *analysis.Result {
	return &analysis.Result{AnalysisID: id}
}

func TestSummaryCachePutGet(t *testing.T) {
	c := NewSummaryCache(2)

	if got := c.Get("hash1"); got != nil {
		t.Errorf("Get on empty cache = %v, want nil", got)
	}

	c.Put("hash1", result("a1"))
	if got := c.Get("hash1"); got == nil || got.AnalysisID != "a1" {
		t.Errorf("Get(hash1) = %v, want a1", got)
	}
}

func TestSummaryCacheEvictsOldest(t *testing.T) {
	c := NewSummaryCache(2)
	c.Put("hash1", result("a1"))
	c.Put("hash2", result("a2"))
	c.Put("hash3", result("a3"))

	if got := c.Get("hash1"); got != nil {
		t.Errorf("hash1 should have been evicted, got %v", got)
	}
	if got := c.Get("hash3"); got == nil {
		t.Error("hash3 should be present")
	}
}

func TestSummaryCacheLRUOrdering(t *testing.T) {
	c := NewSummaryCache(2)
	c.Put("hash1", result("a1"))
	c.Put("hash2", result("a2"))

	// Touch hash1 so hash2 becomes the eviction candidate.
	c.Get("hash1")
	c.Put("hash3", result("a3"))

	if got := c.Get("hash1"); got == nil {
		t.Error("recently used hash1 should survive eviction")
	}
	if got := c.Get("hash2"); got != nil {
		t.Errorf("hash2 should have been evicted, got %v", got)
	}
}

func TestSummaryCacheDefaultSize(t *testing.T) {
	c := NewSummaryCache(0)
	if c.maxSize != 100 {
		t.Errorf("maxSize = %d, want default 100", c.maxSize)
	}
}
