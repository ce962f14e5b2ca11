package api

import (
	"os"
	"strconv"
	"sync"

	"github.com/nutriscope/nutriscope/internal/analysis"
)

// SummaryCache is a thread-safe LRU cache for analysis results, keyed by
// the ingredient-list content hash.
type SummaryCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*cacheEntry
	order   []string // oldest first
}

type cacheEntry struct {
	result *analysis.Result
}

// NewSummaryCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 100.
func NewSummaryCache(maxSize int) *SummaryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &SummaryCache{
		maxSize: maxSize,
		entries: make(map[string]*cacheEntry),
	}
}

// NewSummaryCacheFromEnv creates a cache with size from SUMMARY_CACHE_SIZE env var.
func NewSummaryCacheFromEnv() *SummaryCache {
	size := 100
	if v := os.Getenv("SUMMARY_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewSummaryCache(size)
}

// Get retrieves a result from the cache, or nil if not found.
func (c *SummaryCache) Get(contentHash string) *analysis.Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[contentHash]
	if !ok {
		return nil
	}

	// Move to end (most recently used)
	c.moveToEnd(contentHash)
	return entry.result
}

// Put adds a result to the cache, evicting the oldest if full.
func (c *SummaryCache) Put(contentHash string, result *analysis.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[contentHash]; ok {
		c.entries[contentHash] = &cacheEntry{result: result}
		c.moveToEnd(contentHash)
		return
	}

	// Evict oldest if at capacity
	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[contentHash] = &cacheEntry{result: result}
	c.order = append(c.order, contentHash)
}

func (c *SummaryCache) moveToEnd(contentHash string) {
	for i, k := range c.order {
		if k == contentHash {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, contentHash)
			return
		}
	}
}
