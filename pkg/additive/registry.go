package additive

import (
	"fmt"
	"log"
	"strings"
)

// Registry is the additive knowledge base: an immutable many-to-one
// mapping from normalized match keys to records. Safe for concurrent
// readers once constructed.
type Registry struct {
	byKey   map[string]*Record
	records []*Record
}

// NewRegistry builds a Registry from the given records.
//
// Duplicate registration of the same key is a configuration issue:
// an identical re-registration keeps the first record and logs, while
// a collision with a conflicting risk tier means the dataset is
// internally inconsistent and is returned as an error.
func NewRegistry(records []Record) (*Registry, error) {
	r := &Registry{byKey: make(map[string]*Record, len(records)*2)}

	for i := range records {
		rec := &records[i]
		r.records = append(r.records, rec)

		for _, key := range rec.MatchKeys {
			norm := NormalizeKey(key)
			if norm == "" {
				continue
			}

			existing, ok := r.byKey[norm]
			if !ok {
				r.byKey[norm] = rec
				continue
			}
			if conflictingTiers(existing.RiskTier, rec.RiskTier) {
				return nil, fmt.Errorf("key %q registered with conflicting risk tiers (%v vs %v)",
					norm, tierOrNil(existing.RiskTier), tierOrNil(rec.RiskTier))
			}
			log.Printf("additive: duplicate key %q, keeping first registration", norm)
		}
	}

	return r, nil
}

// Lookup resolves a detected additive to its curated record, trying the
// code first and then the name. A nil result is the normal outcome for
// additives with no curated entry; it is never an error.
func (r *Registry) Lookup(code, name string) *Record {
	if rec, ok := r.byKey[NormalizeKey(code)]; ok {
		return rec
	}
	if rec, ok := r.byKey[NormalizeKey(name)]; ok {
		return rec
	}
	return nil
}

// Len returns the number of records in the registry.
func (r *Registry) Len() int {
	return len(r.records)
}

// Records returns all records, for dataset audits and tests.
func (r *Registry) Records() []*Record {
	return r.records
}

// NormalizeKey lowercases and trims a lookup key. Empty keys normalize
// to "" and never match.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func conflictingTiers(a, b *RiskTier) bool {
	if a == nil || b == nil {
		return (a == nil) != (b == nil)
	}
	return *a != *b
}

func tierOrNil(t *RiskTier) string {
	if t == nil {
		return "<none>"
	}
	return t.String()
}
