package scoring

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// ContentHash returns a stable identity for an ingredient list: the
// hex-encoded SHA-256 of the sorted, normalized ingredient names.
// Callers use it to skip recomputation when the same list is presented
// again; ordering and casing differences do not change the hash.
func ContentHash(ingredients []string) string {
	normalized := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		ing = strings.ToLower(strings.TrimSpace(ing))
		if ing == "" {
			continue
		}
		normalized = append(normalized, ing)
	}
	sort.Strings(normalized)

	sum := sha256.Sum256([]byte(strings.Join(normalized, "\n")))
	return hex.EncodeToString(sum[:])
}
