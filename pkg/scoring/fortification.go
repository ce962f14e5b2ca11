package scoring

import (
	"strings"

	"github.com/nutriscope/nutriscope/pkg/additive"
)

// Fortification allow-list. This is domain data, not algorithm: kept
// here as plain tables so the lists can be extended without touching
// the scorer control flow.

// fortificationCodePrefixes covers vitamin and mineral E-numbers:
// ascorbates (vitamin C), tocopherols (vitamin E), riboflavin,
// beta-carotene, niacin, and selected calcium/mineral codes.
// Prefix matching keeps subtype variants (e.g. "E101a", "E306-E309")
// covered.
var fortificationCodePrefixes = []string{
	"e101",  // riboflavin
	"e160a", // beta-carotene
	"e170",  // calcium carbonate
	"e300", "e301", "e302", "e303", "e304", // ascorbic acid and ascorbates
	"e306", "e307", "e308", "e309", // tocopherols
	"e341", // calcium phosphate
	"e375", // niacin
}

// fortificationKeywords catches fortification substances declared by
// name rather than code.
var fortificationKeywords = []string{
	"vitamin",
	"ascorbic acid",
	"riboflavin",
	"folic acid",
	"folate",
	"niacin",
	"thiamin",
	"tocopherol",
	"beta-carotene",
	"beta carotene",
	"calcium carbonate",
	"calcium phosphate",
	"potassium iodide",
	"ferrous",
	"iron",
	"zinc",
}

// IsFortification reports whether a detected additive is a nutritionally
// beneficial fortification substance. Fortification items are displayed
// but excluded from risk penalty.
func IsFortification(code, name string) bool {
	normCode := additive.NormalizeKey(code)
	if normCode != "" {
		for _, prefix := range fortificationCodePrefixes {
			if strings.HasPrefix(normCode, prefix) {
				return true
			}
		}
	}

	normName := additive.NormalizeKey(name)
	if normName != "" {
		for _, keyword := range fortificationKeywords {
			if strings.Contains(normName, keyword) {
				return true
			}
		}
	}

	return false
}
