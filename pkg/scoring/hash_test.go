package scoring_test

import (
	"testing"

	"github.com/nutriscope/nutriscope/pkg/scoring"
)

func TestContentHashStableUnderOrderAndCase(t *testing.T) {
	a := scoring.ContentHash([]string{"Sugar", "Palm Oil", "E471"})
	b := scoring.ContentHash([]string{"e471", "  sugar ", "palm oil"})

	if a != b {
		t.Errorf("hashes differ for equivalent lists:\n%s\n%s", a, b)
	}
}

func TestContentHashIgnoresEmptyEntries(t *testing.T) {
	a := scoring.ContentHash([]string{"sugar", "", "   "})
	b := scoring.ContentHash([]string{"sugar"})

	if a != b {
		t.Errorf("empty entries changed the hash:\n%s\n%s", a, b)
	}
}

func TestContentHashDistinguishesLists(t *testing.T) {
	a := scoring.ContentHash([]string{"sugar"})
	b := scoring.ContentHash([]string{"salt"})

	if a == b {
		t.Error("different ingredient lists produced the same hash")
	}
}

func TestContentHashEmptyList(t *testing.T) {
	if got := scoring.ContentHash(nil); got == "" {
		t.Error("expected a stable hash for the empty list, got empty string")
	}
	if scoring.ContentHash(nil) != scoring.ContentHash([]string{}) {
		t.Error("nil and empty list should hash identically")
	}
}
