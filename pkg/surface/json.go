package surface

import (
	"encoding/json"
	"io"

	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// JSONRenderer renders a summary as indented JSON, for piping into
// other tooling.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, summary *scoring.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}
