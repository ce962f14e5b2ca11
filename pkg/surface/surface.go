// Package surface renders Nutriscope score summaries to output surfaces.
package surface

import (
	"io"

	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// Renderer renders a score summary to a writer.
type Renderer interface {
	Render(w io.Writer, summary *scoring.Summary) error
}
