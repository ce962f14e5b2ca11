package surface

import (
	"fmt"
	"io"
	"os"

	"github.com/nutriscope/nutriscope/pkg/additive"
	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// TerminalRenderer renders a score summary as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func tierColor(tier additive.RiskTier) string {
	if noColor() {
		return ""
	}
	switch tier {
	case additive.HighRisk:
		return colorRed
	case additive.ModerateRisk:
		return colorYellow
	default:
		return colorGreen
	}
}

func scoreColor(score int) string {
	if noColor() {
		return ""
	}
	switch {
	case score >= 80:
		return colorGreen
	case score >= 40:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, summary *scoring.Summary) error {
	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("Nutriscope: %s — Score %s/100",
			summary.Label, colored(fmt.Sprintf("%d", summary.Score), scoreColor(summary.Score)))))

	fmt.Fprintf(w, "Additives found: %d (%d penalized, %d fortification)\n",
		summary.TotalAdditives, summary.Breakdown.Total(),
		summary.TotalAdditives-summary.Breakdown.Total())
	fmt.Fprintf(w, "Worst tier: %s\n\n",
		colored(summary.OverallTier.String(), tierColor(summary.OverallTier)))

	// Per-tier breakdown pills, worst first
	hasBreakdown := false
	tiers := []additive.RiskTier{additive.HighRisk, additive.ModerateRisk, additive.LowRisk, additive.NoRisk}
	for _, tier := range tiers {
		count := summary.Breakdown.Count(tier)
		if count == 0 {
			continue
		}
		if !hasBreakdown {
			fmt.Fprintln(w, "Breakdown:")
			hasBreakdown = true
		}
		fmt.Fprintf(w, "  %s %s: %d\n",
			colored("●", tierColor(tier)), bold(tier.String()), count)
	}
	if !hasBreakdown {
		fmt.Fprintln(w, "No penalized additives.")
	}
	fmt.Fprintln(w)

	// Warnings
	if summary.ChildWarning {
		fmt.Fprintf(w, "  %s contains colouring(s) with a child-activity warning\n", colored("!", colorRed))
	}
	if summary.SulphiteWarning {
		fmt.Fprintf(w, "  %s contains sulphites (declared allergen)\n", colored("!", colorRed))
	}
	if summary.ChildWarning || summary.SulphiteWarning {
		fmt.Fprintln(w)
	}

	if summary.TotalAdditives == 0 {
		fmt.Fprintln(w, dim("Nothing to report: no additives were detected in this list."))
	}

	return nil
}
