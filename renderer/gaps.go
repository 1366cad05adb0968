// Package renderer turns reconciliation and tax results into markdown
// reports suitable for the terminal or a file.
package renderer

import (
	"fmt"
	"strings"

	"github.com/ghoyle/equitytax"
)

// GapsMarkdown renders a data gap report to a markdown string.
func GapsMarkdown(report *equitytax.DataGapReport) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Data Gap Report\n\n")
	if len(report.Gaps) == 0 {
		fmt.Fprintln(&b, "No data gaps found.")
		return b.String()
	}

	if report.HasBlockingGaps() {
		fmt.Fprint(&b, "**Blocking gaps present: do not file until resolved.**\n\n")
	}

	fmt.Fprintln(&b, "| Severity | Category | Ticker | Count | Summary |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|:---|")
	for _, g := range report.Gaps {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s |\n",
			g.Severity, g.Category, g.Ticker, g.LotCount, g.Summary)
	}

	fmt.Fprint(&b, "\n## Totals\n\n")
	fmt.Fprintf(&b, "- Auto-created lots: %d\n", report.AutoCreatedLots)
	fmt.Fprintf(&b, "- Zero-basis sales: %d\n", report.ZeroBasisSales)
	fmt.Fprintf(&b, "- Missing forms: %d\n", report.MissingForms)

	for _, g := range report.Gaps {
		if g.SuggestedAction == "" {
			continue
		}
		fmt.Fprintf(&b, "\n> %s/%s: %s\n", g.Category, g.Ticker, g.SuggestedAction)
	}

	return b.String()
}
