package renderer

import (
	"fmt"
	"strings"

	"github.com/ghoyle/equitytax"
)

// ReconcileMarkdown renders a reconciliation run to a markdown string:
// every matched sale with its basis and realized gain, then the split
// totals the tax engine consumes.
func ReconcileMarkdown(result *equitytax.ReconcileResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Reconciliation %d\n\n", result.Year)

	if len(result.Sales) == 0 {
		fmt.Fprintln(&b, "No sales in this tax year.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Sale Date | Ticker | Shares | Proceeds | Cost Basis | Gain/Loss | Lots |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|")
	for _, m := range result.Sales {
		lots := len(m.Consumed)
		label := fmt.Sprintf("%d", lots)
		if m.Sale.Acquired.IsVarious() {
			label = "pass-through"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			m.Sale.SaleDate, m.Sale.Security.Ticker, m.Sale.Shares,
			m.Proceeds.Round(), m.CostBasis.Round(), m.GainLoss.Round().SignedString(), label)
	}

	fmt.Fprintf(&b, "\n- Short-term gain/loss: %s\n", result.ShortTermGain.Round().SignedString())
	fmt.Fprintf(&b, "- Long-term gain/loss: %s\n", result.LongTermGain.Round().SignedString())
	fmt.Fprintf(&b, "- Realized total: %s\n", result.RealizedGain().Round().SignedString())

	return b.String()
}
