package renderer

import (
	"fmt"
	"strings"

	"github.com/ghoyle/equitytax"
)

// LotsMarkdown renders a lot inventory to a markdown string.
func LotsMarkdown(lots []*equitytax.Lot) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Lots\n\n")
	if len(lots) == 0 {
		fmt.Fprintln(&b, "No lots.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Acquired | Ticker | Type | Shares | Remaining | Cost/Share | Source |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|")
	for _, lot := range lots {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			lot.Acquired, lot.Security.Ticker, lot.Equity,
			lot.Shares, lot.Remaining, lot.CostPerShare.Round(), lot.Source)
	}
	return b.String()
}
