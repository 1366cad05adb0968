package renderer

import (
	"fmt"
	"strings"

	"github.com/ghoyle/equitytax"
)

// TaxMarkdown renders an itemized tax result to a markdown string.
func TaxMarkdown(result *equitytax.TaxResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Tax Liability %d (%s)\n\n", result.Year, result.Status)

	fmt.Fprintln(&b, "| Component | Amount |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Federal ordinary tax | %s |\n", result.OrdinaryTax)
	fmt.Fprintf(&b, "| Federal LTCG tax | %s |\n", result.LTCGTax)
	fmt.Fprintf(&b, "| State tax | %s |\n", result.StateTax)
	fmt.Fprintf(&b, "| Net investment income tax | %s |\n", result.NIIT)
	fmt.Fprintf(&b, "| Alternative minimum tax | %s |\n", result.AMT)
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", result.Total)

	fmt.Fprintf(&b, "\n- Taxable ordinary income: %s\n", result.TaxableOrdinary.Round())
	if !result.CapitalLossApplied.IsZero() {
		fmt.Fprintf(&b, "- Capital loss applied: %s\n", result.CapitalLossApplied.Round())
	}
	if !result.CapitalLossCarryover.IsZero() {
		fmt.Fprintf(&b, "- Capital loss carryover to next year: %s\n", result.CapitalLossCarryover.Round())
	}

	return b.String()
}
