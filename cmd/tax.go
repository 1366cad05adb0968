package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ghoyle/equitytax"
	"github.com/ghoyle/equitytax/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// taxCmd holds the flags for the 'tax' subcommand.
type taxCmd struct {
	year       int
	status     string
	ordinary   string
	investment string
	amtPref    string
}

func (*taxCmd) Name() string     { return "tax" }
func (*taxCmd) Synopsis() string { return "compute the tax liability for a reconciled year" }
func (*taxCmd) Usage() string {
	return `ect tax [-year <year>] [-status <status>] [-ordinary <amount>] [-investment <amount>] [-amt-pref <amount>]

  Reconciles the tax year, then computes federal ordinary tax, long-term
  capital gains tax (stacked on ordinary income), state tax, net investment
  income tax and the AMT excess. Short-term gains from the reconciliation
  are taxed as ordinary income, long-term gains at preferential rates, and
  a net loss reduces ordinary income only up to the annual cap.
`
}

func (c *taxCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", time.Now().Year()-1, "Tax year to compute.")
	f.StringVar(&c.status, "status", "single", "Filing status (single, married-joint, married-separate, head-of-household).")
	f.StringVar(&c.ordinary, "ordinary", "0", "Ordinary income before deductions, excluding realized gains (e.g. W-2 wages).")
	f.StringVar(&c.investment, "investment", "", "Net investment income for NIIT. Defaults to the realized gains of the year.")
	f.StringVar(&c.amtPref, "amt-pref", "0", "AMT preference items, e.g. the ISO bargain element.")
}

func (c *taxCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status, err := equitytax.ParseFilingStatus(c.status)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing filing status: %v\n", err)
		return subcommands.ExitUsageError
	}
	wages, err := parseAmount(c.ordinary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -ordinary: %v\n", err)
		return subcommands.ExitUsageError
	}
	amtPref, err := parseAmount(c.amtPref)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -amt-pref: %v\n", err)
		return subcommands.ExitUsageError
	}

	repo, _, close, err := openRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer close()

	if mem, ok := repo.(*equitytax.MemoryRepository); ok {
		repo = mem.Snapshot()
	}

	result, err := equitytax.NewReconciler(repo).Reconcile(c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reconciling %d: %v\n", c.year, err)
		return subcommands.ExitFailure
	}

	investment := result.RealizedGain()
	if c.investment != "" {
		investment, err = parseAmount(c.investment)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -investment: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	engine := equitytax.NewTaxEngine(equitytax.DefaultTaxTables())
	tax, err := engine.Compute(equitytax.TaxInput{
		Year:             c.year,
		Status:           status,
		Ordinary:         wages,
		ShortTermGain:    result.ShortTermGain,
		LongTermGain:     result.LongTermGain,
		InvestmentIncome: investment,
		AMTPreferences:   amtPref,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing taxes: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReconcileMarkdown(result))
	printMarkdown(renderer.TaxMarkdown(tax))

	if result.Gaps.HasBlockingGaps() {
		fmt.Fprintln(os.Stderr, "Warning: blocking data gaps present, run 'ect gaps' before filing.")
	}
	return subcommands.ExitSuccess
}

// parseAmount parses a decimal USD amount from a flag value.
func parseAmount(s string) (equitytax.Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return equitytax.Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return equitytax.USD(d), nil
}
