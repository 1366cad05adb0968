package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/ghoyle/equitytax"
	"github.com/ghoyle/equitytax/renderer"
	"github.com/google/subcommands"
)

// reconcileCmd holds the flags for the 'reconcile' subcommand.
type reconcileCmd struct {
	year      int
	tolerance float64
	quotes    string
}

func (*reconcileCmd) Name() string     { return "reconcile" }
func (*reconcileCmd) Synopsis() string { return "match sales to lots and compute realized gains" }
func (*reconcileCmd) Usage() string {
	return `ect reconcile [-year <year>] [-tolerance <fraction>] [-quotes <url>]

  Matches every sale of the tax year against acquisition lots (FIFO),
  synthesizes lots for uncovered shares, and reports the realized
  short-term and long-term gains together with the data gaps found.
`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", time.Now().Year()-1, "Tax year to reconcile.")
	f.Float64Var(&c.tolerance, "tolerance", 0.5, "Tolerance fraction for the suspicious-basis check against the price range.")
	f.StringVar(&c.quotes, "quotes", "", "Base URL of a price history service used for the suspicious-basis check.")
}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, persist, close, err := openRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer close()

	rec := equitytax.NewReconciler(repo).
		WithBasisPolicy(equitytax.RangeBasisPolicy(c.tolerance))

	if c.quotes != "" {
		hists, err := fetchHistories(repo, c.year, c.quotes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching price histories: %v\n", err)
			return subcommands.ExitFailure
		}
		rec = rec.WithPrices(hists...)
	}

	result, err := rec.Reconcile(c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reconciling %d: %v\n", c.year, err)
		return subcommands.ExitFailure
	}

	if err := persist(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving records: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReconcileMarkdown(result))
	printMarkdown(renderer.GapsMarkdown(result.Gaps))

	return subcommands.ExitSuccess
}

// fetchHistories retrieves a price history for every security sold in the
// given year.
func fetchHistories(repo equitytax.Repository, year int, addr string) ([]*equitytax.PriceHistory, error) {
	sales, err := repo.LoadSales(year)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var hists []*equitytax.PriceHistory
	for _, sale := range sales {
		ticker := sale.Security.Ticker
		if seen[ticker] {
			continue
		}
		seen[ticker] = true

		hist, err := equitytax.FetchPriceHistory(http.DefaultClient, addr+"?s="+url.QueryEscape(ticker), ticker)
		if err != nil {
			return nil, fmt.Errorf("could not fetch prices for %s: %w", ticker, err)
		}
		hists = append(hists, hist)
	}
	return hists, nil
}
