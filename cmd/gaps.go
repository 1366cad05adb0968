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
)

// gapsCmd holds the flags for the 'gaps' subcommand.
type gapsCmd struct {
	year   int
	strict bool
}

func (*gapsCmd) Name() string     { return "gaps" }
func (*gapsCmd) Synopsis() string { return "report data gaps found while reconciling a tax year" }
func (*gapsCmd) Usage() string {
	return `ect gaps [-year <year>] [-strict]

  Runs the reconciliation for the tax year and prints only the data gap
  report: auto-created lots, zero-basis sales, missing forms 3921/3922,
  suspicious bases and pass-through sales, grouped by category and ticker.
  With -strict, exits with a failure status when a blocking gap is present.
`
}

func (c *gapsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", time.Now().Year()-1, "Tax year to analyze.")
	f.BoolVar(&c.strict, "strict", false, "Fail when a blocking (error severity) gap is found.")
}

func (c *gapsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, _, close, err := openRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer close()

	// Analysis only: run on a snapshot when possible so synthesized lots
	// are not persisted.
	if mem, ok := repo.(*equitytax.MemoryRepository); ok {
		repo = mem.Snapshot()
	}

	result, err := equitytax.NewReconciler(repo).Reconcile(c.year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reconciling %d: %v\n", c.year, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.GapsMarkdown(result.Gaps))

	if c.strict && result.Gaps.HasBlockingGaps() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
