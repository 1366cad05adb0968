package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ghoyle/equitytax"
	"github.com/ghoyle/equitytax/renderer"
	"github.com/google/subcommands"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct {
	ticker string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list acquisition lots" }
func (*lotsCmd) Usage() string {
	return `ect lots [-ticker <ticker>]

  Lists the known acquisition lots with their remaining (unsold) shares.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Restrict the listing to one security.")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	repo, _, close, err := openRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer close()

	var lots []*equitytax.Lot
	if c.ticker != "" {
		lots, err = repo.LoadLots(c.ticker)
	} else if mem, ok := repo.(*equitytax.MemoryRepository); ok {
		lots = mem.Lots()
	} else {
		fmt.Fprintln(os.Stderr, "Error: -ticker is required with a database repository")
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lots: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.LotsMarkdown(lots))
	return subcommands.ExitSuccess
}
