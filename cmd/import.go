package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ghoyle/equitytax"
	"github.com/google/subcommands"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import equity records from a JSONL file" }
func (*importCmd) Usage() string {
	return `ect import <file.jsonl>...

  Reads equity records (events, lots, sales) from JSONL files and merges
  them into the repository. Grant, vest, exercise and purchase events open
  the corresponding lots; records with a known id replace the existing one.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one file to import is required")
		return subcommands.ExitUsageError
	}

	repo, persist, close, err := openRepository()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		return subcommands.ExitFailure
	}
	defer close()

	var lots, sales int
	for _, filename := range f.Args() {
		in, err := os.Open(filename)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", filename, err)
			return subcommands.ExitFailure
		}
		decoded, err := equitytax.DecodeRecords(in)
		in.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", filename, err)
			return subcommands.ExitFailure
		}

		for _, lot := range decoded.Lots() {
			if err := repo.SaveLot(lot); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving lot %s: %v\n", lot.ID, err)
				return subcommands.ExitFailure
			}
			lots++
		}
		for _, sale := range decoded.Sales() {
			if err := repo.SaveSale(sale); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving sale %s: %v\n", sale.ID, err)
				return subcommands.ExitFailure
			}
			sales++
		}
	}

	if err := persist(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving records: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d lots and %d sales.\n", lots, sales)
	return subcommands.ExitSuccess
}
