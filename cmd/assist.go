package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ghoyle/equitytax"
	"github.com/ghoyle/equitytax/agent"
	"github.com/ghoyle/equitytax/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// assistCmd is the subcommand for the AI assistant.
type assistCmd struct {
	year int
}

// Name returns the name of the command.
func (*assistCmd) Name() string { return "assist" }

// Synopsis returns a short one-line synopsis of the command.
func (*assistCmd) Synopsis() string { return "Start an interactive session with the AI assistant." }

// Usage returns a long-form usage string.
func (*assistCmd) Usage() string {
	return `assist [-year <year>] [prompt]:
  Start an interactive session with the AI assistant, seeded with the
  reconciliation and data gap reports of the tax year.
`
}

// SetFlags sets the flags for the command.
func (c *assistCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", time.Now().Year()-1, "Tax year the assistant reasons about.")
}

// Execute executes the command.
func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
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
	reports := renderer.ReconcileMarkdown(result) + "\n" + renderer.GapsMarkdown(result.Gaps)

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(reports)
	a := agent.New(os.Stdout, os.Stdin, analyst)

	if initialPrompt != "" {
		err = a.Run(ctx, client, initialPrompt)
	} else {
		err = a.Run(ctx, client)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Agent failed:", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
