// Command ect reconciles equity compensation records (RSU, ISO, ESPP) with
// broker sales and computes the resulting tax liability.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/ghoyle/equitytax/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the CLI surface for shell completion. Running
// `COMP_INSTALL=1 ect` installs it.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"file": predict.Files("*.jsonl"),
		"db":   predict.Files("*.db"),
	},
	Sub: map[string]*complete.Command{
		"import":    {Args: predict.Files("*.jsonl")},
		"lots":      {Flags: map[string]complete.Predictor{"ticker": predict.Nothing}},
		"reconcile": {Flags: map[string]complete.Predictor{"year": predict.Nothing, "tolerance": predict.Nothing, "quotes": predict.Nothing}},
		"gaps":      {Flags: map[string]complete.Predictor{"year": predict.Nothing, "strict": predict.Nothing}},
		"tax": {Flags: map[string]complete.Predictor{
			"year":       predict.Nothing,
			"status":     predict.Set{"single", "married-joint", "married-separate", "head-of-household"},
			"ordinary":   predict.Nothing,
			"investment": predict.Nothing,
			"amt-pref":   predict.Nothing,
		}},
		"topic":  {Args: predict.Set{"readme", "reconciliation", "taxes"}},
		"assist": {Flags: map[string]complete.Predictor{"year": predict.Nothing}},
	},
}

func main() {
	// Environment (e.g. GEMINI_API_KEY) may live in a local .env file.
	godotenv.Load()

	completion.Complete(path.Base(os.Args[0]))

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
