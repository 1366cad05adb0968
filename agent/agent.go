// Package agent implements an interactive AI session that answers
// questions about a reconciliation run: what the gaps mean, which
// documents to chase, how a figure was computed.
package agent

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w       io.Writer
	r       *bufio.Reader
	Analyst *Expert
}

// New creates a new Agent around the analyst expert. It takes an io.Writer
// for the agent's output (e.g. os.Stdout) and an io.Reader for user input
// (e.g. os.Stdin).
func New(w io.Writer, r io.Reader, analyst *Expert) *Agent {
	return &Agent{w: w, r: bufio.NewReader(r), Analyst: analyst}
}

const prompt = "assist> "

// Run starts the interactive REPL session for the agent.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if err := a.Analyst.Start(ctx, client); err != nil {
		return err
	}

	fmt.Fprintln(a.w, "Welcome to ect tax assist. Type 'bye' to exit.")

	for {
		fmt.Fprint(a.w, prompt)
		var input string

		// Flush queued prompts first, then ask the user.
		if len(prompts) > 0 {
			input, prompts = prompts[0], prompts[1:]
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			fmt.Fprintln(a.w, input)
		} else {
			var err error
			input, err = a.r.ReadString('\n')
			if err != nil {
				if err == io.EOF {
					return nil // Clean exit on Ctrl+D
				}
				return err
			}
		}

		if strings.TrimSpace(input) == "bye" {
			return nil
		}

		content, err := a.Analyst.Ask(ctx, &genai.Part{Text: input})
		if err != nil {
			return err
		}
		fmt.Fprintln(a.w, content.Parts[0].Text)
	}
}
