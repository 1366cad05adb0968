package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Expert represents a chat with a domain expert.
type Expert struct {
	Name      string
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewAnalyst creates the tax analyst expert, seeded with the rendered
// reconciliation and gap reports so it can ground its answers in the
// user's actual numbers.
func NewAnalyst(reports string) *Expert {
	system := `
	You are a tax analyst specialized in equity compensation (RSU, ISO,
	NSO, ESPP) and capital gains reconciliation. The user just ran a
	reconciliation of their broker-reported sales against their known
	acquisition lots; the resulting reports are below.

	Explain findings plainly. For each data gap, tell the user which
	document resolves it and who issues that document. Never invent
	numbers: every figure you cite must come from the reports. If a gap
	report contains error-severity gaps, remind the user not to file
	until they are resolved. You are not a substitute for a licensed
	tax professional and should say so when asked for filing advice.

	Reports:

	` + reports

	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		},
	}
}

// Start opens the expert's chat session.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask is a simple wrapper on top of Chat.Send.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from expert %s", e.Name)
	}
	return resp.Candidates[0].Content, nil
}
