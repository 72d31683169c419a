package prompts

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// StatusPrompt handles the dojo-status MCP prompt.
// It instructs the AI to read and present the active project's state.
type StatusPrompt struct{}

// NewStatusPrompt creates a StatusPrompt.
func NewStatusPrompt() *StatusPrompt {
	return &StatusPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StatusPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("dojo-status",
		mcp.WithPromptDescription(
			"Check the active Dojo Genesis project. Shows the current phase, "+
				"work tracks, recent activity, and what to do next.",
		),
	)
}

// Handle processes the dojo-status prompt request.
func (p *StatusPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return &mcp.GetPromptResult{
		Description: "Dojo Genesis Project Status",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					"Please run `dojo_get_context` to check my Dojo Genesis project status.\n\n" +
						"Then:\n" +
						"1. Show me the current phase and track table in a clear format\n" +
						"2. Summarize the recent activity\n" +
						"3. Tell me exactly what I should do next in the pipeline",
				),
			},
		},
	}, nil
}
