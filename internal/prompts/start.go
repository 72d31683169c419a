// Package prompts implements the MCP prompt handlers of the plugin.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// StartPrompt handles the dojo-start MCP prompt.
// It guides the AI through creating a project and kicking off the
// scouting phase.
type StartPrompt struct{}

// NewStartPrompt creates a StartPrompt.
func NewStartPrompt() *StartPrompt {
	return &StartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *StartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("dojo-start",
		mcp.WithPromptDescription(
			"Start a new Dojo Genesis project. Walks through creating the "+
				"project, then kicks off the strategic-scout skill to explore "+
				"the problem space before any spec is written.",
		),
		mcp.WithArgument("project_name",
			mcp.ArgumentDescription("Name for the project (lowercase, hyphens allowed)"),
		),
	)
}

// Handle processes the dojo-start prompt request.
func (p *StartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	projectName := "my-project"
	if args := req.Params.Arguments; args != nil {
		if name, ok := args["project_name"]; ok && name != "" {
			projectName = name
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Start Dojo Genesis project: %s", projectName),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to start a new Dojo Genesis project called '%s'.\n\n"+
						"Please:\n"+
						"1. Run `dojo_command` with 'init %s' (ask me for a one-line description first and pass it with --desc)\n"+
						"2. Ask me what I'm trying to build or decide\n"+
						"3. Run `dojo_command` with 'scout <my answer>' to queue the strategic-scout skill\n"+
						"4. Guide me through the pipeline phases from there (scout, spec, tracks, commission, retro)",
					projectName, projectName,
				)),
			},
		},
	}, nil
}
