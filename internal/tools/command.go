package tools

import (
	"context"
	"strings"

	"github.com/dojo-genesis/dojo/internal/commands"
	"github.com/mark3labs/mcp-go/mcp"
)

// CommandTool handles the dojo_command MCP tool. It bridges the /dojo
// command router for agent runtimes that have no native slash-command
// layer: text in, rendered markdown out.
type CommandTool struct {
	router *commands.Router
}

// NewCommandTool creates a CommandTool over the given router.
func NewCommandTool(router *commands.Router) *CommandTool {
	return &CommandTool{router: router}
}

// Definition returns the MCP tool definition for registration.
func (t *CommandTool) Definition() mcp.Tool {
	return mcp.NewTool("dojo_command",
		mcp.WithDescription(
			"Run a /dojo command (init, switch, status, list, archive, run, "+
				"skills, or a skill shorthand). Pass the command line without the "+
				"/dojo prefix, e.g. 'init my-project --desc \"API rewrite\"'.",
		),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("The command line to dispatch, e.g. 'status' or 'scout redis vs valkey'"),
		),
	)
}

// Handle processes the dojo_command tool call.
func (t *CommandTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input := strings.TrimSpace(req.GetString("command", ""))
	if input == "" {
		return mcp.NewToolResultError("'command' is required"), nil
	}
	return mcp.NewToolResultText(t.router.Dispatch(input)), nil
}
