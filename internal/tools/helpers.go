// Package tools implements the MCP tool handlers of the plugin.
//
// Each file holds one tool. Tools receive the state manager through their
// constructor and never touch the filesystem directly. Expected failures
// (no active project, invalid input) come back as an "error" field in the
// JSON payload so the calling agent can read and react to them; only
// infrastructure faults surface as Go errors.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/dojo-genesis/dojo/internal/state"
	"github.com/mark3labs/mcp-go/mcp"
)

// jsonResult marshals v into a text content block.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult reports an expected failure as an error-field payload.
func errorResult(format string, args ...any) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]string{"error": fmt.Sprintf(format, args...)})
}

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// resolveProject resolves an explicit or active project id to its state
// document. A missing target yields a nil state with a user-facing
// message; infrastructure errors propagate.
func resolveProject(mgr *state.Manager, projectID string) (string, *state.ProjectState, string, error) {
	id := projectID
	if id == "" {
		global, err := mgr.GlobalState()
		if err != nil {
			return "", nil, "", err
		}
		id = global.ActiveProjectID
	}
	if id == "" {
		return "", nil, "No active project. Initialize one with /dojo init <name>.", nil
	}

	st, err := mgr.ProjectState(id)
	if err != nil {
		return "", nil, "", err
	}
	if st == nil {
		return "", nil, fmt.Sprintf("Project not found: %s", id), nil
	}
	return id, st, "", nil
}
