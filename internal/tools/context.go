package tools

import (
	"context"

	"github.com/dojo-genesis/dojo/internal/state"
	"github.com/mark3labs/mcp-go/mcp"
)

// ContextTool handles the dojo_get_context MCP tool: a read-only
// projection of the target project's state document.
type ContextTool struct {
	mgr *state.Manager
}

// NewContextTool creates a ContextTool backed by the given manager.
func NewContextTool(mgr *state.Manager) *ContextTool {
	return &ContextTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *ContextTool) Definition() mcp.Tool {
	return mcp.NewTool("dojo_get_context",
		mcp.WithDescription(
			"Get the current project context: phase, tracks, decisions, specs, "+
				"and recent activity. Call this at the start of any skill run to "+
				"ground your work in the project's actual state. "+
				"Targets the active project unless projectId is given.",
		),
		mcp.WithString("projectId",
			mcp.Description("Project to read. Defaults to the active project."),
		),
	)
}

// Handle processes the dojo_get_context tool call.
func (t *ContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, st, userErr, err := resolveProject(t.mgr, req.GetString("projectId", ""))
	if err != nil {
		return nil, err
	}
	if userErr != "" {
		return jsonResult(map[string]any{"active": false, "error": userErr})
	}

	decisions := make([]map[string]string, len(st.Decisions))
	for i, d := range st.Decisions {
		decisions[i] = map[string]string{"date": d.Date, "topic": d.Topic}
	}

	recent := st.ActivityLog
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return jsonResult(map[string]any{
		"active":         true,
		"projectId":      id,
		"phase":          st.Phase,
		"tracks":         st.Tracks,
		"decisions":      decisions,
		"specs":          st.Specs,
		"currentTrack":   st.CurrentTrack,
		"lastSkill":      st.LastSkill,
		"recentActivity": recent,
	})
}
