package tools

import (
	"context"

	"github.com/dojo-genesis/dojo/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

// SearchTool handles the dojo_search_history MCP tool. A nil index means
// the history subsystem failed to start; the tool stays registered and
// reports the condition instead of failing the call.
type SearchTool struct {
	idx *history.Index
}

// NewSearchTool creates a SearchTool over the given index, which may be
// nil when history is disabled.
func NewSearchTool(idx *history.Index) *SearchTool {
	return &SearchTool{idx: idx}
}

// Definition returns the MCP tool definition for registration.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("dojo_search_history",
		mcp.WithDescription(
			"Full-text search over activity history across all projects. "+
				"Use this to find when a skill ran, what artifacts were saved, "+
				"or what happened in an earlier project. Empty query returns "+
				"the most recent events.",
		),
		mcp.WithString("query",
			mcp.Description("Search terms, e.g. 'scout redis' or 'spec completed'"),
		),
		mcp.WithString("projectId",
			mcp.Description("Restrict results to one project"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default 20, max 50)"),
		),
	)
}

// Handle processes the dojo_search_history tool call.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.idx == nil {
		return errorResult("History index is not available")
	}

	events, err := t.idx.Search(
		req.GetString("query", ""),
		req.GetString("projectId", ""),
		intArg(req, "limit", 0),
	)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []history.Event{}
	}

	return jsonResult(map[string]any{"results": events, "count": len(events)})
}
