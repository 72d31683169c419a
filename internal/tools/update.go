package tools

import (
	"context"
	"time"

	"github.com/dojo-genesis/dojo/internal/state"
	"github.com/mark3labs/mcp-go/mcp"
)

// UpdateTool handles the dojo_update_state MCP tool: the agent's write
// path into the state document. Every field is optional; only the fields
// present in the call are touched.
type UpdateTool struct {
	mgr *state.Manager
}

// NewUpdateTool creates an UpdateTool backed by the given manager.
func NewUpdateTool(mgr *state.Manager) *UpdateTool {
	return &UpdateTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *UpdateTool) Definition() mcp.Tool {
	return mcp.NewTool("dojo_update_state",
		mcp.WithDescription(
			"Update the project's phase, track status, or other state. "+
				"Use this after completing a skill to advance the project workflow.",
		),
		mcp.WithString("phase",
			mcp.Description("New project phase"),
			mcp.Enum("initialized", "scouting", "specifying", "decomposing",
				"commissioning", "implementing", "retrospective"),
		),
		mcp.WithString("lastSkill",
			mcp.Description("Name of the skill that just ran"),
		),
		mcp.WithString("currentTrack",
			mcp.Description("Set the current active track"),
		),
		mcp.WithObject("addTrack",
			mcp.Description("Append a work track: {id, name, dependencies?}"),
			mcp.Properties(map[string]any{
				"id":           map[string]any{"type": "string"},
				"name":         map[string]any{"type": "string"},
				"dependencies": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			}),
		),
		mcp.WithObject("addDecision",
			mcp.Description("Log a decision: {topic, file}. Dated automatically."),
			mcp.Properties(map[string]any{
				"topic": map[string]any{"type": "string"},
				"file":  map[string]any{"type": "string"},
			}),
		),
		mcp.WithObject("addSpec",
			mcp.Description("Register a spec revision: {version, file}"),
			mcp.Properties(map[string]any{
				"version": map[string]any{"type": "string"},
				"file":    map[string]any{"type": "string"},
			}),
		),
		mcp.WithString("projectId",
			mcp.Description("Project to update. Defaults to the active project."),
		),
	)
}

// Handle processes the dojo_update_state tool call.
func (t *UpdateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, st, userErr, err := resolveProject(t.mgr, req.GetString("projectId", ""))
	if err != nil {
		return nil, err
	}
	if userErr != "" {
		return errorResult("%s", userErr)
	}

	args := req.GetArguments()
	var update state.Update

	if phase := req.GetString("phase", ""); phase != "" {
		p := state.Phase(phase)
		if err := state.ValidatePhase(p); err != nil {
			return errorResult("%v", err)
		}
		update.Phase = &p
	}
	lastSkill := req.GetString("lastSkill", "")
	if lastSkill != "" {
		update.LastSkill = &lastSkill
	}
	if track := req.GetString("currentTrack", ""); track != "" {
		update.CurrentTrack = &track
	}

	if raw, ok := args["addTrack"].(map[string]any); ok {
		trackID, _ := raw["id"].(string)
		name, _ := raw["name"].(string)
		if trackID == "" || name == "" {
			return errorResult("addTrack requires 'id' and 'name'")
		}
		deps := []string{}
		if rawDeps, ok := raw["dependencies"].([]any); ok {
			for _, d := range rawDeps {
				if s, ok := d.(string); ok {
					deps = append(deps, s)
				}
			}
		}
		update.Tracks = append(st.Tracks, state.Track{
			ID:           trackID,
			Name:         name,
			Status:       state.TrackPending,
			Dependencies: deps,
		})
	}

	if raw, ok := args["addDecision"].(map[string]any); ok {
		topic, _ := raw["topic"].(string)
		file, _ := raw["file"].(string)
		if topic == "" || file == "" {
			return errorResult("addDecision requires 'topic' and 'file'")
		}
		update.Decisions = append(st.Decisions, state.DecisionRef{
			Date:  time.Now().UTC().Format("2006-01-02"),
			Topic: topic,
			File:  file,
		})
	}

	if raw, ok := args["addSpec"].(map[string]any); ok {
		version, _ := raw["version"].(string)
		file, _ := raw["file"].(string)
		if version == "" || file == "" {
			return errorResult("addSpec requires 'version' and 'file'")
		}
		update.Specs = append(st.Specs, state.SpecRef{Version: version, File: file})
	}

	if err := t.mgr.UpdateProjectState(id, update); err != nil {
		return nil, err
	}
	if lastSkill != "" {
		if err := t.mgr.AddActivity(id, "skill:"+lastSkill, lastSkill+" completed"); err != nil {
			return nil, err
		}
	}

	phase := st.Phase
	if update.Phase != nil {
		phase = *update.Phase
	}
	return jsonResult(map[string]any{"updated": true, "phase": phase})
}
