package tools

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/dojo-genesis/dojo/internal/state"
	"github.com/dojo-genesis/dojo/internal/validate"
	"github.com/mark3labs/mcp-go/mcp"
)

// ArtifactTool handles the dojo_save_artifact MCP tool. It persists skill
// output into one of the project's output directories and records the
// artifact in the state document.
type ArtifactTool struct {
	mgr *state.Manager
}

// NewArtifactTool creates an ArtifactTool backed by the given manager.
func NewArtifactTool(mgr *state.Manager) *ArtifactTool {
	return &ArtifactTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *ArtifactTool) Definition() mcp.Tool {
	return mcp.NewTool("dojo_save_artifact",
		mcp.WithDescription(
			"Save a skill output as a markdown file in the project directory. "+
				"Use this after completing a skill to persist the results.",
		),
		mcp.WithString("filename",
			mcp.Required(),
			mcp.Description("Output filename (e.g., '2026-02-12_scout_build-native.md')"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Full markdown content to save"),
		),
		mcp.WithString("outputDir",
			mcp.Required(),
			mcp.Description("Subdirectory: scouts, specs, prompts, retros, tracks, or artifacts"),
			mcp.Enum(validate.OutputDirs...),
		),
		mcp.WithString("projectId",
			mcp.Description("Project to write into. Defaults to the active project."),
		),
	)
}

// Handle processes the dojo_save_artifact tool call.
func (t *ArtifactTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	outputDir := req.GetString("outputDir", "")
	if !validate.OutputDir(outputDir) {
		return errorResult("Invalid output directory: %s", outputDir)
	}
	content := req.GetString("content", "")
	if strings.TrimSpace(req.GetString("filename", "")) == "" {
		return errorResult("'filename' is required")
	}

	id, st, userErr, err := resolveProject(t.mgr, req.GetString("projectId", ""))
	if err != nil {
		return nil, err
	}
	if userErr != "" {
		return errorResult("%s", userErr)
	}

	safeName := validate.Filename(req.GetString("filename", ""))
	path := filepath.Join(t.mgr.ProjectDir(id), outputDir, safeName)
	if err := state.WriteText(path, content); err != nil {
		return nil, err
	}

	skill := st.LastSkill
	if skill == "" {
		skill = "unknown"
	}
	artifacts := append(st.Artifacts, state.ArtifactRef{
		Category:  outputDir,
		Filename:  safeName,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Skill:     skill,
	})
	if err := t.mgr.UpdateProjectState(id, state.Update{Artifacts: artifacts}); err != nil {
		return nil, err
	}
	if err := t.mgr.AddActivity(id, "artifact:"+outputDir, "Saved "+safeName+" to "+outputDir+"/"); err != nil {
		return nil, err
	}

	return jsonResult(map[string]any{"saved": true, "path": outputDir + "/" + safeName})
}
