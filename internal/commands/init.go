package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dojo-genesis/dojo/internal/format"
	"github.com/dojo-genesis/dojo/internal/state"
	"github.com/dojo-genesis/dojo/internal/validate"
)

// handleInit creates a project: metadata entry, workflow document, the
// six artifact subdirectories, PROJECT.md, and decisions.md. The new
// project becomes active. Re-using the id of an archived project is
// allowed and produces a fresh document; a non-archived duplicate is
// rejected.
func (r *Router) handleInit(args []string) string {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	if err := validate.ProjectName(name); err != nil {
		return fmt.Sprintf("Invalid project name: %s", err)
	}

	global, err := r.mgr.GlobalState()
	if err != nil {
		return fmt.Sprintf("Failed to load state: %v", err)
	}
	for _, p := range global.Projects {
		if p.ID == name && !p.Archived {
			return fmt.Sprintf("Project `%s` already exists. Use `/dojo switch %s` to activate it.", name, name)
		}
	}

	description := ""
	for i, a := range args {
		if a == "--desc" && i+1 < len(args) {
			description = strings.Trim(strings.Join(args[i+1:], " "), `"`)
			break
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	date := format.Date(now)

	projectDir := r.mgr.ProjectDir(name)
	for _, sub := range validate.OutputDirs {
		if err := state.EnsureDir(filepath.Join(projectDir, sub)); err != nil {
			return fmt.Sprintf("Failed to create project directories: %v", err)
		}
	}

	if err := state.WriteText(filepath.Join(projectDir, "PROJECT.md"), format.ProjectMD(name, description, date)); err != nil {
		return fmt.Sprintf("Failed to write PROJECT.md: %v", err)
	}
	if err := state.WriteText(filepath.Join(projectDir, "decisions.md"), format.DecisionsMD(name)); err != nil {
		return fmt.Sprintf("Failed to write decisions.md: %v", err)
	}
	if err := r.mgr.CreateProjectState(name, state.NewProjectState(name, now)); err != nil {
		return fmt.Sprintf("Failed to write project state: %v", err)
	}

	meta := state.ProjectMetadata{
		ID:             name,
		Name:           name,
		Description:    description,
		Phase:          state.PhaseInitialized,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	if err := r.mgr.AddProject(meta); err != nil {
		return fmt.Sprintf("Failed to register project: %v", err)
	}

	return fmt.Sprintf(
		"**Project created:** `%s`\n\n**Phase:** initialized\n**Active:** yes\n\nNext: Run `/dojo scout <tension>` to start scouting.",
		name,
	)
}
