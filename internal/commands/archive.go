package commands

import "fmt"

// handleArchive soft-archives a project. Files remain on disk; the
// project drops out of the default listing and its active status is
// cleared.
func (r *Router) handleArchive(args []string) string {
	if len(args) == 0 {
		return "Project name is required. Usage: `/dojo archive <name>`"
	}
	name := args[0]

	global, err := r.mgr.GlobalState()
	if err != nil {
		return fmt.Sprintf("Failed to load state: %v", err)
	}

	found := false
	for _, p := range global.Projects {
		if p.ID == name {
			found = true
			if p.Archived {
				return fmt.Sprintf("Project `%s` is already archived.", name)
			}
			break
		}
	}
	if !found {
		return fmt.Sprintf("Project `%s` not found.", name)
	}

	if _, err := r.mgr.ArchiveProject(name); err != nil {
		return fmt.Sprintf("Failed to archive project: %v", err)
	}

	return fmt.Sprintf(
		"**Project archived:** `%s`\n\nThe project files remain on disk. It will no longer appear in `/dojo list` (use `--all` to see archived projects).",
		name,
	)
}
