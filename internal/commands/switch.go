package commands

import "fmt"

// handleSwitch activates an existing, non-archived project.
func (r *Router) handleSwitch(args []string) string {
	if len(args) == 0 {
		return "Project name is required. Usage: `/dojo switch <name>`"
	}
	name := args[0]

	global, err := r.mgr.GlobalState()
	if err != nil {
		return fmt.Sprintf("Failed to load state: %v", err)
	}

	for _, p := range global.Projects {
		if p.ID != name {
			continue
		}
		if p.Archived {
			return fmt.Sprintf("Project `%s` is archived. Unarchive it first before switching.", name)
		}
		if err := r.mgr.SetActiveProject(name); err != nil {
			return fmt.Sprintf("Failed to switch project: %v", err)
		}
		return fmt.Sprintf("**Switched to:** `%s`\n\n**Phase:** %s", name, p.Phase)
	}

	return fmt.Sprintf("Project `%s` not found.", name)
}
