package commands

import (
	"fmt"

	"github.com/dojo-genesis/dojo/internal/format"
)

// handleList renders the project index. Archived projects are hidden
// unless --all is passed.
func (r *Router) handleList(args []string) string {
	showArchived := false
	for _, a := range args {
		if a == "--all" {
			showArchived = true
		}
	}

	global, err := r.mgr.GlobalState()
	if err != nil {
		return fmt.Sprintf("Failed to load state: %v", err)
	}

	return format.ProjectList(global.Projects, showArchived, global.ActiveProjectID)
}
