package commands

import (
	"fmt"
	"strings"

	"github.com/dojo-genesis/dojo/internal/format"
)

// handleStatus renders the target project's phase, tracks, recent
// activity, and the advisory next step. Targets the active project unless
// an @project argument is given.
func (r *Router) handleStatus(args []string) string {
	target, _ := splitTarget(args)

	st, err := r.mgr.ProjectState(target)
	if err != nil {
		return fmt.Sprintf("Failed to load state: %v", err)
	}
	if st == nil {
		return "No active project. Run `/dojo init <name>` to create one."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Project:** `%s`\n", st.ProjectID)
	fmt.Fprintf(&b, "**Phase:** %s\n", format.Phase(st.Phase))
	fmt.Fprintf(&b, "**Last updated:** %s\n\n", format.Date(st.LastUpdated))

	if len(st.Tracks) > 0 {
		fmt.Fprintf(&b, "**Tracks:**\n%s\n\n", format.TrackTable(st.Tracks))
	}

	recent := st.ActivityLog
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if len(recent) > 0 {
		b.WriteString("**Recent activity:**\n")
		for _, entry := range recent {
			fmt.Fprintf(&b, "- %s — %s\n", format.Date(entry.Timestamp), entry.Summary)
		}
		b.WriteString("\n")
	}

	if next := format.NextStep(st.Phase); next != "" {
		fmt.Fprintf(&b, "**Suggested next:** %s", next)
	}

	return b.String()
}
