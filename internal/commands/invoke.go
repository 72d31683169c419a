package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/dojo-genesis/dojo/internal/skills"
	"github.com/dojo-genesis/dojo/internal/state"
)

// handleSkillInvoke records a pending action for the target project: the
// one-shot handshake the next agent turn consumes. A second invocation
// before consumption overwrites the first.
func (r *Router) handleSkillInvoke(skillName string, args []string) string {
	target, remaining := splitTarget(args)

	projectID := target
	if projectID == "" {
		global, err := r.mgr.GlobalState()
		if err != nil {
			return fmt.Sprintf("Failed to load state: %v", err)
		}
		projectID = global.ActiveProjectID
	}
	if projectID == "" {
		return "No active project. Run `/dojo init <name>` first."
	}

	st, err := r.mgr.ProjectState(projectID)
	if err != nil {
		return fmt.Sprintf("Failed to load state: %v", err)
	}
	if st == nil {
		return fmt.Sprintf("Project `%s` not found.", projectID)
	}

	pending := &state.PendingAction{
		Skill:       skillName,
		Args:        strings.Join(remaining, " "),
		RequestedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := r.mgr.UpdateProjectState(projectID, state.Update{PendingAction: pending}); err != nil {
		return fmt.Sprintf("Failed to record request: %v", err)
	}
	if err := r.mgr.AddActivity(projectID, "command:"+skillName, "Requested "+skillName); err != nil {
		return fmt.Sprintf("Failed to record activity: %v", err)
	}

	return fmt.Sprintf(
		"**Starting %s** for project `%s` (phase: %s)\n\nThe agent will pick up this request and run the skill with your project context.",
		skillName, projectID, st.Phase,
	)
}

// handleRun invokes any catalog skill by its full name.
func (r *Router) handleRun(args []string) string {
	if len(args) == 0 {
		return "Skill name is required. Usage: `/dojo run <skill-name> [args]`. Browse with `/dojo skills`."
	}
	name := args[0]
	if !skills.Known(name) {
		return fmt.Sprintf(
			"Unknown skill: `%s`. Browse the catalog with `/dojo skills` (categories: %s).",
			name, strings.Join(skills.Categories, ", "),
		)
	}
	return r.handleSkillInvoke(name, args[1:])
}

// handleSkills renders the catalog, optionally filtered by category.
func (r *Router) handleSkills(args []string) string {
	category := ""
	if len(args) > 0 {
		category = args[0]
	}
	return skills.List(category)
}
