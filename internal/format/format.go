// Package format renders project state as chat-friendly markdown. It is a
// pure projection layer: no state access, no mutation.
package format

import (
	"fmt"
	"strings"

	"github.com/dojo-genesis/dojo/internal/state"
)

var phaseIndicator = map[state.Phase]string{
	state.PhaseInitialized:   "[ ]",
	state.PhaseScouting:      "[~]",
	state.PhaseSpecifying:    "[~]",
	state.PhaseDecomposing:   "[~]",
	state.PhaseCommissioning: "[~]",
	state.PhaseImplementing:  "[>]",
	state.PhaseRetrospective: "[*]",
}

// Phase renders a phase with its progress indicator.
func Phase(p state.Phase) string {
	indicator, ok := phaseIndicator[p]
	if !ok {
		indicator = "[ ]"
	}
	return indicator + " " + string(p)
}

// Date trims an RFC3339 timestamp to its date part.
func Date(iso string) string {
	if i := strings.IndexByte(iso, 'T'); i >= 0 {
		return iso[:i]
	}
	return iso
}

// TrackTable renders tracks as a markdown table.
func TrackTable(tracks []state.Track) string {
	if len(tracks) == 0 {
		return "_No tracks defined._"
	}

	var b strings.Builder
	b.WriteString("| Track | Name | Status | Dependencies |\n")
	b.WriteString("|-------|------|--------|-------------|\n")
	for _, t := range tracks {
		deps := "none"
		if len(t.Dependencies) > 0 {
			deps = strings.Join(t.Dependencies, ", ")
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", t.ID, t.Name, t.Status, deps)
	}
	return b.String()
}

// ProjectList renders the project index as a markdown table, marking the
// active project. Archived projects are hidden unless showArchived.
func ProjectList(projects []state.ProjectMetadata, showArchived bool, activeID string) string {
	var visible []state.ProjectMetadata
	for _, p := range projects {
		if showArchived || !p.Archived {
			visible = append(visible, p)
		}
	}
	if len(visible) == 0 {
		return "_No projects. Run `/dojo init <name>` to create one._"
	}

	var b strings.Builder
	b.WriteString("| Project | Phase | Last Active | Active |\n")
	b.WriteString("|---------|-------|-------------|--------|\n")
	for _, p := range visible {
		marker := ""
		if p.ID == activeID {
			marker = ">>>"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", p.ID, p.Phase, Date(p.LastAccessedAt), marker)
	}
	return b.String()
}

var nextSteps = map[state.Phase]string{
	state.PhaseInitialized:   "`/dojo scout <tension>` — Start with a strategic scout",
	state.PhaseScouting:      "`/dojo spec <feature>` — Write a release specification",
	state.PhaseSpecifying:    "`/dojo tracks` — Decompose into parallel tracks",
	state.PhaseDecomposing:   "`/dojo commission` — Generate implementation prompts",
	state.PhaseCommissioning: "Hand off prompts to implementation agents",
	state.PhaseImplementing:  "`/dojo retro` — Run a retrospective when done",
	state.PhaseRetrospective: "`/dojo init <name>` — Start a new project, or continue iterating",
}

// NextStep returns the advisory next action for a phase, or empty for an
// unknown phase.
func NextStep(p state.Phase) string {
	return nextSteps[p]
}

// ProjectMD generates the initial human-readable PROJECT.md. The
// `**Phase:**` line and `## Activity Log` heading are load-bearing: the
// after-tool-call hook rewrites the former and appends beneath the
// latter.
func ProjectMD(name, description, date string) string {
	desc := ""
	if description != "" {
		desc = description + "\n\n"
	}
	return fmt.Sprintf(
		"# %s\n\n%s**Phase:** initialized\n**Created:** %s\n\n---\n\n## Activity Log\n\n- %s — Project created\n",
		name, desc, date, date,
	)
}

// DecisionsMD generates the initial decisions.md log.
func DecisionsMD(name string) string {
	return fmt.Sprintf("# Decision Log: %s\n\n---\n\n", name)
}
