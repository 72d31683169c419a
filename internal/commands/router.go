// Package commands implements the /dojo chat command surface: project
// management subcommands plus skill-invocation shorthands. Every handler
// returns a short markdown payload; validation failures and not-found
// conditions come back as user-facing text, never as errors.
package commands

import (
	"fmt"
	"strings"

	"github.com/dojo-genesis/dojo/internal/skills"
	"github.com/dojo-genesis/dojo/internal/state"
)

const helpText = "**Dojo Genesis** — Specification-driven development orchestration\n\n" +
	"**Project Management:**\n" +
	"`/dojo init <name>` — Create a new project\n" +
	"`/dojo switch <name>` — Switch active project\n" +
	"`/dojo status` — Show current project status\n" +
	"`/dojo list` — List all projects\n" +
	"`/dojo archive <name>` — Archive a project\n\n" +
	"**Workflow:**\n" +
	"`/dojo scout <tension>` — Run a strategic scout\n" +
	"`/dojo spec <feature>` — Write a release specification\n" +
	"`/dojo tracks` — Decompose into parallel tracks\n" +
	"`/dojo commission` — Generate implementation prompts\n" +
	"`/dojo retro` — Run a retrospective\n\n" +
	"**Skills:**\n" +
	"`/dojo skills [category]` — Browse the skill catalog\n" +
	"`/dojo run <skill-name> [args]` — Request any catalog skill\n\n" +
	"Use `@project-name` to target a specific project."

// Router dispatches /dojo subcommands against one state manager.
type Router struct {
	mgr *state.Manager
}

// NewRouter creates a Router backed by the given manager.
func NewRouter(mgr *state.Manager) *Router {
	return &Router{mgr: mgr}
}

// Dispatch parses a raw argument string and runs the matching subcommand.
// Unknown subcommands return an error message as text.
func (r *Router) Dispatch(input string) string {
	args := strings.Fields(strings.TrimSpace(input))
	if len(args) == 0 {
		return helpText
	}

	sub := strings.ToLower(args[0])
	rest := args[1:]

	switch sub {
	case "init":
		return r.handleInit(rest)
	case "switch":
		return r.handleSwitch(rest)
	case "status":
		return r.handleStatus(rest)
	case "list":
		return r.handleList(rest)
	case "archive":
		return r.handleArchive(rest)
	case "scout", "spec", "tracks", "commission", "retro":
		return r.handleSkillInvoke(skills.Shorthands[sub], rest)
	case "run":
		return r.handleRun(rest)
	case "skills":
		return r.handleSkills(rest)
	case "help":
		return helpText
	default:
		return fmt.Sprintf("Unknown command: `%s`. Run `/dojo help` for available commands.", sub)
	}
}

// splitTarget extracts an @project argument, returning the target id (or
// empty) and the remaining args.
func splitTarget(args []string) (string, []string) {
	target := ""
	remaining := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "@") && target == "" {
			target = strings.TrimPrefix(a, "@")
			continue
		}
		remaining = append(remaining, a)
	}
	return target, remaining
}
