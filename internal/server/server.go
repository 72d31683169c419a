// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates the state manager, the
// optional history index, the command router and the hook bundle, then
// injects them into the tools and prompts. No business logic lives here.
package server

import (
	"log"
	"path/filepath"

	"github.com/dojo-genesis/dojo/internal/commands"
	"github.com/dojo-genesis/dojo/internal/history"
	"github.com/dojo-genesis/dojo/internal/hooks"
	"github.com/dojo-genesis/dojo/internal/prompts"
	"github.com/dojo-genesis/dojo/internal/state"
	"github.com/dojo-genesis/dojo/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools and prompts
// registered, plus the lifecycle hook bundle for host runtimes that
// dispatch agent events.
//
// The returned cleanup function closes the history index's database
// connection and must be called on shutdown (typically via defer).
// It is always non-nil and safe to call even if history init failed.
func New(basePath string) (*server.MCPServer, *hooks.Hooks, func(), error) {
	// History is an independent subsystem: if it fails to initialize,
	// the state tools keep working. We log a warning and serve without
	// cross-project search.
	cleanup := noop
	idx, histErr := history.Open(filepath.Join(basePath, "data"))
	if histErr != nil {
		log.Printf("WARNING: history subsystem disabled: %v", histErr)
		idx = nil
	} else {
		cleanup = func() {
			if err := idx.Close(); err != nil {
				log.Printf("WARNING: history index close: %v", err)
			}
		}
	}

	opts := []state.Option{state.WithWarnLogger(log.Printf)}
	if idx != nil {
		opts = append(opts, state.WithRecorder(idx))
	}
	mgr := state.NewManager(basePath, opts...)

	router := commands.NewRouter(mgr)
	hookBundle := hooks.New(mgr)

	s := server.NewMCPServer(
		"dojo-genesis",
		Version,
		server.WithToolCapabilities(true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	contextTool := tools.NewContextTool(mgr)
	s.AddTool(contextTool.Definition(), contextTool.Handle)

	artifactTool := tools.NewArtifactTool(mgr)
	s.AddTool(artifactTool.Definition(), artifactTool.Handle)

	updateTool := tools.NewUpdateTool(mgr)
	s.AddTool(updateTool.Definition(), updateTool.Handle)

	commandTool := tools.NewCommandTool(router)
	s.AddTool(commandTool.Definition(), commandTool.Handle)

	// Registered unconditionally; reports when the index is disabled.
	searchTool := tools.NewSearchTool(idx)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	startPrompt := prompts.NewStartPrompt()
	s.AddPrompt(startPrompt.Definition(), startPrompt.Handle)

	statusPrompt := prompts.NewStatusPrompt()
	s.AddPrompt(statusPrompt.Definition(), statusPrompt.Handle)

	return s, hookBundle, cleanup, nil
}

// noop is the default cleanup function when history is disabled.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to drive the Dojo Genesis workflow.
func serverInstructions() string {
	return `You have access to Dojo Genesis, a project workflow server for agent-driven development.

## What it does
Dojo Genesis keeps per-project state (phase, work tracks, decisions, specs,
artifacts, activity log) so multi-session work stays coherent. You read state,
do the work yourself, then write results back. The tools are STORAGE tools:
they persist content YOU generate.

## Workflow phases
Projects move through an advisory pipeline:
initialized -> scouting -> specifying -> decomposing -> commissioning -> implementing -> retrospective

Phases are advisory, not gates. Move the phase with dojo_update_state when a
pipeline skill completes.

## Tools
- dojo_get_context: read the project state. Call this FIRST in every skill run.
- dojo_save_artifact: persist a markdown output into one of the project's
  output directories (scouts, specs, prompts, retros, tracks, artifacts).
- dojo_update_state: advance the phase, record the skill that ran, add tracks,
  decisions, and spec revisions.
- dojo_command: run a /dojo command (init, switch, status, list, archive,
  run, skills, or a skill shorthand like 'scout <question>').
- dojo_search_history: full-text search over activity across all projects.
  Use it to recall what happened in earlier sessions.

## Skill run pattern
1. Call dojo_get_context to ground yourself in the project state
2. Do the skill's work (research, spec writing, decomposition, ...)
3. Save the output with dojo_save_artifact into the matching directory
4. Call dojo_update_state with lastSkill and, if the pipeline advanced, phase

## Important rules
- NEVER save placeholder content. Generate real, substantive output.
- One project is active at a time; pass projectId to target another.
- Filenames should be date-prefixed, e.g. '2026-02-12_scout_build-native.md'.`
}
