// Package hooks implements the three lifecycle handlers the host agent
// runtime dispatches: context injection at turn start, cosmetic document
// sync after tool calls, and pending-action cleanup at turn end. Wrong
// event types and missing state make every handler a no-op.
package hooks

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/dojo-genesis/dojo/internal/skills"
	"github.com/dojo-genesis/dojo/internal/state"
)

// Event is the host runtime's lifecycle event. Messages is the turn's
// outgoing message list; handlers append to it. Context is a free-form
// bag (tool name and parameters for after-tool-call events).
type Event struct {
	Type     string
	Action   string
	Messages *[]string
	Context  map[string]any
}

// monitoredTools is the allow-list for the after-tool-call hook. All
// other tool calls are ignored.
var monitoredTools = map[string]bool{
	"dojo_save_artifact": true,
	"dojo_update_state":  true,
	"dojo_get_context":   true,
}

var phaseLine = regexp.MustCompile(`\*\*Phase:\*\* .+`)

// Hooks bundles the three lifecycle handlers around one state manager.
type Hooks struct {
	mgr *state.Manager
	now func() time.Time
}

// New creates the hook bundle.
func New(mgr *state.Manager) *Hooks {
	return &Hooks{mgr: mgr, now: time.Now}
}

// BeforeAgentStart injects the project context block when the active
// project has a pending action. Fires only on agent/start events; in
// every other case it injects nothing.
func (h *Hooks) BeforeAgentStart(event *Event) error {
	if event.Type != "agent" || event.Action != "start" {
		return nil
	}

	global, err := h.mgr.GlobalState()
	if err != nil {
		return err
	}
	if global.ActiveProjectID == "" {
		return nil
	}

	st, err := h.mgr.ProjectState(global.ActiveProjectID)
	if err != nil {
		return err
	}
	if st == nil || st.PendingAction == nil {
		return nil
	}

	if event.Messages != nil {
		*event.Messages = append(*event.Messages, contextBlock(st))
	}
	return nil
}

// contextBlock renders the injected turn-start context for a pending
// skill request.
func contextBlock(st *state.ProjectState) string {
	trackSummary := "none"
	if len(st.Tracks) > 0 {
		parts := make([]string, len(st.Tracks))
		for i, t := range st.Tracks {
			parts[i] = fmt.Sprintf("%s (%s)", t.ID, t.Status)
		}
		trackSummary = strings.Join(parts, ", ")
	}

	decisions := st.Decisions
	if len(decisions) > 3 {
		decisions = decisions[len(decisions)-3:]
	}
	decisionSummary := "none"
	if len(decisions) > 0 {
		topics := make([]string, len(decisions))
		for i, d := range decisions {
			topics[i] = d.Topic
		}
		decisionSummary = strings.Join(topics, ", ")
	}

	lastSkill := st.LastSkill
	if lastSkill == "" {
		lastSkill = "none"
	}

	return strings.Join([]string{
		"[DOJO GENESIS PROJECT CONTEXT]",
		"Project: " + st.ProjectID,
		"Phase: " + string(st.Phase),
		"Pending skill: " + st.PendingAction.Skill,
		"User request: " + st.PendingAction.Args,
		"",
		"Active tracks: " + trackSummary,
		"Recent decisions: " + decisionSummary,
		"Last skill: " + lastSkill,
		"",
		"INSTRUCTIONS: " + skills.Instruction(st.PendingAction.Skill),
		"Start by calling dojo_get_context for full project state. When done, save output with dojo_save_artifact and update state with dojo_update_state.",
		"[/DOJO GENESIS PROJECT CONTEXT]",
	}, "\n")
}

// AfterToolCall keeps PROJECT.md's phase line and changelog in step with
// phase changes made through dojo_update_state. This is cosmetic
// projection: a missing PROJECT.md is swallowed, and every tool call
// outside the allow-list is ignored.
func (h *Hooks) AfterToolCall(event *Event) error {
	if event.Type != "agent" {
		return nil
	}

	toolName, _ := event.Context["toolName"].(string)
	if !monitoredTools[toolName] {
		return nil
	}
	if toolName != "dojo_update_state" {
		return nil
	}

	params, _ := event.Context["toolParams"].(map[string]any)
	newPhase, _ := params["phase"].(string)
	if newPhase == "" {
		return nil
	}
	return h.syncProjectMD(newPhase)
}

func (h *Hooks) syncProjectMD(toPhase string) error {
	global, err := h.mgr.GlobalState()
	if err != nil {
		return err
	}
	if global.ActiveProjectID == "" {
		return nil
	}

	path := filepath.Join(h.mgr.ProjectDir(global.ActiveProjectID), "PROJECT.md")
	raw, err := os.ReadFile(path)
	if err != nil {
		// PROJECT.md is optional scaffolding.
		return nil
	}

	content := phaseLine.ReplaceAllString(string(raw), "**Phase:** "+toPhase)
	logEntry := fmt.Sprintf("- %s — Phase changed to %s\n", h.now().UTC().Format("2006-01-02"), toPhase)
	content = strings.Replace(content, "## Activity Log\n\n", "## Activity Log\n\n"+logEntry, 1)

	return state.WriteText(path, content)
}

// AgentEnd clears the active project's pending action. This is the sole
// cleanup path of the handshake: the slot is consumed exactly once per
// turn whether or not the agent acted on it.
func (h *Hooks) AgentEnd(event *Event) error {
	if event.Type != "agent" {
		return nil
	}

	global, err := h.mgr.GlobalState()
	if err != nil {
		return err
	}
	if global.ActiveProjectID == "" {
		return nil
	}

	st, err := h.mgr.ProjectState(global.ActiveProjectID)
	if err != nil {
		return err
	}
	if st == nil || st.PendingAction == nil {
		return nil
	}

	return h.mgr.UpdateProjectState(global.ActiveProjectID, state.Update{ClearPendingAction: true})
}
