package hooks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dojo-genesis/dojo/internal/commands"
	"github.com/dojo-genesis/dojo/internal/state"
)

func setup(t *testing.T) (*Hooks, *commands.Router, *state.Manager) {
	t.Helper()
	mgr := state.NewManager(t.TempDir())
	router := commands.NewRouter(mgr)
	if out := router.Dispatch("init alpha"); !strings.Contains(out, "**Project created:**") {
		t.Fatalf("setup: init failed: %s", out)
	}
	return New(mgr), router, mgr
}

func startEvent(messages *[]string) *Event {
	return &Event{Type: "agent", Action: "start", Messages: messages}
}

func TestBeforeAgentStart_InjectsPendingContext(t *testing.T) {
	h, router, _ := setup(t)
	router.Dispatch("scout build vs buy")

	var messages []string
	if err := h.BeforeAgentStart(startEvent(&messages)); err != nil {
		t.Fatalf("BeforeAgentStart failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("injected %d messages, want 1", len(messages))
	}

	msg := messages[0]
	for _, want := range []string{
		"[DOJO GENESIS PROJECT CONTEXT]",
		"Project: alpha",
		"Phase: initialized",
		"Pending skill: strategic-scout",
		"User request: build vs buy",
		"Active tracks: none",
		"Recent decisions: none",
		"Last skill: none",
		"INSTRUCTIONS: Run the strategic-scout skill.",
		"[/DOJO GENESIS PROJECT CONTEXT]",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("injected message missing %q:\n%s", want, msg)
		}
	}
}

func TestBeforeAgentStart_SummarizesState(t *testing.T) {
	h, router, mgr := setup(t)

	if err := mgr.UpdateProjectState("alpha", state.Update{
		Tracks: []state.Track{
			{ID: "track-a", Status: state.TrackCompleted},
			{ID: "track-b", Status: state.TrackInProgress},
		},
		Decisions: []state.DecisionRef{
			{Topic: "one"}, {Topic: "two"}, {Topic: "three"}, {Topic: "four"},
		},
	}); err != nil {
		t.Fatalf("seed state: %v", err)
	}
	router.Dispatch("tracks")

	var messages []string
	if err := h.BeforeAgentStart(startEvent(&messages)); err != nil {
		t.Fatalf("BeforeAgentStart failed: %v", err)
	}
	msg := messages[0]

	if !strings.Contains(msg, "Active tracks: track-a (completed), track-b (in-progress)") {
		t.Errorf("track summary wrong:\n%s", msg)
	}
	// Only the last three decision topics appear.
	if !strings.Contains(msg, "Recent decisions: two, three, four") {
		t.Errorf("decision summary wrong:\n%s", msg)
	}
}

func TestBeforeAgentStart_Gates(t *testing.T) {
	h, router, _ := setup(t)
	router.Dispatch("scout anything")

	var messages []string
	events := []*Event{
		{Type: "tool", Action: "start", Messages: &messages},
		{Type: "agent", Action: "end", Messages: &messages},
	}
	for _, ev := range events {
		if err := h.BeforeAgentStart(ev); err != nil {
			t.Fatalf("BeforeAgentStart failed: %v", err)
		}
	}
	if len(messages) != 0 {
		t.Errorf("gated events injected %d messages", len(messages))
	}
}

func TestBeforeAgentStart_NoPendingActionIsQuiet(t *testing.T) {
	h, _, _ := setup(t)

	var messages []string
	if err := h.BeforeAgentStart(startEvent(&messages)); err != nil {
		t.Fatalf("BeforeAgentStart failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("injected %d messages with no pending action", len(messages))
	}
}

func TestAfterToolCall_SyncsProjectMD(t *testing.T) {
	h, _, mgr := setup(t)

	ev := &Event{
		Type: "agent",
		Context: map[string]any{
			"toolName":   "dojo_update_state",
			"toolParams": map[string]any{"phase": "scouting"},
		},
	}
	if err := h.AfterToolCall(ev); err != nil {
		t.Fatalf("AfterToolCall failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(mgr.ProjectDir("alpha"), "PROJECT.md"))
	if err != nil {
		t.Fatalf("reading PROJECT.md: %v", err)
	}
	content := string(raw)
	if !strings.Contains(content, "**Phase:** scouting") {
		t.Errorf("phase line not rewritten:\n%s", content)
	}
	if strings.Contains(content, "**Phase:** initialized") {
		t.Errorf("old phase line survived:\n%s", content)
	}
	if !strings.Contains(content, "Phase changed to scouting") {
		t.Errorf("changelog line missing:\n%s", content)
	}
}

func TestAfterToolCall_IgnoresOtherToolsAndMissingFile(t *testing.T) {
	h, _, mgr := setup(t)

	// Unmonitored tool: nothing happens.
	ev := &Event{
		Type: "agent",
		Context: map[string]any{
			"toolName":   "some_other_tool",
			"toolParams": map[string]any{"phase": "scouting"},
		},
	}
	if err := h.AfterToolCall(ev); err != nil {
		t.Fatalf("AfterToolCall failed: %v", err)
	}
	raw, _ := os.ReadFile(filepath.Join(mgr.ProjectDir("alpha"), "PROJECT.md"))
	if !strings.Contains(string(raw), "**Phase:** initialized") {
		t.Error("unmonitored tool modified PROJECT.md")
	}

	// Missing PROJECT.md is swallowed.
	if err := os.Remove(filepath.Join(mgr.ProjectDir("alpha"), "PROJECT.md")); err != nil {
		t.Fatalf("removing PROJECT.md: %v", err)
	}
	ev.Context["toolName"] = "dojo_update_state"
	if err := h.AfterToolCall(ev); err != nil {
		t.Errorf("missing PROJECT.md surfaced an error: %v", err)
	}
}

func TestAgentEnd_ClearsPendingAction(t *testing.T) {
	h, router, mgr := setup(t)
	router.Dispatch("scout build vs buy")

	if err := h.AgentEnd(&Event{Type: "agent", Action: "end"}); err != nil {
		t.Fatalf("AgentEnd failed: %v", err)
	}
	st, _ := mgr.ProjectState("alpha")
	if st.PendingAction != nil {
		t.Errorf("pending action survived turn end: %+v", st.PendingAction)
	}

	// Idempotent when nothing is pending.
	if err := h.AgentEnd(&Event{Type: "agent", Action: "end"}); err != nil {
		t.Errorf("second AgentEnd errored: %v", err)
	}
}

func TestHandshake_EndToEnd(t *testing.T) {
	h, router, mgr := setup(t)

	// Command sets the slot, turn start consumes it for rendering,
	// turn end clears it.
	router.Dispatch("scout redis vs valkey")

	var messages []string
	if err := h.BeforeAgentStart(startEvent(&messages)); err != nil {
		t.Fatalf("BeforeAgentStart failed: %v", err)
	}
	if len(messages) != 1 || !strings.Contains(messages[0], "User request: redis vs valkey") {
		t.Fatalf("context injection wrong: %v", messages)
	}

	if err := h.AgentEnd(&Event{Type: "agent", Action: "end"}); err != nil {
		t.Fatalf("AgentEnd failed: %v", err)
	}

	// The next turn starts clean.
	messages = nil
	if err := h.BeforeAgentStart(startEvent(&messages)); err != nil {
		t.Fatalf("second BeforeAgentStart failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("cleared handshake still injected: %v", messages)
	}

	st, _ := mgr.ProjectState("alpha")
	if st.PendingAction != nil {
		t.Errorf("pending action = %+v, want nil", st.PendingAction)
	}
}
