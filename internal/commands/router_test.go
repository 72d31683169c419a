package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dojo-genesis/dojo/internal/state"
)

func newTestRouter(t *testing.T) (*Router, *state.Manager) {
	t.Helper()
	mgr := state.NewManager(t.TempDir())
	return NewRouter(mgr), mgr
}

func TestDispatch_HelpAndUnknown(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, input := range []string{"", "help"} {
		out := r.Dispatch(input)
		if !strings.Contains(out, "**Dojo Genesis**") {
			t.Errorf("Dispatch(%q) did not return help:\n%s", input, out)
		}
	}

	out := r.Dispatch("frobnicate")
	if !strings.Contains(out, "Unknown command: `frobnicate`") {
		t.Errorf("unknown command text = %q", out)
	}
}

func TestInit_CreatesProjectScaffolding(t *testing.T) {
	r, mgr := newTestRouter(t)

	out := r.Dispatch(`init my-api --desc "An API rewrite"`)
	if !strings.Contains(out, "**Project created:** `my-api`") {
		t.Fatalf("init output = %q", out)
	}

	// Six output subdirectories plus the seed documents.
	projectDir := mgr.ProjectDir("my-api")
	for _, sub := range []string{"scouts", "specs", "prompts", "retros", "tracks", "artifacts"} {
		if _, err := os.Stat(filepath.Join(projectDir, sub)); err != nil {
			t.Errorf("missing subdirectory %s: %v", sub, err)
		}
	}
	raw, err := os.ReadFile(filepath.Join(projectDir, "PROJECT.md"))
	if err != nil {
		t.Fatalf("PROJECT.md missing: %v", err)
	}
	if !strings.Contains(string(raw), "An API rewrite") {
		t.Error("PROJECT.md missing description")
	}
	if !state.FileExists(filepath.Join(projectDir, "decisions.md")) {
		t.Error("decisions.md missing")
	}

	// State document seeded and active.
	st, err := mgr.ProjectState("my-api")
	if err != nil || st == nil {
		t.Fatalf("project state missing: %v", err)
	}
	if st.Phase != state.PhaseInitialized {
		t.Errorf("phase = %q", st.Phase)
	}
	if len(st.ActivityLog) != 1 || st.ActivityLog[0].Action != "command:init" {
		t.Errorf("seed activity = %+v", st.ActivityLog)
	}
	global, _ := mgr.GlobalState()
	if global.ActiveProjectID != "my-api" {
		t.Errorf("active = %q", global.ActiveProjectID)
	}
}

func TestInit_RejectsInvalidAndDuplicateNames(t *testing.T) {
	r, _ := newTestRouter(t)

	if out := r.Dispatch("init Bad_Name"); !strings.Contains(out, "Invalid project name") {
		t.Errorf("invalid name output = %q", out)
	}

	r.Dispatch("init my-api")
	out := r.Dispatch("init my-api")
	if !strings.Contains(out, "already exists") {
		t.Errorf("duplicate output = %q", out)
	}
}

func TestInit_ReusesArchivedID(t *testing.T) {
	r, mgr := newTestRouter(t)

	r.Dispatch("init my-api")
	if out := r.Dispatch("archive my-api"); !strings.Contains(out, "**Project archived:**") {
		t.Fatalf("archive output = %q", out)
	}

	// Advance the old document so a stale reuse would be visible.
	phase := state.PhaseImplementing
	if err := mgr.UpdateProjectState("my-api", state.Update{Phase: &phase}); err != nil {
		t.Fatalf("advance old document: %v", err)
	}

	out := r.Dispatch("init my-api")
	if !strings.Contains(out, "**Project created:**") {
		t.Fatalf("re-init output = %q", out)
	}
	st, _ := mgr.ProjectState("my-api")
	if st.Phase != state.PhaseInitialized {
		t.Errorf("re-initialized project kept stale phase %q", st.Phase)
	}
}

func TestSwitch(t *testing.T) {
	r, mgr := newTestRouter(t)
	r.Dispatch("init alpha")
	r.Dispatch("init beta")

	out := r.Dispatch("switch alpha")
	if !strings.Contains(out, "**Switched to:** `alpha`") {
		t.Fatalf("switch output = %q", out)
	}
	global, _ := mgr.GlobalState()
	if global.ActiveProjectID != "alpha" {
		t.Errorf("active = %q", global.ActiveProjectID)
	}

	if out := r.Dispatch("switch ghost"); !strings.Contains(out, "not found") {
		t.Errorf("missing project output = %q", out)
	}

	r.Dispatch("archive beta")
	if out := r.Dispatch("switch beta"); !strings.Contains(out, "is archived") {
		t.Errorf("archived project output = %q", out)
	}
}

func TestStatus(t *testing.T) {
	r, _ := newTestRouter(t)

	out := r.Dispatch("status")
	if !strings.Contains(out, "No active project") {
		t.Fatalf("empty status = %q", out)
	}

	r.Dispatch("init alpha")
	out = r.Dispatch("status")
	if !strings.Contains(out, "**Project:** `alpha`") {
		t.Errorf("status missing project line:\n%s", out)
	}
	if !strings.Contains(out, "**Phase:** [ ] initialized") {
		t.Errorf("status missing phase line:\n%s", out)
	}
	if !strings.Contains(out, "**Suggested next:**") {
		t.Errorf("status missing suggestion:\n%s", out)
	}

	// @project targeting reads a non-active project.
	r.Dispatch("init beta")
	out = r.Dispatch("status @alpha")
	if !strings.Contains(out, "**Project:** `alpha`") {
		t.Errorf("targeted status read the wrong project:\n%s", out)
	}
}

func TestList(t *testing.T) {
	r, _ := newTestRouter(t)

	out := r.Dispatch("list")
	if !strings.Contains(out, "No projects") {
		t.Fatalf("empty list = %q", out)
	}

	r.Dispatch("init alpha")
	r.Dispatch("init beta")
	r.Dispatch("archive alpha")

	out = r.Dispatch("list")
	if strings.Contains(out, "| alpha |") {
		t.Errorf("default list shows archived project:\n%s", out)
	}
	if !strings.Contains(out, "| beta |") {
		t.Errorf("default list missing beta:\n%s", out)
	}

	out = r.Dispatch("list --all")
	if !strings.Contains(out, "| alpha |") {
		t.Errorf("--all list hides archived project:\n%s", out)
	}
}

func TestArchive_ErrorTexts(t *testing.T) {
	r, _ := newTestRouter(t)

	if out := r.Dispatch("archive"); !strings.Contains(out, "Usage:") {
		t.Errorf("missing-arg output = %q", out)
	}
	if out := r.Dispatch("archive ghost"); !strings.Contains(out, "not found") {
		t.Errorf("missing project output = %q", out)
	}

	r.Dispatch("init alpha")
	r.Dispatch("archive alpha")
	if out := r.Dispatch("archive alpha"); !strings.Contains(out, "already archived") {
		t.Errorf("re-archive output = %q", out)
	}
}

func TestSkillInvoke_SetsPendingAction(t *testing.T) {
	r, mgr := newTestRouter(t)

	out := r.Dispatch("scout build vs buy")
	if !strings.Contains(out, "No active project") {
		t.Fatalf("invoke without project = %q", out)
	}

	r.Dispatch("init alpha")
	out = r.Dispatch("scout build vs buy")
	if !strings.Contains(out, "**Starting strategic-scout** for project `alpha`") {
		t.Fatalf("invoke output = %q", out)
	}

	st, _ := mgr.ProjectState("alpha")
	if st.PendingAction == nil {
		t.Fatal("pending action not set")
	}
	if st.PendingAction.Skill != "strategic-scout" || st.PendingAction.Args != "build vs buy" {
		t.Errorf("pending action = %+v", st.PendingAction)
	}
	if st.ActivityLog[0].Action != "command:strategic-scout" {
		t.Errorf("activity entry = %+v", st.ActivityLog[0])
	}
}

func TestSkillInvoke_TargetsProject(t *testing.T) {
	r, mgr := newTestRouter(t)
	r.Dispatch("init alpha")
	r.Dispatch("init beta")

	out := r.Dispatch("retro @alpha")
	if !strings.Contains(out, "project `alpha`") {
		t.Fatalf("targeted invoke output = %q", out)
	}

	alpha, _ := mgr.ProjectState("alpha")
	if alpha.PendingAction == nil || alpha.PendingAction.Skill != "retrospective" {
		t.Errorf("alpha pending = %+v", alpha.PendingAction)
	}
	beta, _ := mgr.ProjectState("beta")
	if beta.PendingAction != nil {
		t.Errorf("beta pending = %+v, want nil", beta.PendingAction)
	}
}

func TestRun(t *testing.T) {
	r, mgr := newTestRouter(t)
	r.Dispatch("init alpha")

	if out := r.Dispatch("run"); !strings.Contains(out, "Skill name is required") {
		t.Errorf("missing-arg output = %q", out)
	}
	if out := r.Dispatch("run no-such-skill"); !strings.Contains(out, "Unknown skill: `no-such-skill`") {
		t.Errorf("unknown skill output = %q", out)
	}

	out := r.Dispatch("run memory-garden session notes")
	if !strings.Contains(out, "**Starting memory-garden**") {
		t.Fatalf("run output = %q", out)
	}
	st, _ := mgr.ProjectState("alpha")
	if st.PendingAction == nil || st.PendingAction.Args != "session notes" {
		t.Errorf("pending = %+v", st.PendingAction)
	}
}

func TestSkills(t *testing.T) {
	r, _ := newTestRouter(t)

	out := r.Dispatch("skills")
	if !strings.Contains(out, "**Dojo Genesis Skill Catalog**") {
		t.Errorf("catalog output = %q", out)
	}
	out = r.Dispatch("skills research")
	if !strings.Contains(out, "research-synthesis") {
		t.Errorf("filtered catalog = %q", out)
	}
}
