// Package state owns the on-disk project documents and the manager that
// mediates every read and write of them.
//
// Two document kinds exist: one global-state.json per installation (the
// project index) and one state.json per project (the workflow document).
// The project document is the sole owner of workflow data; the metadata
// entry in the global index carries a denormalized projection of phase and
// last-access time that the manager keeps in sync on every write.
package state

import "fmt"

// SchemaVersion is the only schema this build reads or writes. A document
// with any other version is treated as corrupt — there is no migration.
const SchemaVersion = "1.0.0"

// MaxActivityLog caps the per-project activity log. Older entries are
// silently dropped.
const MaxActivityLog = 50

// --- Phase enum ---

// Phase is a project's stage in the seven-step workflow pipeline. The
// pipeline is advisory: any caller may set any phase, and the enum drives
// next-step suggestions rather than transition gating.
type Phase string

const (
	PhaseInitialized   Phase = "initialized"
	PhaseScouting      Phase = "scouting"
	PhaseSpecifying    Phase = "specifying"
	PhaseDecomposing   Phase = "decomposing"
	PhaseCommissioning Phase = "commissioning"
	PhaseImplementing  Phase = "implementing"
	PhaseRetrospective Phase = "retrospective"
)

// PhaseOrder lists phases in pipeline order.
var PhaseOrder = []Phase{
	PhaseInitialized,
	PhaseScouting,
	PhaseSpecifying,
	PhaseDecomposing,
	PhaseCommissioning,
	PhaseImplementing,
	PhaseRetrospective,
}

var validPhases = map[Phase]bool{
	PhaseInitialized:   true,
	PhaseScouting:      true,
	PhaseSpecifying:    true,
	PhaseDecomposing:   true,
	PhaseCommissioning: true,
	PhaseImplementing:  true,
	PhaseRetrospective: true,
}

// ValidatePhase returns an error if the phase is not one of the seven
// pipeline values.
func ValidatePhase(p Phase) error {
	if !validPhases[p] {
		return fmt.Errorf("invalid phase %q: must be one of: initialized, scouting, specifying, decomposing, commissioning, implementing, retrospective", p)
	}
	return nil
}

// --- Track status enum ---

// TrackStatus is the lifecycle state of a single implementation track.
type TrackStatus string

const (
	TrackPending    TrackStatus = "pending"
	TrackInProgress TrackStatus = "in-progress"
	TrackCompleted  TrackStatus = "completed"
	TrackBlocked    TrackStatus = "blocked"
)

// --- Documents ---

// GlobalState is the installation-wide project index, persisted as
// global-state.json.
type GlobalState struct {
	Version         string            `json:"version"`
	ActiveProjectID string            `json:"activeProjectId"`
	Projects        []ProjectMetadata `json:"projects"`
	LastUpdated     string            `json:"lastUpdated"`
}

// ProjectMetadata is one entry in the global project index. Phase and
// LastAccessedAt are a denormalized projection of the project document.
type ProjectMetadata struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Phase          Phase  `json:"phase"`
	CreatedAt      string `json:"createdAt"`
	LastAccessedAt string `json:"lastAccessedAt"`
	Archived       bool   `json:"archived"`
}

// ProjectState is the per-project workflow document, persisted as
// projects/<id>/state.json.
type ProjectState struct {
	ProjectID     string          `json:"projectId"`
	Phase         Phase           `json:"phase"`
	Tracks        []Track         `json:"tracks"`
	Decisions     []DecisionRef   `json:"decisions"`
	Specs         []SpecRef       `json:"specs"`
	Artifacts     []ArtifactRef   `json:"artifacts"`
	CurrentTrack  string          `json:"currentTrack,omitempty"`
	LastSkill     string          `json:"lastSkill"`
	PendingAction *PendingAction  `json:"pendingAction"`
	ActivityLog   []ActivityEntry `json:"activityLog"`
	LastUpdated   string          `json:"lastUpdated"`
}

// Track is one parallel implementation track. Dependencies are bare track
// ids with no referential-integrity check — the orchestrating agent owns
// consistency.
type Track struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Status       TrackStatus `json:"status"`
	Dependencies []string    `json:"dependencies"`
	PromptFile   string      `json:"promptFile,omitempty"`
}

// DecisionRef points at a logged decision document.
type DecisionRef struct {
	Date  string `json:"date"`
	Topic string `json:"topic"`
	File  string `json:"file"`
}

// SpecRef points at a saved specification version.
type SpecRef struct {
	Version string `json:"version"`
	File    string `json:"file"`
}

// ArtifactRef records one saved skill output file.
type ArtifactRef struct {
	Category  string `json:"category"`
	Filename  string `json:"filename"`
	CreatedAt string `json:"createdAt"`
	Skill     string `json:"skill"`
}

// PendingAction is the one-shot handshake slot: a skill invocation writes
// it, the next turn-start hook renders it, and the turn-end hook clears
// it. A second invocation before consumption overwrites the first —
// last-write-wins, no queueing.
type PendingAction struct {
	Skill       string `json:"skill"`
	Args        string `json:"args"`
	RequestedAt string `json:"requestedAt"`
}

// ActivityEntry is one line of the bounded, newest-first audit trail.
type ActivityEntry struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Summary   string `json:"summary"`
}

// NewProjectState builds the initial workflow document for a freshly
// created project.
func NewProjectState(id, now string) *ProjectState {
	return &ProjectState{
		ProjectID: id,
		Phase:     PhaseInitialized,
		Tracks:    []Track{},
		Decisions: []DecisionRef{},
		Specs:     []SpecRef{},
		Artifacts: []ArtifactRef{},
		LastSkill: "",
		ActivityLog: []ActivityEntry{
			{Timestamp: now, Action: "command:init", Summary: "Project created"},
		},
		LastUpdated: now,
	}
}
