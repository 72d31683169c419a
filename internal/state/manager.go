package state

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

// ErrSchemaVersion marks the one deliberately fatal condition: a state
// document written by an incompatible schema. Callers are expected to let
// it surface — the plugin refuses to proceed rather than guess.
var ErrSchemaVersion = errors.New("unsupported schema version")

// Recorder mirrors activity entries into an out-of-band index. It is
// best-effort: the manager never fails a state write over a recorder
// error.
type Recorder interface {
	Record(projectID, action, summary, timestamp string) error
}

// Manager is the sole mediator of state reads and writes. It holds one
// cached global document and one cached document per project, valid for
// the process lifetime. The store is single-writer: another process
// mutating the same files is not a supported configuration, and the cache
// is never invalidated by external changes.
type Manager struct {
	basePath     string
	globalCache  *GlobalState
	projectCache map[string]*ProjectState
	recorder     Recorder
	warn         func(format string, args ...any)
	now          func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithRecorder mirrors every activity entry into the given recorder.
func WithRecorder(r Recorder) Option {
	return func(m *Manager) { m.recorder = r }
}

// WithWarnLogger overrides the warning sink (recorder failures).
func WithWarnLogger(fn func(format string, args ...any)) Option {
	return func(m *Manager) { m.warn = fn }
}

// WithClock overrides the timestamp source. Tests use this to get
// deterministic documents.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates a manager rooted at basePath. Nothing is read from
// disk until the first operation.
func NewManager(basePath string, opts ...Option) *Manager {
	m := &Manager{
		basePath:     basePath,
		projectCache: make(map[string]*ProjectState),
		warn:         func(string, ...any) {},
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BasePath returns the state directory root.
func (m *Manager) BasePath() string {
	return m.basePath
}

// GlobalStatePath returns the absolute path of global-state.json.
func (m *Manager) GlobalStatePath() string {
	return filepath.Join(m.basePath, "global-state.json")
}

// ProjectDir returns a project's directory.
func (m *Manager) ProjectDir(id string) string {
	return filepath.Join(m.basePath, "projects", id)
}

// ProjectStatePath returns a project's state.json path.
func (m *Manager) ProjectStatePath(id string) string {
	return filepath.Join(m.ProjectDir(id), "state.json")
}

func (m *Manager) timestamp() string {
	return m.now().UTC().Format(time.RFC3339)
}

// GlobalState lazily loads the global document on first call, creating
// the state directory and a default document when absent. The schema
// version must match exactly; a mismatch returns ErrSchemaVersion and the
// caller should treat it as fatal. Subsequent calls return the same
// in-memory object.
func (m *Manager) GlobalState() (*GlobalState, error) {
	if m.globalCache != nil {
		return m.globalCache, nil
	}

	if err := EnsureDir(m.basePath); err != nil {
		return nil, err
	}

	loaded, err := ReadJSON(m.GlobalStatePath(), GlobalState{
		Version:     SchemaVersion,
		Projects:    []ProjectMetadata{},
		LastUpdated: m.timestamp(),
	})
	if err != nil {
		return nil, err
	}
	if loaded.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: got %q, expected %q", ErrSchemaVersion, loaded.Version, SchemaVersion)
	}

	m.globalCache = &loaded
	return m.globalCache, nil
}

// SetActiveProject switches the active project (empty id deactivates).
// Activating bumps the target's lastAccessedAt.
func (m *Manager) SetActiveProject(id string) error {
	global, err := m.GlobalState()
	if err != nil {
		return err
	}

	global.ActiveProjectID = id
	global.LastUpdated = m.timestamp()
	if id != "" {
		if meta := findProject(global, id); meta != nil {
			meta.LastAccessedAt = global.LastUpdated
		}
	}
	return m.saveGlobal(global)
}

// AddProject appends metadata to the index and makes the project active.
// Id uniqueness is the caller's responsibility — this layer does not
// enforce it.
func (m *Manager) AddProject(meta ProjectMetadata) error {
	global, err := m.GlobalState()
	if err != nil {
		return err
	}

	global.Projects = append(global.Projects, meta)
	global.ActiveProjectID = meta.ID
	global.LastUpdated = m.timestamp()
	return m.saveGlobal(global)
}

// ProjectState resolves id (empty falls back to the active project) and
// returns its document, served from cache once loaded. Returns nil with
// no error when no id resolves or the document does not exist on disk.
func (m *Manager) ProjectState(id string) (*ProjectState, error) {
	global, err := m.GlobalState()
	if err != nil {
		return nil, err
	}

	if id == "" {
		id = global.ActiveProjectID
	}
	if id == "" {
		return nil, nil
	}

	if cached, ok := m.projectCache[id]; ok {
		return cached, nil
	}

	path := m.ProjectStatePath(id)
	if !FileExists(path) {
		return nil, nil
	}
	loaded, err := ReadJSON(path, ProjectState{})
	if err != nil {
		return nil, err
	}

	m.projectCache[id] = &loaded
	return &loaded, nil
}

// CreateProjectState writes a fresh project document and caches it,
// replacing any stale cached copy (a re-initialized archived id).
func (m *Manager) CreateProjectState(id string, st *ProjectState) error {
	if err := WriteJSON(m.ProjectStatePath(id), st); err != nil {
		return err
	}
	m.projectCache[id] = st
	return nil
}

// UpdateProjectState applies a partial update over the current document
// snapshot, stamps lastUpdated, persists, and refreshes the cache. It
// then re-derives the denormalized metadata projection (phase,
// lastAccessedAt) and persists global state too, keeping the index
// consistent on every write. Fails if the project has no document —
// projects must be initialized first.
func (m *Manager) UpdateProjectState(id string, update Update) error {
	current, err := m.ProjectState(id)
	if err != nil {
		return err
	}
	if current == nil {
		return fmt.Errorf("project not found: %s", id)
	}

	next := update.apply(*current, m.timestamp())
	if err := WriteJSON(m.ProjectStatePath(id), next); err != nil {
		return err
	}
	m.projectCache[id] = &next

	global, err := m.GlobalState()
	if err != nil {
		return err
	}
	if meta := findProject(global, id); meta != nil {
		meta.Phase = next.Phase
		meta.LastAccessedAt = next.LastUpdated
		if err := m.saveGlobal(global); err != nil {
			return err
		}
	}
	return nil
}

// ArchiveProject soft-archives a project: the flag is set, the active
// pointer is cleared when it pointed here, and the project's files stay
// on disk untouched. Returns false without modifying anything when the
// project is missing or already archived.
func (m *Manager) ArchiveProject(id string) (bool, error) {
	global, err := m.GlobalState()
	if err != nil {
		return false, err
	}

	meta := findProject(global, id)
	if meta == nil || meta.Archived {
		return false, nil
	}

	now := m.timestamp()
	meta.Archived = true
	meta.LastAccessedAt = now
	if global.ActiveProjectID == id {
		global.ActiveProjectID = ""
	}
	global.LastUpdated = now

	if err := m.saveGlobal(global); err != nil {
		return false, err
	}
	return true, nil
}

// AddActivity prepends an entry to the project's activity log, truncates
// to the most recent MaxActivityLog entries, and persists through
// UpdateProjectState so the metadata projection stays in sync. No-op when
// the project document does not exist.
func (m *Manager) AddActivity(id, action, summary string) error {
	st, err := m.ProjectState(id)
	if err != nil {
		return err
	}
	if st == nil {
		return nil
	}

	entry := ActivityEntry{Timestamp: m.timestamp(), Action: action, Summary: summary}
	log := append([]ActivityEntry{entry}, st.ActivityLog...)
	if len(log) > MaxActivityLog {
		log = log[:MaxActivityLog]
	}

	if err := m.UpdateProjectState(id, Update{ActivityLog: log}); err != nil {
		return err
	}

	if m.recorder != nil {
		if err := m.recorder.Record(id, action, summary, entry.Timestamp); err != nil {
			m.warn("history index write failed: %v", err)
		}
	}
	return nil
}

func (m *Manager) saveGlobal(global *GlobalState) error {
	if err := WriteJSON(m.GlobalStatePath(), global); err != nil {
		return err
	}
	m.globalCache = global
	return nil
}

func findProject(global *GlobalState, id string) *ProjectMetadata {
	for i := range global.Projects {
		if global.Projects[i].ID == id {
			return &global.Projects[i]
		}
	}
	return nil
}
