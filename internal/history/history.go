// Package history maintains a cross-project activity index backed by
// SQLite + FTS5. It mirrors every activity entry the state manager
// records so agents can search past work across all projects. The index
// is a projection: the JSON state documents stay authoritative, and a
// lost or corrupt database only costs search results.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Event is one indexed activity entry.
type Event struct {
	ID        int64  `json:"id"`
	Project   string `json:"project"`
	Action    string `json:"action"`
	Summary   string `json:"summary"`
	CreatedAt string `json:"createdAt"`
}

// Index is the activity search index.
type Index struct {
	db *sql.DB
}

// Open creates the data directory if needed, opens SQLite with WAL mode,
// and runs migrations.
func Open(dataDir string) (*Index, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("history: create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("history: pragma %q: %w", p, err)
		}
	}

	idx := &Index{db: db}
	if err := idx.migrate(); err != nil {
		return nil, fmt.Errorf("history: migration: %w", err)
	}
	return idx, nil
}

// Close closes the underlying database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

func (idx *Index) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			project    TEXT NOT NULL,
			action     TEXT NOT NULL,
			summary    TEXT NOT NULL,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_events_project ON events(project);
		CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS events_fts USING fts5(
			action,
			summary,
			project,
			content='events',
			content_rowid='id'
		);
	`
	if _, err := idx.db.Exec(schema); err != nil {
		return err
	}

	// FTS triggers, created once.
	var name string
	err := idx.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='trigger' AND name='events_fts_insert'",
	).Scan(&name)
	if err == sql.ErrNoRows {
		triggers := `
			CREATE TRIGGER events_fts_insert AFTER INSERT ON events BEGIN
				INSERT INTO events_fts(rowid, action, summary, project)
				VALUES (new.id, new.action, new.summary, new.project);
			END;

			CREATE TRIGGER events_fts_delete AFTER DELETE ON events BEGIN
				INSERT INTO events_fts(events_fts, rowid, action, summary, project)
				VALUES ('delete', old.id, old.action, old.summary, old.project);
			END;
		`
		if _, err := idx.db.Exec(triggers); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return nil
}

// Record indexes one activity entry. It satisfies the state manager's
// Recorder interface.
func (idx *Index) Record(projectID, action, summary, timestamp string) error {
	_, err := idx.db.Exec(
		`INSERT INTO events (project, action, summary, created_at) VALUES (?, ?, ?, ?)`,
		projectID, action, summary, timestamp,
	)
	if err != nil {
		return fmt.Errorf("history: record: %w", err)
	}
	return nil
}

// Search runs an FTS5 query over the index, optionally filtered by
// project. An empty query falls back to the most recent events.
func (idx *Index) Search(query, project string, limit int) ([]Event, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	ftsQuery := sanitizeFTS(query)
	if ftsQuery == "" {
		return idx.recent(project, limit)
	}

	sqlStr := `
		SELECT e.id, e.project, e.action, e.summary, e.created_at
		FROM events_fts fts
		JOIN events e ON e.id = fts.rowid
		WHERE events_fts MATCH ?
	`
	args := []any{ftsQuery}

	if project != "" {
		sqlStr += " AND e.project = ?"
		args = append(args, project)
	}

	sqlStr += " ORDER BY fts.rank LIMIT ?"
	args = append(args, limit)

	rows, err := idx.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("history: search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEvents(rows)
}

func (idx *Index) recent(project string, limit int) ([]Event, error) {
	sqlStr := `SELECT id, project, action, summary, created_at FROM events WHERE 1=1`
	args := []any{}

	if project != "" {
		sqlStr += " AND project = ?"
		args = append(args, project)
	}

	sqlStr += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := idx.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("history: recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Project, &e.Action, &e.Summary, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// sanitizeFTS wraps each word in quotes for safe FTS5 queries.
// "retry queue" becomes `"retry" "queue"`.
func sanitizeFTS(query string) string {
	words := strings.Fields(query)
	for i, w := range words {
		w = strings.Trim(w, `"`)
		words[i] = `"` + w + `"`
	}
	return strings.Join(words, " ")
}
