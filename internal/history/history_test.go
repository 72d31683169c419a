package history

import (
	"testing"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}

func TestOpen_IsIdempotent(t *testing.T) {
	dir := t.TempDir()
	idx, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if err := idx.Record("alpha", "command:init", "Project created", "2026-02-12T09:00:00Z"); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := idx.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Re-opening an existing database re-runs migrations without loss.
	idx2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer func() { _ = idx2.Close() }()

	events, err := idx2.Search("", "", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(events) != 1 || events[0].Summary != "Project created" {
		t.Errorf("events after reopen = %+v", events)
	}
}

func TestSearch_FullText(t *testing.T) {
	idx := openTestIndex(t)

	seed := []struct{ project, action, summary, at string }{
		{"alpha", "skill:strategic-scout", "strategic-scout completed", "2026-02-12T09:00:00Z"},
		{"alpha", "artifact:scouts", "Saved scout-report-md to scouts/", "2026-02-12T09:05:00Z"},
		{"beta", "skill:retrospective", "retrospective completed", "2026-02-13T11:00:00Z"},
	}
	for _, e := range seed {
		if err := idx.Record(e.project, e.action, e.summary, e.at); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	events, err := idx.Search("retrospective", "", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(events) != 1 || events[0].Project != "beta" {
		t.Errorf("search results = %+v", events)
	}

	// Project filter narrows a broader match.
	events, err = idx.Search("completed", "alpha", 10)
	if err != nil {
		t.Fatalf("filtered Search failed: %v", err)
	}
	if len(events) != 1 || events[0].Action != "skill:strategic-scout" {
		t.Errorf("filtered results = %+v", events)
	}

	// No match.
	events, err = idx.Search("zeppelin", "", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("unexpected matches = %+v", events)
	}
}

func TestSearch_EmptyQueryReturnsRecent(t *testing.T) {
	idx := openTestIndex(t)

	for i, at := range []string{"2026-02-10T09:00:00Z", "2026-02-11T09:00:00Z", "2026-02-12T09:00:00Z"} {
		if err := idx.Record("alpha", "test", string(rune('a'+i)), at); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	events, err := idx.Search("", "", 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Summary != "c" || events[1].Summary != "b" {
		t.Errorf("recent order wrong: %+v", events)
	}
}

func TestSanitizeFTS(t *testing.T) {
	tests := []struct{ in, want string }{
		{"retry queue", `"retry" "queue"`},
		{`"quoted"`, `"quoted"`},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := sanitizeFTS(tt.in); got != tt.want {
			t.Errorf("sanitizeFTS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
