package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ReadJSON reads and parses a JSON document. A missing file is not an
// error — the provided default is returned instead. Any other read or
// parse failure propagates: a malformed document is a hard failure, never
// silently replaced.
func ReadJSON[T any](path string, defaultValue T) (T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultValue, nil
		}
		return defaultValue, fmt.Errorf("reading %s: %w", path, err)
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return defaultValue, fmt.Errorf("parsing %s: %w", path, err)
	}
	return v, nil
}

// WriteJSON marshals data and writes it atomically: the document is
// written to a temporary sibling and renamed into place, so a reader can
// never observe a partially-written file. Parent directories are created
// as needed.
func WriteJSON(path string, data any) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return writeAtomic(path, raw)
}

// WriteText writes a text file with the same temp-then-rename guarantee
// as WriteJSON.
func WriteText(path, content string) error {
	return writeAtomic(path, []byte(content))
}

func writeAtomic(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s into place: %w", tmp, err)
	}
	return nil
}

// EnsureDir creates a directory tree. Idempotent.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether a path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
