// Package validate holds the input guards shared by commands and tools:
// project names, artifact filenames, and the output-directory allow-list.
// Validation failures are always reported as user-facing text by the
// callers, never raised past the command or tool boundary.
package validate

import (
	"fmt"
	"strings"
)

const maxFilenameLen = 128

// OutputDirs is the closed set of per-project subdirectories that
// dojo_save_artifact may write into.
var OutputDirs = []string{"scouts", "specs", "prompts", "retros", "tracks", "artifacts"}

// ProjectName checks a project id: 2-64 characters, lowercase
// alphanumeric plus hyphens, starting with a letter or digit, no
// consecutive hyphens. The id doubles as the on-disk directory name, so
// anything else — including path-traversal strings — is rejected.
func ProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}
	if len(name) < 2 || len(name) > 64 {
		return fmt.Errorf("project name must be 2-64 chars, lowercase alphanumeric + hyphens, start with letter/number")
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '-' && i > 0:
		default:
			return fmt.Errorf("project name must be 2-64 chars, lowercase alphanumeric + hyphens, start with letter/number")
		}
	}
	if strings.Contains(name, "--") {
		return fmt.Errorf("project name cannot contain consecutive hyphens")
	}
	return nil
}

// Filename maps an arbitrary string to a filesystem-safe name: lowercase,
// disallowed characters become hyphens, runs of hyphens collapse, leading
// and trailing hyphens are trimmed, and the result is truncated to 128
// characters. Idempotent: sanitizing a sanitized name is a no-op.
func Filename(input string) string {
	var b strings.Builder
	prevHyphen := false
	for _, r := range strings.ToLower(input) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	s := strings.Trim(b.String(), "-")
	if len(s) > maxFilenameLen {
		s = strings.TrimRight(s[:maxFilenameLen], "-")
	}
	return s
}

// OutputDir reports whether dir is one of the allow-listed artifact
// subdirectories.
func OutputDir(dir string) bool {
	for _, d := range OutputDirs {
		if d == dir {
			return true
		}
	}
	return false
}
