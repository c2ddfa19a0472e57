// Package walker enumerates the text files of a repository that are worth
// scanning, applying directory denylists, extension allowlists, a size
// ceiling, and a binary-content sniff.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Default limits for the sniff and size checks.
const (
	// DefaultMaxFileSize is the per-file size ceiling. Files above it are
	// skipped so the scan never drowns in large data or binary blobs.
	DefaultMaxFileSize = 1 << 20

	// sniffSize is how many leading bytes the binary sniff inspects.
	sniffSize = 1024
)

// DefaultExcludeDirs are directory names pruned from every walk:
// version-control internals plus common dependency and build output dirs.
var DefaultExcludeDirs = []string{
	".git", ".hg", ".svn", ".idea", ".vscode",
	"node_modules", "dist", "build", "out", "target", "__pycache__", ".venv", "venv",
	".next", ".turbo", ".tox", ".mypy_cache", ".pytest_cache",
}

// DefaultIncludeExts are the file extensions included in a scan. The bare
// name "dockerfile" is matched by lowercased basename for extensionless
// Dockerfiles.
var DefaultIncludeExts = []string{
	".py", ".kt", ".java", ".go", ".ts", ".tsx", ".js", ".jsx",
	".rb", ".rs", ".c", ".h", ".cpp", ".hpp", ".cs",
	".yaml", ".yml", ".json", ".sh", ".bash", ".zsh",
	".md", ".txt", ".toml", ".ini", ".tf", ".tfvars", ".dockerfile", "dockerfile",
}

// Policy is the immutable filtering configuration for a walk.
type Policy struct {
	excludeDirs map[string]bool
	includeExts map[string]bool
	maxFileSize int64
}

// NewPolicy builds a policy from directory denylist, extension allowlist,
// and a size ceiling. Nil slices fall back to the defaults; maxFileSize <= 0
// falls back to DefaultMaxFileSize. Extra exclusions extend the defaults
// rather than replacing them.
func NewPolicy(extraExcludeDirs, includeExts []string, maxFileSize int64) Policy {
	excluded := make(map[string]bool)
	for _, d := range DefaultExcludeDirs {
		excluded[d] = true
	}
	for _, d := range extraExcludeDirs {
		if d = strings.TrimSpace(d); d != "" {
			excluded[d] = true
		}
	}

	if len(includeExts) == 0 {
		includeExts = DefaultIncludeExts
	}
	included := make(map[string]bool, len(includeExts))
	for _, e := range includeExts {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			included[e] = true
		}
	}

	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	return Policy{
		excludeDirs: excluded,
		includeExts: included,
		maxFileSize: maxFileSize,
	}
}

// DefaultPolicy returns the policy with all defaults.
func DefaultPolicy() Policy {
	return NewPolicy(nil, nil, 0)
}

// skipDir reports whether a directory should be pruned. Hidden directories
// are always pruned in addition to the denylist.
func (p Policy) skipDir(name string) bool {
	if p.excludeDirs[name] {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "."
}

// includeFile reports whether a file name passes the extension allowlist.
// Extensionless files are matched by their lowercased basename.
func (p Policy) includeFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = strings.ToLower(name)
	}
	return p.includeExts[ext]
}

// Files walks root and returns the repository-relative, slash-separated
// paths of every scannable file, in deterministic lexicographic order
// (fs.WalkDir visits entries in sorted order). Per-entry errors, oversized
// files, and binary files are skipped silently; the walk never aborts for
// them. Only a completely unreadable root returns an error.
func Files(root string, policy Policy) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // unreadable entry: skip and continue
		}

		if d.IsDir() {
			if path != root && policy.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !policy.includeFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > policy.maxFileSize {
			return nil
		}

		if looksBinary(path) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// looksBinary sniffs the first bytes of a file for content that is not
// decodable as text. A NUL byte or any control byte outside the usual
// text set marks the file binary. Unreadable files are treated as binary
// so the walk skips them instead of failing.
func looksBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer func() {
		_ = f.Close() //nolint:errcheck // read-only, close best-effort
	}()

	buf := make([]byte, sniffSize)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return true
	}

	for _, b := range buf[:n] {
		if b == 0 {
			return true
		}
		if b < 0x20 && !isTextControl(b) {
			return true
		}
	}
	return false
}

// isTextControl reports whether a control byte is acceptable in text
// (bell, backspace, tab, newline, form feed, carriage return, escape).
func isTextControl(b byte) bool {
	switch b {
	case 7, 8, 9, 10, 12, 13, 27:
		return true
	}
	return false
}
