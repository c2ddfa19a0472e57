// Package repos enumerates the sibling repositories under a scan root.
package repos

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/superrepo/todosweep/internal/types"
)

// vcsMarkers are the version-control marker directories that qualify a
// directory as a repository.
var vcsMarkers = []string{".git", ".hg", ".svn"}

// Repo is one enumerated sibling repository.
type Repo struct {
	// Name is the directory name, used as the grouping key in reports.
	Name string

	// Path is the absolute or root-relative path to the repository.
	Path string
}

// IsRepository reports whether dir contains a version-control marker
// directory.
func IsRepository(dir string) bool {
	for _, marker := range vcsMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// List returns the repositories directly under root, sorted by name,
// excluding the directory named self. A missing or unreadable root is a
// hard failure: without it there is nothing to scan. Unreadable or
// non-repository entries below the root are skipped silently.
func List(root, self string) ([]Repo, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrRootNotDirectory, root, err)
	}

	// os.ReadDir returns entries sorted by name, which gives the report
	// its deterministic repository order.
	var repos []Repo
	for _, entry := range entries {
		if !entry.IsDir() || entry.Name() == self {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if !IsRepository(path) {
			continue
		}
		repos = append(repos, Repo{Name: entry.Name(), Path: path})
	}

	return repos, nil
}

// Filter restricts repos to the named subset, preserving order. An empty
// name list returns repos unchanged. Names with no matching repository are
// ignored.
func Filter(repos []Repo, names []string) []Repo {
	if len(names) == 0 {
		return repos
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var out []Repo
	for _, r := range repos {
		if wanted[r.Name] {
			out = append(out, r)
		}
	}
	return out
}
