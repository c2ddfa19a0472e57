// Package types defines the data structures shared across the todosweep
// scan pipeline: markers, report sections, and the rendered report.
package types

import (
	"strconv"
	"strings"
	"time"
)

// Kind is the tag word that introduces a marker.
type Kind string

const (
	// KindTODO marks planned work.
	KindTODO Kind = "TODO"

	// KindFIXME marks something known to be broken or fragile.
	KindFIXME Kind = "FIXME"

	// KindBUG marks a confirmed defect.
	KindBUG Kind = "BUG"
)

// DefaultKinds is the standard set of tags to scan for.
var DefaultKinds = []Kind{KindTODO, KindFIXME, KindBUG}

// ParseKinds converts a comma-separated list (e.g. "TODO,FIXME,BUG")
// into a normalized, deduplicated kind slice. Empty entries are dropped.
func ParseKinds(s string) []Kind {
	var kinds []Kind
	seen := make(map[Kind]bool)
	for _, part := range strings.Split(s, ",") {
		k := Kind(strings.ToUpper(strings.TrimSpace(part)))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		kinds = append(kinds, k)
	}
	return kinds
}

// KindStrings renders a kind slice as plain strings, preserving order.
func KindStrings(kinds []Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// Marker is one discovered TODO-like comment occurrence. Markers are
// immutable value records: after extraction they are only filtered,
// grouped, and rendered, never mutated.
type Marker struct {
	// Repo is the name of the repository the marker was found in.
	Repo string `json:"repo"`

	// File is the path relative to the repository root, forward slashes.
	File string `json:"file"`

	// Line is the 1-based line number of the tag match.
	Line int `json:"line"`

	// Kind is the tag word (TODO, FIXME, BUG, ...).
	Kind Kind `json:"marker"`

	// Tag is the optional parenthesized payload, e.g. "P0" in "TODO(P0): ...".
	Tag string `json:"tag,omitempty"`

	// Text is the remainder of the line after the tag, trimmed.
	// A marker with nothing after the tag keeps an empty Text, it is not dropped.
	Text string `json:"text"`

	// Link is an optional URL pointing at the exact line on the repository's
	// remote host. Empty when no remote is configured or detection is disabled.
	Link string `json:"link,omitempty"`

	// Critical is derived by the classifier on every run, never persisted.
	Critical bool `json:"critical"`
}

// Location renders the marker position as "file:line".
func (m Marker) Location() string {
	return m.File + ":" + strconv.Itoa(m.Line)
}

// Section groups one repository's markers in the rendered report.
type Section struct {
	// Repo is the repository name.
	Repo string `json:"repo"`

	// Markers are sorted by file path, then line, then kind.
	Markers []Marker `json:"markers"`
}

// Critical reports whether any marker in the section is flagged critical.
func (s Section) Critical() bool {
	for _, m := range s.Markers {
		if m.Critical {
			return true
		}
	}
	return false
}

// Report is the aggregated scan result across all repositories.
type Report struct {
	// Root is the scanned root directory.
	Root string `json:"root"`

	// Repos are the names of all enumerated repositories, sorted.
	Repos []string `json:"repos"`

	// Kinds are the tag words that were scanned for.
	Kinds []string `json:"markers"`

	// GeneratedAt is the optional generation timestamp. The zero value
	// means "omit", keeping report output byte-identical across reruns.
	GeneratedAt time.Time `json:"generated_at,omitempty"`

	// Sections are per-repository groups, sorted by repository name.
	Sections []Section `json:"sections"`

	// Total is the number of markers in the report after deduplication.
	Total int `json:"total"`

	// HasCritical is an advisory signal: at least one marker was classified
	// critical. It is never an error condition by itself; callers own the
	// policy of what to do with it.
	HasCritical bool `json:"has_critical"`
}
