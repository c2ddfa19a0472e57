// Package report aggregates extracted markers into a deterministic report
// and renders it as Markdown, JSON, or a console table.
package report

import (
	"cmp"
	"slices"

	"github.com/superrepo/todosweep/internal/types"
)

// dedupKey identifies a marker occurrence for deduplication. Including
// Text defends against a file reached twice (e.g. via a symlink) while
// still keeping two different markers on the same line distinct.
type dedupKey struct {
	repo string
	file string
	line int
	kind types.Kind
	text string
}

// Aggregate deduplicates and groups markers into a Report. Sections are
// sorted by repository name; markers within a section by file path, then
// line, then kind. The sort runs unconditionally, so the result never
// depends on the order markers arrive in; parallel scans and shuffled
// walk orders produce byte-identical reports.
func Aggregate(root string, repoNames []string, kinds []types.Kind, markers []types.Marker) *types.Report {
	seen := make(map[dedupKey]bool, len(markers))
	byRepo := make(map[string][]types.Marker)

	for _, m := range markers {
		key := dedupKey{repo: m.Repo, file: m.File, line: m.Line, kind: m.Kind, text: m.Text}
		if seen[key] {
			continue
		}
		seen[key] = true
		byRepo[m.Repo] = append(byRepo[m.Repo], m)
	}

	repoOrder := make([]string, 0, len(byRepo))
	for repo := range byRepo {
		repoOrder = append(repoOrder, repo)
	}
	slices.Sort(repoOrder)

	report := &types.Report{
		Root:  root,
		Repos: repoNames,
		Kinds: types.KindStrings(kinds),
	}

	for _, repo := range repoOrder {
		section := types.Section{Repo: repo, Markers: byRepo[repo]}
		slices.SortFunc(section.Markers, compareMarkers)
		report.Sections = append(report.Sections, section)
		report.Total += len(section.Markers)
		if section.Critical() {
			report.HasCritical = true
		}
	}

	return report
}

// compareMarkers orders markers within a section: file path, then line,
// then kind, then text as the final tiebreak.
func compareMarkers(a, b types.Marker) int {
	if c := cmp.Compare(a.File, b.File); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Line, b.Line); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.Text, b.Text)
}
