package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/superrepo/todosweep/internal/types"
)

// jsonDocument is the JSON output shape: report metadata plus a flat item
// list with the repository repeated on every row.
type jsonDocument struct {
	Root        string         `json:"root"`
	Repos       []string       `json:"repos"`
	Markers     []string       `json:"markers"`
	Generated   string         `json:"generated_utc,omitempty"`
	Count       int            `json:"count"`
	HasCritical bool           `json:"has_critical"`
	Items       []types.Marker `json:"items"`
}

// WriteJSON renders the report as indented JSON to path. Like the markdown
// output, the file is fully overwritten each run.
func WriteJSON(path string, report *types.Report) error {
	if path == "" {
		return types.ErrNoOutputPath
	}

	doc := jsonDocument{
		Root:        report.Root,
		Repos:       report.Repos,
		Markers:     report.Kinds,
		Count:       report.Total,
		HasCritical: report.HasCritical,
		Items:       []types.Marker{},
	}
	if !report.GeneratedAt.IsZero() {
		doc.Generated = report.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z")
	}
	for _, section := range report.Sections {
		doc.Items = append(doc.Items, section.Markers...)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create json dir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write json report: %w", err)
	}
	return nil
}
