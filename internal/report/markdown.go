package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/superrepo/todosweep/internal/types"
)

// MarkdownRenderer renders a Report as a consolidated Markdown dashboard.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a markdown renderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Extension returns the file extension for markdown.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

// templateData holds all data for the markdown template.
type templateData struct {
	Root      string
	Repos     string
	Kinds     string
	Generated string // empty = omitted
	Total     int
	Sections  []sectionData
}

// sectionData is one repository's markers, sub-grouped by kind.
type sectionData struct {
	Repo   string
	Count  int
	Groups []kindGroup
}

// kindGroup is the per-kind subsection within a repository.
type kindGroup struct {
	Kind  types.Kind
	Items []types.Marker
}

// Render writes the report as markdown.
func (r *MarkdownRenderer) Render(w io.Writer, report *types.Report) error {
	tmpl, err := template.New("report").Funcs(r.templateFuncs()).Parse(markdownTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}
	return tmpl.Execute(w, r.buildTemplateData(report))
}

// WriteFile renders the report to path, fully overwriting any previous
// report. The parent directory is created if needed.
func (r *MarkdownRenderer) WriteFile(path string, report *types.Report) error {
	if path == "" {
		return types.ErrNoOutputPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}

	if err := r.Render(f, report); err != nil {
		_ = f.Close() //nolint:errcheck // write already failed
		return fmt.Errorf("render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	return nil
}

// buildTemplateData prepares data for the template.
func (r *MarkdownRenderer) buildTemplateData(report *types.Report) *templateData {
	data := &templateData{
		Root:  report.Root,
		Repos: joinOrNone(report.Repos),
		Kinds: strings.Join(report.Kinds, ", "),
		Total: report.Total,
	}
	if !report.GeneratedAt.IsZero() {
		data.Generated = report.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z")
	}

	for _, section := range report.Sections {
		data.Sections = append(data.Sections, buildSectionData(section))
	}
	return data
}

// buildSectionData sub-groups a section's markers by kind for readability.
// Kinds appear in sorted order; within a kind the section's file/line
// order is preserved.
func buildSectionData(section types.Section) sectionData {
	sd := sectionData{Repo: section.Repo, Count: len(section.Markers)}

	byKind := make(map[types.Kind][]types.Marker)
	var order []types.Kind
	for _, m := range section.Markers {
		if _, ok := byKind[m.Kind]; !ok {
			order = append(order, m.Kind)
		}
		byKind[m.Kind] = append(byKind[m.Kind], m)
	}

	// Sorted kind order keeps the rendering deterministic.
	slices.Sort(order)

	for _, kind := range order {
		sd.Groups = append(sd.Groups, kindGroup{Kind: kind, Items: byKind[kind]})
	}
	return sd
}

// joinOrNone renders a name list, or a placeholder when empty.
func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, ", ")
}

// templateFuncs returns custom template functions.
func (r *MarkdownRenderer) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"location": func(m types.Marker) string {
			if m.Link != "" {
				return fmt.Sprintf("[`%s`](%s)", m.Location(), m.Link)
			}
			return fmt.Sprintf("`%s`", m.Location())
		},
		"display": func(m types.Marker) string {
			if m.Text == "" {
				return string(m.Kind)
			}
			return m.Text
		},
	}
}

const markdownTemplate = `# Consolidated TODOs

- Root scanned: ` + "`{{ .Root }}`" + `
- Repositories: {{ .Repos }}
- Markers: {{ .Kinds }}
{{- if .Generated }}
- Generated: {{ .Generated }}
{{- end }}

**Total items:** {{ .Total }}
{{- if eq .Total 0 }}

> No TODO-like markers found in the scanned repositories.
{{- end }}

{{- range .Sections }}

## {{ .Repo }} ({{ .Count }})
{{- range .Groups }}

### {{ .Kind }} ({{ len .Items }})

{{- range .Items }}
- {{ location . }}{{ if .Tag }} **[{{ .Tag }}]**{{ end }}{{ if .Critical }} **!**{{ end }} — {{ display . }}
{{- end }}
{{- end }}
{{- end }}
`
