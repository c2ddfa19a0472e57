// Package extract finds TODO-like markers in text and classifies their
// criticality.
//
// Extraction is a heuristic line scan, not a language parser: a tag word
// found anywhere on a line counts, whether or not it sits inside a real
// comment for the file's language. A tag appearing inside a quoted string
// literal is extracted like any other. That is a known, accepted limitation;
// per-language comment grammars are deliberately out of scope.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/superrepo/todosweep/internal/types"
)

// Extractor scans lines for a fixed set of marker tags.
type Extractor struct {
	kinds   map[types.Kind]bool
	pattern *regexp.Regexp
}

// NewExtractor compiles the scan pattern for the given tag set.
// The tag must match as a whole word: "TODOLIST" never matches "TODO".
// An optional parenthesized payload ("TODO(P0): ...") and an optional
// colon/dash separator are consumed before the free text.
func NewExtractor(kinds []types.Kind) (*Extractor, error) {
	if len(kinds) == 0 {
		kinds = types.DefaultKinds
	}

	set := make(map[types.Kind]bool, len(kinds))
	words := make([]string, 0, len(kinds))
	for _, k := range kinds {
		set[k] = true
		words = append(words, regexp.QuoteMeta(string(k)))
	}

	// Boundary before the tag is "start of line or non-word rune" so that
	// "MYTODO" does not match; \b after the tag rejects "TODOLIST".
	expr := `(?i)(?:^|[^0-9A-Za-z_])(` + strings.Join(words, "|") + `)\b` +
		`(?:\s*\(\s*([^)]+)\s*\)\s*[:\-]?\s*|\s*[:\-]\s*|\s+)?(.*)$`
	pattern, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile marker pattern: %w", err)
	}

	return &Extractor{kinds: set, pattern: pattern}, nil
}

// ScanLine returns the marker found on a single physical line, if any.
// The returned marker carries only Kind, Tag, and Text; position fields
// are the caller's to fill. Exactly one marker per line is reported:
// continuation lines are never joined, and only the first tag on a line
// is honored.
func (e *Extractor) ScanLine(line string) (types.Marker, bool) {
	m := e.pattern.FindStringSubmatch(line)
	if m == nil {
		return types.Marker{}, false
	}

	kind := types.Kind(strings.ToUpper(m[1]))
	if !e.kinds[kind] {
		return types.Marker{}, false
	}

	return types.Marker{
		Kind: kind,
		Tag:  strings.TrimSpace(m[2]),
		Text: strings.TrimSpace(m[3]),
	}, true
}

// Scan reads r line by line and returns all markers found, with 1-based
// line numbers filled in. The reader is consumed fully; a scanner error
// (e.g. a pathological line longer than the buffer) is returned with any
// markers found before it.
func (e *Extractor) Scan(r io.Reader) ([]types.Marker, error) {
	var markers []types.Marker

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		m, ok := e.ScanLine(scanner.Text())
		if !ok {
			continue
		}
		m.Line = line
		markers = append(markers, m)
	}

	if err := scanner.Err(); err != nil {
		return markers, fmt.Errorf("scan lines: %w", err)
	}
	return markers, nil
}
