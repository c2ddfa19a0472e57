package extract

import (
	"strings"
	"testing"

	"github.com/superrepo/todosweep/internal/types"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := NewExtractor(types.DefaultKinds)
	if err != nil {
		t.Fatalf("NewExtractor: %v", err)
	}
	return e
}

func TestScanLineBasic(t *testing.T) {
	e := newTestExtractor(t)

	m, ok := e.ScanLine("// TODO: refactor")
	if !ok {
		t.Fatal("expected a marker")
	}
	if m.Kind != types.KindTODO {
		t.Errorf("Kind = %q, want TODO", m.Kind)
	}
	if m.Text != "refactor" {
		t.Errorf("Text = %q, want %q", m.Text, "refactor")
	}
}

func TestScanLineWholeWordBoundary(t *testing.T) {
	e := newTestExtractor(t)

	if _, ok := e.ScanLine("TODOLIST: refactor"); ok {
		t.Error("TODOLIST must not match TODO")
	}
	if _, ok := e.ScanLine("# see MYTODO for details"); ok {
		t.Error("MYTODO must not match TODO")
	}
	if _, ok := e.ScanLine("TODO: refactor"); !ok {
		t.Error("TODO at line start must match")
	}
	if _, ok := e.ScanLine("x = 1  # FIXME broken"); !ok {
		t.Error("FIXME after code must match")
	}
}

func TestScanLineTagPayload(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		line string
		tag  string
		text string
	}{
		{"// TODO(P0): drop the old index", "P0", "drop the old index"},
		{"// TODO(@sam): review", "@sam", "review"},
		{"# FIXME(#123) flaky on CI", "#123", "flaky on CI"},
		{"// BUG - crashes on empty input", "", "crashes on empty input"},
	}
	for _, tt := range tests {
		m, ok := e.ScanLine(tt.line)
		if !ok {
			t.Errorf("ScanLine(%q): no marker", tt.line)
			continue
		}
		if m.Tag != tt.tag {
			t.Errorf("ScanLine(%q) Tag = %q, want %q", tt.line, m.Tag, tt.tag)
		}
		if m.Text != tt.text {
			t.Errorf("ScanLine(%q) Text = %q, want %q", tt.line, m.Text, tt.text)
		}
	}
}

func TestScanLineCaseInsensitive(t *testing.T) {
	e := newTestExtractor(t)

	m, ok := e.ScanLine("// todo: lowercase tag")
	if !ok {
		t.Fatal("lowercase tag must match")
	}
	if m.Kind != types.KindTODO {
		t.Errorf("Kind = %q, want normalized TODO", m.Kind)
	}
}

func TestScanLineEmptyText(t *testing.T) {
	e := newTestExtractor(t)

	m, ok := e.ScanLine("// TODO")
	if !ok {
		t.Fatal("a bare tag is still a marker, not dropped")
	}
	if m.Text != "" {
		t.Errorf("Text = %q, want empty", m.Text)
	}
}

func TestScanLineUnknownKind(t *testing.T) {
	e, err := NewExtractor([]types.Kind{types.KindTODO})
	if err != nil {
		t.Fatalf("NewExtractor: %v", err)
	}
	if _, ok := e.ScanLine("// FIXME: not scanned for"); ok {
		t.Error("FIXME must not match when only TODO is configured")
	}
}

func TestScanLineNumbersAndOnePerLine(t *testing.T) {
	e := newTestExtractor(t)

	input := strings.Join([]string{
		"package main",
		"// TODO: first",
		"//   continued free text without a new tag",
		"// FIXME: second",
		"// TODO see also BUG in the tracker",
	}, "\n")

	markers, err := e.Scan(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(markers) != 3 {
		t.Fatalf("got %d markers, want 3", len(markers))
	}

	if markers[0].Line != 2 || markers[0].Kind != types.KindTODO {
		t.Errorf("markers[0] = %+v, want TODO on line 2", markers[0])
	}
	if markers[1].Line != 4 || markers[1].Kind != types.KindFIXME {
		t.Errorf("markers[1] = %+v, want FIXME on line 4", markers[1])
	}
	// Continuation lines are not joined; line 3 yields nothing.
	// Only the first tag on line 5 is honored.
	if markers[2].Line != 5 || markers[2].Kind != types.KindTODO {
		t.Errorf("markers[2] = %+v, want TODO on line 5", markers[2])
	}
}

func TestScanEmptyInput(t *testing.T) {
	e := newTestExtractor(t)

	markers, err := e.Scan(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(markers) != 0 {
		t.Errorf("got %d markers from empty input, want 0", len(markers))
	}
}
