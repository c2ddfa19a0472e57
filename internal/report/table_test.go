package report

import (
	"bytes"
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, "NAME", "PATH")
	table.AddRow("api", "../api")
	table.AddRow("frontend") // missing cell filled with empty string
	if err := table.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "api") || !strings.Contains(lines[1], "../api") {
		t.Errorf("row = %q", lines[1])
	}
}

func TestTableExtraValuesIgnored(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, "ONLY")
	table.AddRow("kept", "dropped")
	if err := table.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "dropped") {
		t.Errorf("extra cell should be ignored:\n%s", buf.String())
	}
}
