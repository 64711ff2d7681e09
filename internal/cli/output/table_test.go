package output

import (
	"bytes"
	"strings"
	"testing"
)

// ============================================================
// TableFormatter
// ============================================================

func TestTableFormatter_Format_Table(t *testing.T) {
	f := &TableFormatter{}

	table := &Table{
		Headers: []string{"#", "VALUE"},
		Rows: [][]string{
			{"1", "alpha"},
			{"2", "beta"},
		},
	}

	var buf bytes.Buffer
	if err := f.Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Format() produced %d lines, want 3:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "#") || !strings.Contains(lines[0], "VALUE") {
		t.Errorf("header line = %q, want # and VALUE", lines[0])
	}
	if !strings.Contains(lines[1], "alpha") || !strings.Contains(lines[2], "beta") {
		t.Errorf("rows missing values:\n%s", out)
	}
}

func TestTableFormatter_Format_TableValue(t *testing.T) {
	f := &TableFormatter{}

	table := Table{Headers: []string{"KEY"}}
	table.AddRow("greeting")

	var buf bytes.Buffer
	if err := f.Format(&buf, table); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "greeting") {
		t.Errorf("Format() = %q, want row greeting", buf.String())
	}
}

func TestTableFormatter_Format_Nil(t *testing.T) {
	f := &TableFormatter{}

	var buf bytes.Buffer
	if err := f.Format(&buf, nil); err != nil {
		t.Fatalf("Format(nil) error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Format(nil) wrote %q, want nothing", buf.String())
	}
}

func TestTableFormatter_Format_FallbackToJSON(t *testing.T) {
	f := &TableFormatter{}

	var buf bytes.Buffer
	if err := f.Format(&buf, map[string]int{"keys": 3}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"keys": 3`) {
		t.Errorf("Format() = %q, want JSON fallback", buf.String())
	}
}

// ============================================================
// Table
// ============================================================

func TestTable_Render(t *testing.T) {
	table := &Table{}
	table.SetHeaders("NAME", "SIZE")
	table.AddRow("a", "1")
	table.AddRow("bbbb", "22")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Render() produced %d lines, want 3", len(lines))
	}

	// tabwriter aligns the second column across all lines.
	col := strings.Index(lines[1], "1")
	if col < 0 || strings.Index(lines[2], "22") != col {
		t.Errorf("columns not aligned:\n%s", buf.String())
	}
}

func TestTable_Render_NoHeaders(t *testing.T) {
	table := &Table{}
	table.AddRow("only", "row")

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 1 {
		t.Errorf("Render() produced %d lines, want 1 (no header)", len(lines))
	}
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}

	var buf bytes.Buffer
	if err := table.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Render() of empty table wrote %q", buf.String())
	}
}

func TestTable_AddRow(t *testing.T) {
	table := &Table{}
	table.AddRow("a", "b")
	table.AddRow("c")

	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if len(table.Rows[0]) != 2 || len(table.Rows[1]) != 1 {
		t.Error("AddRow did not preserve cell counts")
	}
}
