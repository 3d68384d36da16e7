package tabular

import "testing"

func TestReheaderColumnNaming(t *testing.T) {
	raw := &RawTable{Rows: [][]string{
		{"Item No.", "", "Price", "Price", "Price"},
		{"1", "x", "10", "11", "12"},
	}}

	table := Reheader(raw, 0, -1)

	want := []string{"Item No.", "Unnamed: 1", "Price", "Price.1", "Price.2"}
	if table.NumCols() != len(want) {
		t.Fatalf("NumCols = %d, want %d", table.NumCols(), len(want))
	}
	for i, name := range want {
		if table.Columns[i].Name != name {
			t.Errorf("column %d = %q, want %q", i, table.Columns[i].Name, name)
		}
	}
}

func TestReheaderWidthFromWidestRow(t *testing.T) {
	raw := &RawTable{Rows: [][]string{
		{"A", "B"},
		{"1", "2", "3", "4"},
	}}

	table := Reheader(raw, 0, -1)
	if table.NumCols() != 4 {
		t.Fatalf("NumCols = %d, want widest-row width 4", table.NumCols())
	}
	if table.Columns[3].Name != "Unnamed: 3" {
		t.Errorf("column 3 = %q, want generated placeholder", table.Columns[3].Name)
	}
	if table.Cell(0, 3) != "4" {
		t.Errorf("Cell(0,3) = %q, want 4", table.Cell(0, 3))
	}
}

func TestReheaderSubValues(t *testing.T) {
	raw := &RawTable{Rows: [][]string{
		{"Item No.", "Measurement(cm)-1", "", ""},
		{"", "L", "W", "H"},
		{"1", "55", "40", "60"},
	}}

	table := Reheader(raw, 0, 1)

	if table.SubValue(1) != "L" || table.SubValue(3) != "H" {
		t.Errorf("sub values = %v, want L/W/H from row 1", table.SubValues)
	}
	if table.SubValue(99) != "" {
		t.Error("out-of-range sub value must be empty")
	}

	// The sub-header row stays part of the data rows.
	if table.NumRows() != 2 {
		t.Errorf("NumRows = %d, want 2 (sub-header row included)", table.NumRows())
	}
}

func TestRawTableCellRaggedRows(t *testing.T) {
	raw := &RawTable{Rows: [][]string{
		{"a", " b "},
		{"c"},
	}}

	if raw.Cell(0, 1) != "b" {
		t.Errorf("Cell(0,1) = %q, want trimmed b", raw.Cell(0, 1))
	}
	if raw.Cell(1, 1) != "" {
		t.Error("short row must read as empty cells")
	}
	if raw.Cell(5, 0) != "" || raw.Cell(-1, 0) != "" {
		t.Error("out-of-range rows must read as empty cells")
	}
}

func TestRowText(t *testing.T) {
	raw := &RawTable{Rows: [][]string{
		{"", "Item No.", "", "Price", ""},
	}}
	if got := raw.RowText(0); got != "Item No. Price" {
		t.Errorf("RowText = %q, want non-empty cells joined", got)
	}
	if raw.RowText(3) != "" {
		t.Error("out-of-range row text must be empty")
	}
}

func TestIsPlaceholderName(t *testing.T) {
	if !IsPlaceholderName("Unnamed: 7") || !IsPlaceholderName("unnamed: 0") {
		t.Error("generated names must be recognized as placeholders")
	}
	if IsPlaceholderName("Item No.") {
		t.Error("real header names are not placeholders")
	}
}
