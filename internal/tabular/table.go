// Package tabular turns raw catalog exports (CSV or XLSX bytes) into a
// uniform in-memory table. It knows nothing about the target schema; it only
// deals with rows, cells and column naming.
package tabular

import (
	"fmt"
	"strings"
)

// RawTable is the unlabeled table exactly as parsed from the source: ordered
// rows of ordered string cells, possibly ragged. It is read-only after
// parsing.
type RawTable struct {
	Rows [][]string
}

// NumRows returns the number of rows in the table.
func (t *RawTable) NumRows() int {
	return len(t.Rows)
}

// Cell returns the trimmed cell value at (row, col), or "" when the position
// is out of range. Ragged rows are treated as padded with empty cells.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// RowText concatenates all non-empty cells of a row with single spaces.
// The header locator matches marker text against this.
func (t *RawTable) RowText(row int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	parts := make([]string, 0, len(t.Rows[row]))
	for _, cell := range t.Rows[row] {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			parts = append(parts, cell)
		}
	}
	return strings.Join(parts, " ")
}

// Column is a raw column identity: its position and the name derived from
// the header row.
type Column struct {
	Index int
	Name  string
}

// Table is a RawTable re-read with a known header row. Rows holds everything
// below the header row, sub-header row included; the Row Builder's data-row
// check is what skips non-data rows. SubValues holds the sub-header label of
// each column ("" when the table has no sub-header row).
type Table struct {
	Columns   []Column
	Rows      [][]string
	SubValues []string
}

// Reheader derives column names from headerRow and returns the table of all
// rows below it. Unlabeled columns get a generated placeholder name and
// duplicates get a numeric suffix, so every column name is unique.
// subheaderRow < 0 means the table has no sub-header row.
func Reheader(raw *RawTable, headerRow, subheaderRow int) *Table {
	width := 0
	for _, r := range raw.Rows {
		if len(r) > width {
			width = len(r)
		}
	}

	seen := make(map[string]int, width)
	columns := make([]Column, width)
	for i := 0; i < width; i++ {
		name := raw.Cell(headerRow, i)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		} else if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		}
		if _, dup := seen[name]; !dup {
			seen[name] = 1
		}
		columns[i] = Column{Index: i, Name: name}
	}

	subValues := make([]string, width)
	if subheaderRow >= 0 {
		for i := 0; i < width; i++ {
			subValues[i] = raw.Cell(subheaderRow, i)
		}
	}

	var rows [][]string
	if headerRow+1 < len(raw.Rows) {
		rows = raw.Rows[headerRow+1:]
	}

	return &Table{Columns: columns, Rows: rows, SubValues: subValues}
}

// NumCols returns the column count.
func (t *Table) NumCols() int {
	return len(t.Columns)
}

// NumRows returns the count of rows below the header.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Cell returns the trimmed cell at (row, col) of the re-headered table,
// or "" when out of range.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// SubValue returns the sub-header label of a column, "" when absent.
func (t *Table) SubValue(col int) string {
	if col < 0 || col >= len(t.SubValues) {
		return ""
	}
	return t.SubValues[col]
}

// IsPlaceholderName reports whether a column name was generated for an
// unlabeled column rather than read from the header row.
func IsPlaceholderName(name string) bool {
	return strings.Contains(strings.ToLower(name), "unnamed")
}
