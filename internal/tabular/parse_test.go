package tabular

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseCSVRaggedRows(t *testing.T) {
	text := "Item No.,Description,Price\n1,Chair\n2,\"Table, round\",30,extra\n"

	table, err := ParseCSV(text)
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if table.NumRows() != 3 {
		t.Fatalf("NumRows = %d, want 3", table.NumRows())
	}
	if table.Cell(2, 1) != "Table, round" {
		t.Errorf("quoted cell = %q", table.Cell(2, 1))
	}
	if table.Cell(1, 2) != "" {
		t.Error("short row must read as empty cells")
	}
}

func TestParseCSVLazyQuotes(t *testing.T) {
	// A stray quote inside a field must not abort the parse.
	text := "Item No.,Note\n1,40\" TV stand\n"

	table, err := ParseCSV(text)
	if err != nil {
		t.Fatalf("ParseCSV failed on stray quote: %v", err)
	}
	if table.NumRows() != 2 {
		t.Errorf("NumRows = %d, want 2", table.NumRows())
	}
}

func TestLooksLikeXLSX(t *testing.T) {
	zipBytes := []byte{'P', 'K', 0x03, 0x04, 0x00}
	if !LooksLikeXLSX("https://example.com/file.csv", zipBytes) {
		t.Error("ZIP magic bytes must be detected regardless of extension")
	}
	if !LooksLikeXLSX("https://example.com/path/catalog.XLSX?sig=abc", []byte("a,b")) {
		t.Error(".xlsx URL extension must be detected case-insensitively")
	}
	if LooksLikeXLSX("https://example.com/file.csv", []byte("a,b\n1,2")) {
		t.Error("plain CSV must not be treated as a workbook")
	}
}

func TestParseXLSXRoundTrip(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "Item No.")
	f.SetCellValue(sheet, "B1", "Price")
	f.SetCellValue(sheet, "A2", 1)
	f.SetCellValue(sheet, "B2", 12.5)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("failed to build workbook: %v", err)
	}
	f.Close()

	table, err := Parse("https://example.com/catalog.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if table.Cell(0, 0) != "Item No." {
		t.Errorf("Cell(0,0) = %q", table.Cell(0, 0))
	}
	if table.Cell(1, 1) != "12.5" {
		t.Errorf("Cell(1,1) = %q, want 12.5", table.Cell(1, 1))
	}
}
