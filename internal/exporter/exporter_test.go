package exporter

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/xuri/excelize/v2"

	"catalog-extract/internal/config"
	"catalog-extract/internal/model"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Output: config.OutputConfig{Dir: t.TempDir(), FileName: "catalog-test"}}
}

func sampleRecords() []model.Record {
	return []model.Record{
		{
			"Item No.":             1,
			"Description of Goods": "Folding chair",
			"Product size":         map[string]any{"(CM)": "120*40*75cm"},
			"Measurement(cm)-1":    map[string]any{"L": 55, "W": 40, "H": 60},
			"Unit Price":           12.5,
			"Discount":             "-5%",
		},
		{
			"Item No.":             2,
			"Description of Goods": "Side table",
			"Unit Price":           30.0,
			"Discount":             "10%",
		},
	}
}

func TestGetExporters(t *testing.T) {
	exporters := GetExporters([]string{"excel", "JSON", " xlsx ", "bogus", "json"})
	// excel and xlsx are the same exporter but registered per format name;
	// duplicates of the exact same name are dropped.
	if len(exporters) != 3 {
		t.Errorf("got %d exporters, want 3", len(exporters))
	}
	if len(GetExporters([]string{"bogus"})) != 0 {
		t.Error("unknown formats must yield no exporters")
	}
}

func TestJSONExport(t *testing.T) {
	cfg := testConfig(t)
	if err := NewJSONExporter().Export(sampleRecords(), cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(cfg.GetOutputPath(".json"))
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}

	var records []model.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0]["Description of Goods"] != "Folding chair" {
		t.Errorf("Description of Goods = %v", records[0]["Description of Goods"])
	}
	if records[0].Group("Measurement(cm)-1")["L"] != float64(55) {
		t.Errorf("nested group did not round-trip: %v", records[0]["Measurement(cm)-1"])
	}
}

func TestExcelExport(t *testing.T) {
	cfg := testConfig(t)
	if err := NewExcelExporter().Export(sampleRecords(), cfg); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := excelize.OpenFile(cfg.GetOutputPath(".xlsx"))
	if err != nil {
		t.Fatalf("output workbook not readable: %v", err)
	}
	defer f.Close()

	sheet := "Catalog"

	// Two-row header: scalar headers on row 1, group sub-headers on row 2.
	checks := map[string]string{
		"A1": "Item No.",
		"E1": "Product size",
		"E2": "(CM)",
		"G1": "Measurement(cm)-1",
		"G2": "L",
		"H2": "W",
		"I2": "H",
		"N2": "20FT",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(sheet, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}

	// First data row lands on row 3.
	if got, _ := f.GetCellValue(sheet, "A3"); got != "1" {
		t.Errorf("A3 = %q, want 1", got)
	}
	if got, _ := f.GetCellValue(sheet, "G3"); got != "55" {
		t.Errorf("G3 = %q, want 55", got)
	}
	if got, _ := f.GetCellValue(sheet, "A4"); got != "2" {
		t.Errorf("A4 = %q, want 2", got)
	}

	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		t.Fatalf("GetMergeCells: %v", err)
	}
	if len(merged) == 0 {
		t.Error("header rows must contain merged cells")
	}
}
