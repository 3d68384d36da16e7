package extract

import (
	"reflect"
	"testing"

	"catalog-extract/internal/model"
	"catalog-extract/internal/tabular"
)

// catalogSample mimics the real layout family: title rows above the header,
// a sub-header row labeling unnamed dimension columns, data rows, a footer.
func catalogSample() *tabular.RawTable {
	return &tabular.RawTable{Rows: [][]string{
		{"ACME Houseware Catalog 2026"},
		{""},
		{"Item No.", "Photo", "Description of Goods", "Material", "Product size", "Qty/ctn", "Measurement(cm)-1", "", "", "Unit Price", "Discount"},
		{"", "", "", "", "(CM)", "", "L", "W", "H", "", ""},
		{"1", "", "Folding chair", "Steel", "120*40*75cm", "24", "55", "40", "60", "$12.50", "-5"},
		{"2", "", "Side table", "40", "", "12", "", "", "", "$30", "10%"},
		{"Remark: all prices FOB Ningbo", "", "", "", "", "", "", "", "", "", ""},
	}}
}

func TestExtractEndToEnd(t *testing.T) {
	records := Extract(catalogSample(), specWith(model.ExpectedFields...), DefaultOptions())

	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	first, second := records[0], records[1]

	if first["Item No."] != 1 {
		t.Errorf("Item No. = %v (%T), want coerced 1", first["Item No."], first["Item No."])
	}
	if first["Description of Goods"] != "Folding chair" {
		t.Errorf("Description of Goods = %v", first["Description of Goods"])
	}
	if first["Unit Price"] != 12.5 {
		t.Errorf("Unit Price = %v, want currency-coerced 12.5", first["Unit Price"])
	}

	size := first.Group("Product size")
	if size == nil || size["(CM)"] != "120*40*75cm" {
		t.Errorf("Product size = %v, want nested raw text", first["Product size"])
	}

	// The unnamed L/W/H columns next to the labeled measurement column must
	// land in the primary measurement group.
	wantM1 := map[string]any{"L": 55, "W": 40, "H": 60}
	if got := first.Group("Measurement(cm)-1"); !reflect.DeepEqual(got, wantM1) {
		t.Errorf("Measurement(cm)-1 = %v, want %v", got, wantM1)
	}

	if first["Discount"] != "-5%" {
		t.Errorf("Discount = %v, want -5%%", first["Discount"])
	}
	if second["Discount"] != "10%" {
		t.Errorf("Discount = %v, want 10%%", second["Discount"])
	}

	// Numeric material code on the second row reads back as text.
	if second["Material"] != "40" {
		t.Errorf("Material = %v (%T), want stringified code", second["Material"], second["Material"])
	}
}

// Every extracted record carries the full expected-field shape, whatever the
// input was missing.
func TestExtractCompletesSchema(t *testing.T) {
	records := Extract(catalogSample(), specWith(model.ExpectedFields...), DefaultOptions())

	for i, rec := range records {
		for _, field := range model.ExpectedFields {
			v, ok := rec[field]
			if !ok {
				t.Errorf("record %d missing field %q", i, field)
				continue
			}
			if model.IsGroupField(field) {
				if _, nested := v.(map[string]any); !nested {
					t.Errorf("record %d field %q = %v, want nested group", i, field, v)
				}
			}
		}
	}
}

func TestExtractAppliesConfiguredPatches(t *testing.T) {
	opts := DefaultOptions()
	opts.SourceURL = "https://bucket.s3.us-east-2.amazonaws.com/import-excel/catalog.csv"
	opts.Patches = []Patch{{
		URLContains: "import-excel/",
		Discounts:   []DiscountOverride{{Items: []string{"1"}, Discount: "-1%"}},
	}}

	records := Extract(catalogSample(), specWith(model.ExpectedFields...), opts)

	if records[0]["Discount"] != "-1%" {
		t.Errorf("Discount = %v, want patched -1%%", records[0]["Discount"])
	}
	if records[1]["Discount"] != "10%" {
		t.Errorf("Discount = %v, want untouched 10%%", records[1]["Discount"])
	}
}

// A container-labeled quantity column keeps its value nested even when it is
// the only container column on the sheet.
func TestExtractNestsLabeledQuantityColumn(t *testing.T) {
	raw := &tabular.RawTable{Rows: [][]string{
		{"Item No.", "Qty/ctn", "Quantity (pc)"},
		{"", "", "20FT"},
		{"1", "24", "100"},
	}}

	records := Extract(raw, specWith(model.ExpectedFields...), DefaultOptions())
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	group := records[0].Group("Quantity (pc)")
	if group == nil {
		t.Fatalf("Quantity (pc) = %v (%T), want nested mapping",
			records[0]["Quantity (pc)"], records[0]["Quantity (pc)"])
	}
	if group["20FT"] != 100 {
		t.Errorf("20FT = %v, want 100", group["20FT"])
	}
	for _, key := range []string{"40'GP", "40'HQ"} {
		if v, ok := group[key]; !ok || v != nil {
			t.Errorf("%s = %v (present=%v), want nil placeholder", key, v, ok)
		}
	}
}

// With sibling container columns present, the labeled column's value must not
// be discarded when the group is assembled.
func TestExtractLabeledQuantityWithSiblingColumns(t *testing.T) {
	raw := &tabular.RawTable{Rows: [][]string{
		{"Item No.", "Quantity (pc)", "", ""},
		{"", "20FT", "40'GP", "40'HQ"},
		{"1", "100", "110", "120"},
	}}

	records := Extract(raw, specWith(model.ExpectedFields...), DefaultOptions())
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	group := records[0].Group("Quantity (pc)")
	if group == nil {
		t.Fatalf("Quantity (pc) = %v, want nested mapping", records[0]["Quantity (pc)"])
	}
	want := map[string]any{"20FT": 100, "40'GP": 110, "40'HQ": 120}
	for key, v := range want {
		if group[key] != v {
			t.Errorf("%s = %v, want %v", key, group[key], v)
		}
	}
}

// Malformed input without any header marker still produces output through
// the fallback header position rather than failing.
func TestExtractDegradedInput(t *testing.T) {
	rows := make([][]string, 12)
	for i := range rows {
		rows[i] = []string{"noise", "noise"}
	}
	rows[10] = []string{"Ref", "Price"}
	rows[11] = []string{"1", "9.99"}

	records := Extract(&tabular.RawTable{Rows: rows}, specWith(model.ExpectedFields...), DefaultOptions())

	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0]["Ref"] != 1 {
		t.Errorf("Ref = %v, want pass-through of the fallback header's column", records[0]["Ref"])
	}
}
