package model

import "testing"

func TestToHeaderSpecCurrentForm(t *testing.T) {
	req := &ExtractionRequest{
		CSV: "https://example.com/catalog.csv",
		CSVHeaders: []HeaderInfo{
			{Header: "Item No."},
			{Header: "Measurement(cm)-1", SubHeaders: []string{"L", "W", "H", "extra"}},
		},
	}

	spec := req.ToHeaderSpec()
	if len(spec) != 2 {
		t.Fatalf("got %d entries, want 2", len(spec))
	}

	first := spec[0]
	if first.Header != "Item No." || first.Selected != "Item No." || first.UseSubheaders {
		t.Errorf("entry 0 = %+v, want plain Item No.", first)
	}

	second := spec[1]
	if !second.UseSubheaders {
		t.Error("entry with sub-headers must set UseSubheaders")
	}
	if len(second.SubHeaders) != MaxSubHeaders {
		t.Errorf("got %d sub-headers, want capped at %d", len(second.SubHeaders), MaxSubHeaders)
	}
	if second.SubHeaders[2].Name != "H" || second.SubHeaders[2].Selected != "H" {
		t.Errorf("sub-header 2 = %+v, want H/H", second.SubHeaders[2])
	}
}

func TestToHeaderSpecLegacyForm(t *testing.T) {
	req := &ExtractionRequest{
		ExcelURL: "https://example.com/catalog.xlsx",
		ExcelHeaders: []HeaderMapping{
			{Header: "ITEM", Selected: "Item No."},
			{Header: "SIZE", SubHeader1: "CM", Selected1: "(CM)"},
			{Header: "QTY"}, // no explicit selection
		},
	}

	spec := req.ToHeaderSpec()
	if len(spec) != 3 {
		t.Fatalf("got %d entries, want 3", len(spec))
	}

	if spec[0].Header != "ITEM" || spec[0].Selected != "Item No." {
		t.Errorf("entry 0 = %+v", spec[0])
	}
	if !spec[1].UseSubheaders || spec[1].SubHeaders[0].Selected != "(CM)" {
		t.Errorf("entry 1 = %+v, want sub-header CM -> (CM)", spec[1])
	}
	if spec[2].Selected != "QTY" {
		t.Errorf("entry 2 Selected = %q, want header name as default", spec[2].Selected)
	}
	if spec[2].UseSubheaders {
		t.Error("entry without sub-headers must not set UseSubheaders")
	}
}

func TestSourceURL(t *testing.T) {
	req := &ExtractionRequest{CSV: "https://a/file.csv", ExcelURL: "https://b/file.xlsx"}
	if req.SourceURL() != "https://a/file.csv" {
		t.Error("CSV source must win when both are present")
	}

	req = &ExtractionRequest{ExcelURL: "https://b/file.xlsx"}
	if req.SourceURL() != "https://b/file.xlsx" {
		t.Error("legacy excel_url must be used when csv is absent")
	}
}

func TestGroupShape(t *testing.T) {
	if GroupShape("Item No.") != nil {
		t.Error("scalar fields have no group shape")
	}
	shape := GroupShape("Quantity (pc)")
	if len(shape) != 3 {
		t.Fatalf("Quantity (pc) shape = %v", shape)
	}
	for _, key := range ContainerKeys {
		if v, ok := shape[key]; !ok || v != "" {
			t.Errorf("shape[%s] = %v, want empty string", key, v)
		}
	}
}

func TestEnsureGroupReplacesScalar(t *testing.T) {
	rec := Record{"Measurement(cm)-1": 55}
	g := rec.EnsureGroup("Measurement(cm)-1")
	g["L"] = 55

	if rec.Group("Measurement(cm)-1")["L"] != 55 {
		t.Error("EnsureGroup must replace a scalar with a live nested map")
	}
}
