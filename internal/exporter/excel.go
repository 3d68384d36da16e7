package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"catalog-extract/internal/config"
	"catalog-extract/internal/extract"
	"catalog-extract/internal/model"
)

// ExcelExporter writes the normalized record set back into the two-row
// header layout the catalog family uses: group headers merged over their
// sub-header columns, scalar headers merged vertically across both rows.
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// headerColumn is one planned output column: a top-level field and, for
// group fields, the sub-key it carries.
type headerColumn struct {
	Field  string
	SubKey string
}

// groupKeyOrder returns the canonical sub-key order of a group field.
func groupKeyOrder(field string) []string {
	switch field {
	case "Product size":
		return []string{"(CM)"}
	case "Measurement(cm)-1", "Measurement(cm)-2":
		return model.DimensionKeys
	case "Quantity (pc)":
		return model.ContainerKeys
	}
	return nil
}

// planColumns lays out one output column per scalar field and one per group
// sub-key, in expected-field order.
func planColumns() []headerColumn {
	var cols []headerColumn
	for _, field := range model.ExpectedFields {
		keys := groupKeyOrder(field)
		if keys == nil {
			cols = append(cols, headerColumn{Field: field})
			continue
		}
		for _, key := range keys {
			cols = append(cols, headerColumn{Field: field, SubKey: key})
		}
	}
	return cols
}

// Export generates the Excel report
func (e *ExcelExporter) Export(records []model.Record, cfg *config.Config) error {
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	sheet := "Catalog"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	cols := planColumns()
	if err := e.writeHeader(f, sheet, styler, cols); err != nil {
		return err
	}

	for i, rec := range records {
		row := i + 3 // two header rows
		for j, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			value := rec[col.Field]
			if col.SubKey != "" {
				value = nil
				if group := rec.Group(col.Field); group != nil {
					value = group[col.SubKey]
				}
			}
			if value == nil {
				continue
			}
			f.SetCellValue(sheet, cell, value)
			style := styler.DefaultStyle
			if extract.IsNumericValue(value) {
				style = styler.NumericStyle
			}
			f.SetCellStyle(sheet, cell, cell, style)
		}
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      2,
		TopLeftCell: "A3",
		ActivePane:  "bottomLeft",
	})

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}

	outputFile := cfg.GetOutputPath(".xlsx")
	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("failed to save %s: %w", outputFile, err)
	}
	return nil
}

// writeHeader emits the two-row header block: group fields span their
// sub-key columns horizontally, scalar fields span both rows vertically.
func (e *ExcelExporter) writeHeader(f *excelize.File, sheet string, s *Styler, cols []headerColumn) error {
	start := 0
	for start < len(cols) {
		field := cols[start].Field
		end := start
		for end+1 < len(cols) && cols[end+1].Field == field {
			end++
		}

		topLeft, _ := excelize.CoordinatesToCellName(start+1, 1)
		if cols[start].SubKey == "" {
			// Scalar: merge vertically across both header rows
			bottom, _ := excelize.CoordinatesToCellName(start+1, 2)
			f.SetCellValue(sheet, topLeft, field)
			f.MergeCell(sheet, topLeft, bottom)
			f.SetCellStyle(sheet, topLeft, bottom, s.HeaderStyle)
		} else {
			// Group: merge the header over the sub-key columns
			topRight, _ := excelize.CoordinatesToCellName(end+1, 1)
			f.SetCellValue(sheet, topLeft, field)
			if end > start {
				f.MergeCell(sheet, topLeft, topRight)
			}
			f.SetCellStyle(sheet, topLeft, topRight, s.HeaderStyle)

			for i := start; i <= end; i++ {
				cell, _ := excelize.CoordinatesToCellName(i+1, 2)
				f.SetCellValue(sheet, cell, cols[i].SubKey)
				f.SetCellStyle(sheet, cell, cell, s.SubHeaderStyle)
			}
		}
		start = end + 1
	}

	f.SetColWidth(sheet, "A", "B", 14)
	f.SetColWidth(sheet, "C", "E", 28)
	return nil
}
