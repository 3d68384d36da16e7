package extract

import (
	"regexp"
	"strings"

	"catalog-extract/internal/model"
	"catalog-extract/internal/tabular"
)

// itemNoPattern is the permissive "looks like a data row" check: the first
// column must be purely numeric or alphanumeric-with-hyphens. Known to be
// loose around footer/note rows; revisit with more sample files.
var itemNoPattern = regexp.MustCompile(`^[A-Za-z0-9\-]+$`)

// BuiltRecord pairs an output record with the table row it was built from.
// The Schema Normalizer needs the source row for Material and Discount
// repairs that re-read the raw table.
type BuiltRecord struct {
	Record model.Record
	Row    int
}

// BuildRecords applies the column mapping to every data row of the table.
// Rows whose first column is blank or does not look like an item number are
// skipped (this is also what skips the sub-header row). Cell-level coercion
// failures are swallowed: the raw string is kept, never raised.
func BuildRecords(t *tabular.Table, mapping ColumnMapping) []BuiltRecord {
	var built []BuiltRecord

	for row := range t.Rows {
		first := t.Cell(row, 0)
		if first == "" {
			continue
		}
		if !isDigits(first) && !itemNoPattern.MatchString(first) {
			continue
		}

		rec := model.Record{}
		applyMapping(rec, t, row, mapping)
		adoptProductSize(rec, t, row)
		backfillFromProductSize(rec)
		collectMeasurements(rec, t, row, mapping)
		repairMaterial(rec, t, row)

		built = append(built, BuiltRecord{Record: rec, Row: row})
	}

	return built
}

// applyMapping coerces every non-blank cell and routes it through the column
// mapping: sub-header-bound columns nest under header -> sub-header,
// header-only columns set the field directly, unmapped named columns pass
// through under their raw name, placeholder-named columns are dropped.
func applyMapping(rec model.Record, t *tabular.Table, row int, mapping ColumnMapping) {
	for _, col := range t.Columns {
		raw := t.Cell(row, col.Index)
		if raw == "" {
			continue
		}
		value := CoerceCell(raw)

		target, mapped := mapping[col.Index]
		if !mapped {
			if !tabular.IsPlaceholderName(col.Name) {
				rec[col.Name] = value
			}
			continue
		}

		if target.Subheader != "" {
			rec.EnsureGroup(target.Header)[target.Subheader] = value
		} else {
			rec[target.Header] = value
		}
	}
}

// adoptProductSize fills a missing "Product size" from any column whose name
// mentions a product size or dimension, always nesting under "(CM)".
func adoptProductSize(rec model.Record, t *tabular.Table, row int) {
	if _, ok := rec["Product size"]; ok {
		return
	}
	for _, col := range t.Columns {
		name := strings.ToLower(col.Name)
		if !strings.Contains(name, "product size") && !strings.Contains(name, "dimension") {
			continue
		}
		raw := t.Cell(row, col.Index)
		if raw == "" {
			continue
		}
		rec["Product size"] = map[string]any{"(CM)": CoerceCell(raw)}
		return
	}
}

// backfillFromProductSize derives Measurement(cm)-1 from the Product size
// text when no measurement columns produced it and the text carries a
// dimension delimiter.
func backfillFromProductSize(rec model.Record) {
	if _, ok := rec["Measurement(cm)-1"]; ok {
		return
	}
	size := productSizeText(rec)
	if size == "" || !HasDimensionDelimiter(size) {
		return
	}
	dims, ok := ParseDimensions(size)
	if !ok {
		return
	}
	rec["Measurement(cm)-1"] = map[string]any{"L": dims[0], "W": dims[1], "H": dims[2]}
}

// productSizeText extracts the free-text size value whatever shape an
// earlier step left Product size in.
func productSizeText(rec model.Record) string {
	switch v := rec["Product size"].(type) {
	case map[string]any:
		if cm, ok := v["(CM)"]; ok {
			return FormatValue(cm)
		}
	case string:
		return v
	}
	return ""
}

// collectMeasurements gathers L/W/H for both measurement groups in layers:
// explicit mapper-bound columns first, then positional reads next to the
// group's labeled column, then dimensions parsed out of the Product size
// text. Each layer only fills dimensions still missing. Whatever was
// collected is attached to the record as a nested group.
func collectMeasurements(rec model.Record, t *tabular.Table, row int, mapping ColumnMapping) {
	m1 := readGroupColumns(t, row, mapping.GroupColumns("Measurement(cm)-1"))
	m2 := readGroupColumns(t, row, mapping.GroupColumns("Measurement(cm)-2"))

	fillPositional(m1, t, row, "-1")
	fillPositional(m2, t, row, "-2")

	// Product size text as the last resort for the primary group.
	if missingDimension(m1) {
		if size := productSizeText(rec); size != "" && HasDimensionDelimiter(size) {
			if dims, ok := ParseDimensions(size); ok {
				for i, dim := range model.DimensionKeys {
					if m1[dim] == nil {
						m1[dim] = dims[i]
					}
				}
			}
		}
	}

	attachGroup(rec, "Measurement(cm)-1", m1)
	attachGroup(rec, "Measurement(cm)-2", m2)
}

// readGroupColumns reads the explicit dimension values out of the columns
// the mapper bound to a group.
func readGroupColumns(t *tabular.Table, row int, cols map[string]int) map[string]any {
	values := map[string]any{"L": nil, "W": nil, "H": nil}
	for dim, col := range cols {
		if raw := t.Cell(row, col); raw != "" {
			values[dim] = CoerceCell(raw)
		}
	}
	return values
}

// fillPositional locates the first column whose name contains "measurement"
// and the group suffix, then reads it and its next two columns positionally
// as L, W, H, filling only dimensions not already set.
func fillPositional(values map[string]any, t *tabular.Table, row int, suffix string) {
	if !missingDimension(values) {
		return
	}

	main := -1
	for _, col := range t.Columns {
		if strings.Contains(strings.ToLower(col.Name), "measurement") &&
			strings.Contains(col.Name, suffix) {
			main = col.Index
			break
		}
	}
	if main < 0 {
		return
	}

	for i, dim := range model.DimensionKeys {
		col := main + i
		if col >= t.NumCols() {
			break
		}
		if values[dim] != nil {
			continue
		}
		if raw := t.Cell(row, col); raw != "" {
			values[dim] = CoerceCell(raw)
		}
	}
}

func missingDimension(values map[string]any) bool {
	for _, dim := range model.DimensionKeys {
		if values[dim] == nil {
			return true
		}
	}
	return false
}

// attachGroup writes the collected non-empty dimensions as a nested group,
// replacing whatever an earlier step stored. A group with no values at all
// leaves the record untouched.
func attachGroup(rec model.Record, header string, values map[string]any) {
	group := map[string]any{}
	for _, dim := range model.DimensionKeys {
		if values[dim] != nil {
			group[dim] = values[dim]
		}
	}
	if len(group) > 0 {
		rec[header] = group
	}
}

// repairMaterial replaces a numeric Material value (a material code captured
// where descriptive text was expected) with the first string-valued cell
// found in a material column on the same row.
func repairMaterial(rec model.Record, t *tabular.Table, row int) {
	if !IsNumericValue(rec["Material"]) {
		return
	}
	for _, col := range t.Columns {
		if !strings.Contains(strings.ToLower(col.Name), "material") {
			continue
		}
		raw := t.Cell(row, col.Index)
		if raw == "" {
			continue
		}
		if text, ok := CoerceCell(raw).(string); ok && text != "" {
			rec["Material"] = text
			return
		}
	}
}
