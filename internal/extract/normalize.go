package extract

import (
	"strings"

	"catalog-extract/internal/logger"
	"catalog-extract/internal/model"
	"catalog-extract/internal/tabular"
)

// discountNames are the known name variants of the discount column, tried as
// exact matches before falling back to looser strategies.
var discountNames = []string{"Discount", "Discount ", " Discount", "discount", "DISCOUNT"}

// discountProbePositions are trailing column positions (offsets from the
// table width) probed when no discount column was found by name. Wide
// exports of this layout family keep Discount near the end.
var discountProbePositions = []int{-3, -4, -5, -2, -1}

// Normalize runs the post-build passes over the full record set so every
// record ends up with the complete expected-field shape. The passes are
// layered fallbacks executed unconditionally in fixed order; none of them
// can fail.
func Normalize(records []BuiltRecord, t *tabular.Table, opts Options) {
	for _, br := range records {
		forceGroupShapes(br.Record)
		fillSiblingDimensions(br.Record, "Measurement(cm)-1", "Measurement(cm)-2")
		fillSiblingDimensions(br.Record, "Measurement(cm)-2", "Measurement(cm)-1")
		completeQuantityGroup(br.Record)
		substituteMaterialDescription(br.Record, t, br.Row)
	}

	completeExpectedFields(records)
	resolveDiscounts(records, t, opts)
	applyPatches(records, opts.SourceURL, opts.Patches)
}

// forceGroupShapes guarantees every group field present on a record holds a
// nested mapping, even when an earlier step left it scalar. The stray scalar
// is filed under the group's leading sub-key, the first column of its block.
func forceGroupShapes(rec model.Record) {
	for _, field := range model.ExpectedFields {
		if !model.IsGroupField(field) {
			continue
		}
		v, ok := rec[field]
		if !ok {
			continue
		}
		if _, nested := v.(map[string]any); !nested {
			rec[field] = map[string]any{groupLeadKey(field): v}
		}
	}
}

// groupLeadKey returns the sub-key a stray scalar is attributed to.
func groupLeadKey(field string) string {
	switch field {
	case "Product size":
		return "(CM)"
	case "Quantity (pc)":
		return model.ContainerKeys[0]
	}
	return model.DimensionKeys[0]
}

// fillSiblingDimensions completes a measurement group's L/W/H by copying
// missing dimensions from the sibling group, placing a nil placeholder when
// the sibling has nothing either.
func fillSiblingDimensions(rec model.Record, header, sibling string) {
	group := rec.Group(header)
	if group == nil {
		return
	}
	other := rec.Group(sibling)
	for _, dim := range model.DimensionKeys {
		if _, ok := group[dim]; ok {
			continue
		}
		if other != nil {
			if v, ok := other[dim]; ok {
				group[dim] = v
				continue
			}
		}
		group[dim] = nil
	}
}

// completeQuantityGroup ensures an existing Quantity (pc) group carries all
// three container keys.
func completeQuantityGroup(rec model.Record) {
	group := rec.Group("Quantity (pc)")
	if group == nil {
		return
	}
	for _, key := range model.ContainerKeys {
		if _, ok := group[key]; !ok {
			group[key] = nil
		}
	}
}

// substituteMaterialDescription handles a Material value that is still
// numeric after the row-level repair: a column naming both "material" and
// "description" is preferred, else the numeric code is stringified so the
// field always reads as text.
func substituteMaterialDescription(rec model.Record, t *tabular.Table, row int) {
	if !IsNumericValue(rec["Material"]) {
		return
	}
	for _, col := range t.Columns {
		name := strings.ToLower(col.Name)
		if !strings.Contains(name, "material") || !strings.Contains(name, "description") {
			continue
		}
		if raw := t.Cell(row, col.Index); raw != "" {
			rec["Material"] = raw
			return
		}
	}
	rec["Material"] = FormatValue(rec["Material"])
}

// completeExpectedFields makes every record carry every expected field.
// Missing scalars borrow the value from the first record that had the field
// before this pass started; missing group fields get their empty shape, never
// a borrowed one.
func completeExpectedFields(records []BuiltRecord) {
	donors := map[string]any{}
	for _, field := range model.ExpectedFields {
		for _, br := range records {
			if v, ok := br.Record[field]; ok {
				donors[field] = v
				break
			}
		}
	}

	for _, br := range records {
		for _, field := range model.ExpectedFields {
			if _, ok := br.Record[field]; ok {
				continue
			}
			if shape := model.GroupShape(field); shape != nil {
				br.Record[field] = shape
				continue
			}
			if v, ok := donors[field]; ok {
				br.Record[field] = v
			} else {
				br.Record[field] = ""
			}
		}
	}
}

// resolveDiscounts locates the discount column (exact name, then
// case-insensitive name, then trailing-position probe on wide tables) and
// rewrites each record's Discount with normalized percentage formatting.
// When every Discount is still empty afterwards, the degenerate fallback
// reads the configured fixed column position directly.
func resolveDiscounts(records []BuiltRecord, t *tabular.Table, opts Options) {
	if col, ok := findDiscountColumn(t); ok {
		logger.Debug("Discount column resolved at index %d (%s)", col, t.Columns[col].Name)
		for _, br := range records {
			if raw := t.Cell(br.Row, col); raw != "" {
				br.Record["Discount"] = FormatDiscount(raw)
			}
		}
	}

	if !allDiscountsEmpty(records) {
		return
	}

	col := opts.DiscountFallbackColumn
	if col < 0 || col >= t.NumCols() {
		return
	}
	logger.Debug("Falling back to fixed discount column index %d", col)
	for _, br := range records {
		raw := t.Cell(br.Row, col)
		if raw == "" {
			continue
		}
		if !strings.Contains(raw, "%") {
			raw += "%"
		}
		br.Record["Discount"] = raw
	}
}

// findDiscountColumn tries the layered discount column strategies in order
// of confidence.
func findDiscountColumn(t *tabular.Table) (int, bool) {
	for _, name := range discountNames {
		for _, col := range t.Columns {
			if col.Name == name {
				return col.Index, true
			}
		}
	}

	for _, col := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(col.Name), "discount") {
			return col.Index, true
		}
	}

	// Positional probe: only on wide tables, checking the first row below
	// the header for discount-ish text.
	if t.NumCols() > 20 {
		for _, pos := range discountProbePositions {
			idx := t.NumCols() + pos
			if idx < 0 || idx >= t.NumCols() {
				continue
			}
			head := strings.ToLower(t.Cell(0, idx))
			if strings.Contains(head, "discount") || strings.Contains(head, "%") {
				return idx, true
			}
		}
	}

	return 0, false
}

// allDiscountsEmpty reports whether no record got a usable Discount value.
func allDiscountsEmpty(records []BuiltRecord) bool {
	for _, br := range records {
		switch v := br.Record["Discount"].(type) {
		case nil:
		case string:
			if v != "" {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// FormatDiscount normalizes a raw discount cell: an existing "%" suffix is
// kept as-is, "-3p" style values become "-3%", purely numeric values get a
// "%" appended after numeric normalization, and anything non-numeric passes
// through unchanged.
func FormatDiscount(raw string) string {
	v := strings.TrimSpace(raw)
	switch {
	case v == "":
		return v

	case strings.Contains(v, "%"):
		return v

	case strings.HasPrefix(v, "-"):
		if strings.HasSuffix(v, "p") || strings.HasSuffix(v, "P") {
			return v[:len(v)-1] + "%"
		}
		if numericPattern.MatchString(v) {
			return FormatValue(coerceNumeric(v)) + "%"
		}
		return v

	case numericPattern.MatchString(v):
		return FormatValue(coerceNumeric(v)) + "%"

	default:
		return v
	}
}
