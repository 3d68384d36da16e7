package extract

import (
	"strings"

	"catalog-extract/internal/model"
	"catalog-extract/internal/tabular"
)

// Target is the destination a raw column is bound to: a target header and,
// for grouped fields, the sub-header under it.
type Target struct {
	Header    string
	Subheader string
}

// ColumnMapping binds raw column indices to targets. It is built once per
// extraction, before any row is processed, and treated as immutable by the
// Row Builder.
type ColumnMapping map[int]Target

// maxNeighborDistance bounds the positional search for the group a labeled
// but unnamed column belongs to.
const maxNeighborDistance = 3

// BuildColumnMapping runs the layered matcher passes over the table, each a
// pure function producing a partial mapping:
//
//  1. direct header name match,
//  2. sub-header value match for entries that declare sub-headers,
//  3. positional inference for unnamed columns carrying L/W/H or container
//     labels,
//  4. special keyword matchers for columns whose names defy the general
//     rules; these override anything an earlier pass decided.
//
// Passes merge first-writer-wins with one refinement: a sub-header binding
// replaces a header-only binding on the same column, because nesting under
// the sub-header is strictly more specific. Without that, a group column
// whose header and sub-header are both labeled would bind as a bare scalar
// and its value could never reach the nested group.
//
// Columns left unmapped keep their raw name as the output key at row-build
// time unless their name is a generated placeholder, in which case they are
// dropped.
func BuildColumnMapping(t *tabular.Table, spec model.HeaderSpec) ColumnMapping {
	mapping := ColumnMapping{}

	for col, target := range matchDirectHeaders(t, spec) {
		mapping[col] = target
	}

	for col, target := range matchSubHeaderValues(t, spec) {
		if prev, taken := mapping[col]; taken && prev.Subheader != "" {
			continue
		}
		mapping[col] = target
	}

	for col, target := range matchUnnamedPositional(t, spec) {
		if _, taken := mapping[col]; !taken {
			mapping[col] = target
		}
	}

	// Keyword rules win over the general passes for the same column.
	for col, target := range matchSpecialKeywords(t, spec) {
		mapping[col] = target
	}

	return mapping
}

// GroupColumns returns the sub-header -> column index bindings for one group
// header (e.g. which columns the mapper decided hold Measurement(cm)-1 L, W
// and H). When several columns are bound to the same sub-header the lowest
// column index wins.
func (m ColumnMapping) GroupColumns(header string) map[string]int {
	cols := map[string]int{}
	for col, target := range m {
		if target.Header != header || target.Subheader == "" {
			continue
		}
		if prev, ok := cols[target.Subheader]; !ok || col < prev {
			cols[target.Subheader] = col
		}
	}
	return cols
}

// matchDirectHeaders binds a column to the first HeaderSpec entry whose
// header name the column name equals or contains, case-insensitive.
func matchDirectHeaders(t *tabular.Table, spec model.HeaderSpec) ColumnMapping {
	out := ColumnMapping{}
	for _, col := range t.Columns {
		name := strings.ToLower(col.Name)
		for _, entry := range spec {
			if entry.Header == "" {
				continue
			}
			if strings.Contains(name, strings.ToLower(entry.Header)) {
				out[col.Index] = Target{Header: entry.Header}
				break
			}
		}
	}
	return out
}

// matchSubHeaderValues binds columns through their sub-header row value: the
// column name must contain the entry's header name and the sub-header value
// must equal one of the entry's declared sub-headers, case-insensitive.
// Only entries flagged UseSubheaders participate.
func matchSubHeaderValues(t *tabular.Table, spec model.HeaderSpec) ColumnMapping {
	out := ColumnMapping{}
	for _, col := range t.Columns {
		subVal := t.SubValue(col.Index)
		if subVal == "" {
			continue
		}
		name := strings.ToLower(col.Name)

	entries:
		for _, entry := range spec {
			if !entry.UseSubheaders || entry.Header == "" {
				continue
			}
			if !strings.Contains(name, strings.ToLower(entry.Header)) {
				continue
			}
			for _, sh := range entry.SubHeaders {
				if sh.Name != "" && strings.EqualFold(sh.Name, subVal) {
					out[col.Index] = Target{Header: entry.Header, Subheader: sh.Name}
					break entries
				}
			}
		}
	}
	return out
}

// matchUnnamedPositional resolves columns with generated placeholder names
// that nevertheless carry a recognizable sub-header label. An L/W/H label is
// attributed to the nearest Measurement(cm)-1 or -2 block within
// maxNeighborDistance columns; a container label to the nearest column whose
// name contains "quantity". Only groups the HeaderSpec actually declares are
// considered.
func matchUnnamedPositional(t *tabular.Table, spec model.HeaderSpec) ColumnMapping {
	out := ColumnMapping{}
	for _, col := range t.Columns {
		if !tabular.IsPlaceholderName(col.Name) {
			continue
		}
		subVal := strings.ToLower(t.SubValue(col.Index))
		if subVal == "" {
			continue
		}

		switch {
		case subVal == "l" || subVal == "w" || subVal == "h":
			group := nearestMeasurementGroup(t, col.Index)
			if group != "" && spec.Find(group) != nil {
				out[col.Index] = Target{Header: group, Subheader: strings.ToUpper(subVal)}
			}

		case containsAny(subVal, "20ft", "40'gp", "40'hq", "40ft", "40gp", "40hq"):
			if !nearColumnContaining(t, col.Index, "quantity") || spec.Find("Quantity (pc)") == nil {
				continue
			}
			if container := containerFor(subVal); container != "" {
				out[col.Index] = Target{Header: "Quantity (pc)", Subheader: container}
			}
		}
	}
	return out
}

// nearestMeasurementGroup finds the closest column (within
// maxNeighborDistance) whose name marks a measurement block and returns that
// block's group header, or "".
func nearestMeasurementGroup(t *tabular.Table, from int) string {
	best := maxNeighborDistance + 1
	group := ""
	for _, other := range t.Columns {
		name := strings.ToLower(other.Name)
		if !strings.Contains(name, "measurement") {
			continue
		}
		dist := other.Index - from
		if dist < 0 {
			dist = -dist
		}
		if dist >= best {
			continue
		}
		switch {
		case strings.Contains(other.Name, "-1"):
			best, group = dist, "Measurement(cm)-1"
		case strings.Contains(other.Name, "-2"):
			best, group = dist, "Measurement(cm)-2"
		}
	}
	return group
}

// nearColumnContaining reports whether any column within
// maxNeighborDistance of from has needle in its name, case-insensitive.
func nearColumnContaining(t *tabular.Table, from int, needle string) bool {
	for _, other := range t.Columns {
		if !strings.Contains(strings.ToLower(other.Name), needle) {
			continue
		}
		dist := other.Index - from
		if dist < 0 {
			dist = -dist
		}
		if dist <= maxNeighborDistance {
			return true
		}
	}
	return false
}

// containerFor buckets a container-type sub-header label into the canonical
// Quantity (pc) sub-header.
func containerFor(subVal string) string {
	switch {
	case strings.Contains(subVal, "20"):
		return "20FT"
	case strings.Contains(subVal, "40'g"), strings.Contains(subVal, "40g"):
		return "40'GP"
	case strings.Contains(subVal, "40'h"), strings.Contains(subVal, "40h"):
		return "40'HQ"
	}
	return ""
}

// matchSpecialKeywords maps columns with unusual names onto specific targets
// through fixed keyword combinations. These are layout-family quirks that the
// general matching cannot express, so they override earlier passes.
func matchSpecialKeywords(t *tabular.Table, _ model.HeaderSpec) ColumnMapping {
	out := ColumnMapping{}
	for _, col := range t.Columns {
		name := strings.ToLower(col.Name)

		switch {
		case strings.Contains(name, "fsc") && strings.Contains(name, "fob") &&
			strings.Contains(name, "materials") &&
			!strings.Contains(name, "target") && !strings.Contains(name, "update"):
			out[col.Index] = Target{Header: "FSC FOB Materials"}

		case strings.Contains(name, "update") && strings.Contains(name, "fsc") &&
			strings.Contains(name, "materials"):
			out[col.Index] = Target{Header: "update/ FSC Materials"}

		case strings.Contains(name, "target") && strings.Contains(name, "fob") &&
			strings.Contains(name, "cost"):
			out[col.Index] = Target{Header: "Target FOB Cost /FSC Materials"}

		case strings.Contains(name, "discount"):
			out[col.Index] = Target{Header: "Discount"}

		case name == "header":
			out[col.Index] = Target{Header: "header"}
		}
	}
	return out
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
