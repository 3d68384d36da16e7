package model

// Record is one extracted catalog row: a mapping from target header name to
// either a scalar value (string, int, float64) or a nested group
// (map[string]any), e.g. Measurement(cm)-1 -> {L, W, H}.
type Record map[string]any

// ExpectedFields is the fixed set of top-level fields every normalized Record
// must contain, in declaration order. Scalar fields default to "", group
// fields default to their empty group shape.
var ExpectedFields = []string{
	"Item No.",
	"Photo",
	"Description of Goods",
	"Material",
	"Product size",
	"Qty/ctn",
	"Measurement(cm)-1",
	"Measurement(cm)-2",
	"CBM",
	"Quantity (pc)",
	"Unit Price",
	"FSC FOB Materials",
	"mold change",
	"Packing",
	"update/ FSC Materials",
	"Target FOB Cost /FSC Materials",
	"Discount",
	"header",
}

// Dimension keys for the measurement groups, in positional order (a dimension
// block is always read as L, then W, then H).
var DimensionKeys = []string{"L", "W", "H"}

// ContainerKeys are the sub-headers of the Quantity (pc) group.
var ContainerKeys = []string{"20FT", "40'GP", "40'HQ"}

// GroupShape returns the empty nested shape for a group field, or nil if the
// field is a scalar.
func GroupShape(field string) map[string]any {
	switch field {
	case "Product size":
		return map[string]any{"(CM)": ""}
	case "Measurement(cm)-1", "Measurement(cm)-2":
		return map[string]any{"L": "", "W": "", "H": ""}
	case "Quantity (pc)":
		return map[string]any{"20FT": "", "40'GP": "", "40'HQ": ""}
	}
	return nil
}

// IsGroupField reports whether a target field holds a nested mapping.
func IsGroupField(field string) bool {
	return GroupShape(field) != nil
}

// Group returns the nested mapping stored under field, or nil when the field
// is absent or holds a scalar.
func (r Record) Group(field string) map[string]any {
	g, _ := r[field].(map[string]any)
	return g
}

// EnsureGroup returns the nested mapping under field, creating it if the
// field is absent or currently holds a scalar.
func (r Record) EnsureGroup(field string) map[string]any {
	if g, ok := r[field].(map[string]any); ok {
		return g
	}
	g := map[string]any{}
	r[field] = g
	return g
}
