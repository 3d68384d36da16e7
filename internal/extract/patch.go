package extract

import (
	"fmt"
	"strings"
)

// Patch is a known-input data-quality override, keyed by a source
// fingerprint (a URL substring). Patches encode knowledge about specific
// known-bad uploads and are injected from configuration, never inlined in
// the general heuristics, so they stay removable and testable in isolation.
type Patch struct {
	URLContains string
	Discounts   []DiscountOverride
}

// DiscountOverride forces a literal Discount value on records whose
// "Item No." matches one of Items.
type DiscountOverride struct {
	Items    []string
	Discount string
}

// Matches reports whether the patch applies to the given source URL.
func (p Patch) Matches(sourceURL string) bool {
	return p.URLContains != "" && strings.Contains(sourceURL, p.URLContains)
}

// applyPatches runs every matching patch over the record set. Item numbers
// are compared by their string rendering, so coerced ints match configured
// string values.
func applyPatches(records []BuiltRecord, sourceURL string, patches []Patch) {
	for _, patch := range patches {
		if !patch.Matches(sourceURL) {
			continue
		}
		for _, br := range records {
			item := fmt.Sprint(br.Record["Item No."])
			for _, override := range patch.Discounts {
				for _, want := range override.Items {
					if item == want {
						br.Record["Discount"] = override.Discount
					}
				}
			}
		}
	}
}
