package extract

import (
	"strings"

	"catalog-extract/internal/tabular"
)

// headerMarker identifies the primary header row: any row whose concatenated
// text contains an item-number column label.
const headerMarker = "item no"

// subHeaderTokens identify a sub-header row: dimension letters and container
// type labels. Matched case-sensitively against the row text, as the layout
// family always capitalizes them.
var subHeaderTokens = []string{"L", "W", "H", "20FT", "40'GP", "40'HQ"}

// LocateHeader scans the first scanLimit rows of the raw table for the
// header row and, if the row below it carries group labels, the sub-header
// row. There is no failure path: when the marker is absent the fixed
// fallback indices are returned, a degraded-mode default for malformed
// input, deliberately kept deterministic. A sub-header index of -1 means the
// table has no sub-header row.
func LocateHeader(raw *tabular.RawTable, scanLimit, fallbackHeader, fallbackSub int) (headerRow, subheaderRow int) {
	limit := scanLimit
	if raw.NumRows() < limit {
		limit = raw.NumRows()
	}

	for i := 0; i < limit; i++ {
		text := raw.RowText(i)
		if !strings.Contains(strings.ToLower(text), headerMarker) {
			continue
		}

		subheaderRow = -1
		if i+1 < raw.NumRows() {
			next := raw.RowText(i + 1)
			for _, token := range subHeaderTokens {
				if strings.Contains(next, token) {
					subheaderRow = i + 1
					break
				}
			}
		}
		return i, subheaderRow
	}

	return fallbackHeader, fallbackSub
}
