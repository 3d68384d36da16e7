package extract

import (
	"catalog-extract/internal/logger"
	"catalog-extract/internal/model"
	"catalog-extract/internal/tabular"
)

// Options tunes the structural-inference fallbacks. All values have working
// defaults; callers normally build this from configuration.
type Options struct {
	// ScanLimit is how many leading rows the Header Locator inspects.
	ScanLimit int

	// FallbackHeaderRow / FallbackSubheaderRow are the fixed indices used
	// when no header row is recognized within ScanLimit.
	FallbackHeaderRow    int
	FallbackSubheaderRow int

	// DiscountFallbackColumn is the fixed raw column index read when every
	// other discount strategy produced nothing.
	DiscountFallbackColumn int

	// SourceURL fingerprints the input for known-input patches.
	SourceURL string

	// Patches are data-quality overrides for specific known uploads.
	Patches []Patch
}

// DefaultOptions returns the tuning the catalog layout family was measured
// against.
func DefaultOptions() Options {
	return Options{
		ScanLimit:              20,
		FallbackHeaderRow:      10,
		FallbackSubheaderRow:   11,
		DiscountFallbackColumn: 21,
	}
}

// Extract runs the full reshaping pipeline over a parsed raw table:
// locate the header rows, build the column mapping once from the whole
// table, build one nested record per data row, then normalize the record
// set to the fixed expected shape. It never fails: structural-inference
// misses degrade to defaults rather than errors.
func Extract(raw *tabular.RawTable, spec model.HeaderSpec, opts Options) []model.Record {
	headerRow, subheaderRow := LocateHeader(raw, opts.ScanLimit, opts.FallbackHeaderRow, opts.FallbackSubheaderRow)
	logger.Debug("Header row at index %d, sub-header row at %d", headerRow, subheaderRow)

	table := tabular.Reheader(raw, headerRow, subheaderRow)
	mapping := BuildColumnMapping(table, spec)
	logger.Debug("Column mapping bound %d of %d columns", len(mapping), table.NumCols())

	built := BuildRecords(table, mapping)
	Normalize(built, table, opts)

	records := make([]model.Record, len(built))
	for i, br := range built {
		records[i] = br.Record
	}
	logger.Debug("Extracted %d records", len(records))
	return records
}
