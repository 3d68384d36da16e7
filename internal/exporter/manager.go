package exporter

import (
	"strings"
)

// GetExporters returns a list of Exporters based on requested formats
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		fmtStr = strings.ToLower(strings.TrimSpace(fmtStr))
		if seen[fmtStr] {
			continue
		}
		seen[fmtStr] = true

		switch fmtStr {
		case "excel", "xlsx":
			exporters = append(exporters, NewExcelExporter())
		case "json":
			exporters = append(exporters, NewJSONExporter())
		}
	}

	// Leave it empty if nothing valid was specified; the caller decides
	// whether that is an error.
	return exporters
}
