package exporter

import (
	"encoding/json"
	"fmt"
	"os"

	"catalog-extract/internal/config"
	"catalog-extract/internal/model"
)

// JSONExporter writes the record set exactly as the API would return it.
type JSONExporter struct {
	// Stateless
}

// NewJSONExporter creates a new JSONExporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export writes the records as indented JSON
func (e *JSONExporter) Export(records []model.Record, cfg *config.Config) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}

	outputFile := cfg.GetOutputPath(".json")
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	return nil
}
