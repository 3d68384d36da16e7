package exporter

import (
	"catalog-extract/internal/config"
	"catalog-extract/internal/model"
)

// Exporter writes an extracted record set to one output format.
type Exporter interface {
	Export(records []model.Record, cfg *config.Config) error
}
