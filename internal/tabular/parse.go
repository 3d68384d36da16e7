package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxMagic is the ZIP local-file signature; XLSX workbooks are ZIP archives.
var xlsxMagic = []byte{'P', 'K', 0x03, 0x04}

// Parse decodes fetched bytes into a RawTable, dispatching on content type:
// ZIP-magic bytes or a .xlsx source path go through the workbook reader,
// everything else is treated as CSV text.
func Parse(sourceURL string, raw []byte) (*RawTable, error) {
	if LooksLikeXLSX(sourceURL, raw) {
		return ParseXLSX(raw)
	}
	return ParseCSV(DecodeText(raw))
}

// LooksLikeXLSX reports whether the payload should be read as a workbook.
func LooksLikeXLSX(sourceURL string, raw []byte) bool {
	if bytes.HasPrefix(raw, xlsxMagic) {
		return true
	}
	if u, err := url.Parse(sourceURL); err == nil {
		return strings.EqualFold(path.Ext(u.Path), ".xlsx")
	}
	return false
}

// ParseCSV reads CSV text into a RawTable. The reader is deliberately
// permissive: catalog exports have ragged rows and stray quotes.
func ParseCSV(text string) (*RawTable, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	return &RawTable{Rows: rows}, nil
}

// ParseXLSX reads the first sheet of a workbook into a RawTable.
func ParseXLSX(raw []byte) (*RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return &RawTable{Rows: rows}, nil
}
