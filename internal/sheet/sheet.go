// Package sheet flattens tabular invoice uploads (CSV, XLSX) into the
// whitespace-columned raw text the parsing core expects, so spreadsheet
// invoices flow through the same heuristics as OCR output.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellGap separates cells in flattened output. Must be 2+ spaces so the
// line-item column splitter sees cell boundaries as column boundaries.
const cellGap = "    "

// FlattenCSV renders CSV rows as gap-separated text lines.
func FlattenCSV(r io.Reader) (string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	var b strings.Builder
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read csv: %w", err)
		}
		b.WriteString(strings.Join(row, cellGap))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// FlattenXLSX renders the first worksheet of a workbook as gap-separated
// text lines.
func FlattenXLSX(r io.Reader) (string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return "", fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, cellGap))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// FlattenUpload dispatches on the upload's extension. Anything that is not
// a recognized sheet format is read verbatim as plain text.
func FlattenUpload(filename string, r io.Reader) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FlattenCSV(r)
	case ".xlsx":
		return FlattenXLSX(r)
	default:
		b, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read upload: %w", err)
		}
		return string(b), nil
	}
}
