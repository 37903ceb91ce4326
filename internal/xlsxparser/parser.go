// =============================================================================
// SolarWinds CSV to SNMP Config Generator - XLSX Parser Module
// =============================================================================
//
// SolarWinds can export node inventories as XLSX workbooks as well as CSV.
// This module reads the first sheet of such a workbook into the same record
// shape the CSV parser produces, so the rest of the pipeline does not care
// which format the operator handed it.
//
// No charset detection happens here: XLSX cell data is always UTF-8 inside
// the package. The sanitizer still runs on every header and cell, since the
// mojibake usually predates the export itself.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/csvparser"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/sanitize"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/types"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Parse reads the first sheet of an XLSX workbook and returns the sanitized
// records.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//   - log: Destination for row-level warnings.
//
// RETURNS:
//   - A Result in the same shape the CSV parser produces.
//   - An error if the workbook cannot be opened or has no sheets.
func Parse(filePath string, log *zap.SugaredLogger) (*csvparser.Result, error) {
	f, err := excelize.OpenFile(filePath)
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
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		header = sanitize.Value(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = header
	}

	result := &csvparser.Result{Headers: headers}

	for _, row := range rows[1:] {
		result.TotalRows++

		if isRowEmpty(row) {
			result.SkippedEmpty++
			log.Warnf("Skipping empty row %d", result.TotalRows+1)
			continue
		}

		record := make(types.Record, len(headers))
		for i, header := range headers {
			if i < len(row) {
				record[header] = sanitize.Value(row[i])
			} else {
				record[header] = ""
			}
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
