// =============================================================================
// SolarWinds CSV to SNMP Config Generator - CSV Parser Module
// =============================================================================
//
// This module parses SolarWinds node-inventory CSV exports. It handles the
// quirks these files show up with in practice:
//   - Unpredictable encodings (decoded via the detected charset)
//   - Mojibake headers and cells (repaired by the sanitizer)
//   - Ragged rows with missing or extra columns
//   - Structurally empty rows scattered through the data
//
// PARSING PROCESS:
//   1. Open the file and wrap it in a decoding reader for the charset
//      picked by the encoding detector
//   2. Read the first row as column headers and sanitize them
//   3. Read data rows one at a time (single pass), sanitizing every cell
//   4. Skip structurally empty rows with a warning; keep counting
//
// The parser applies no content filtering: every physical data row becomes
// a Record. Filtering by device subtype is the generator's concern.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/encoding"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/sanitize"
	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/types"
	"go.uber.org/zap"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result holds the parsed CSV file.
type Result struct {
	// Headers contains the sanitized column headers in file order.
	Headers []string

	// Records contains one sanitized Record per surviving data row,
	// in file order.
	Records []types.Record

	// TotalRows is the number of physical data rows read, including rows
	// that were skipped as empty.
	TotalRows int

	// SkippedEmpty is the number of structurally empty rows skipped.
	SkippedEmpty int
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a CSV file and returns the sanitized records.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - charset: The charset to decode the file with (from the encoding
//     detector).
//   - log: Destination for row-level warnings.
//
// RETURNS:
//   - A pointer to the Result struct containing the parsed data.
//   - An error if the file cannot be opened or decoded. Decode failures
//     surface as *encoding.DecodeError and abort the parse; a wrong decode
//     would corrupt every field of every remaining row.
func Parse(filePath, charset string, log *zap.SugaredLogger) (*Result, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	decoded, err := encoding.NewReader(bufio.NewReader(file), charset)
	if err != nil {
		return nil, err
	}

	csvReader := csv.NewReader(decoded)
	configureReader(csvReader)

	// Read and sanitize the header row.
	headerRow, err := csvReader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("CSV file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	headers := cleanHeaders(headerRow)

	result := &Result{Headers: headers}

	// Read data rows one at a time. The pass is single and forward-only;
	// nothing here is restartable.
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		result.TotalRows++

		if isRowEmpty(row) {
			result.SkippedEmpty++
			log.Warnf("Skipping empty row %d", result.TotalRows+1)
			continue
		}

		result.Records = append(result.Records, recordize(headers, row))
	}

	return result, nil
}

// configureReader configures the CSV reader for the formats SolarWinds
// produces.
func configureReader(reader *csv.Reader) {
	// Allow variable numbers of fields per row. Exports frequently have
	// ragged trailing columns.
	reader.FieldsPerRecord = -1

	// Allow quotes that don't follow strict CSV rules.
	reader.LazyQuotes = true
}

// cleanHeaders sanitizes header values and names any empty headers after
// their column position.
func cleanHeaders(headerRow []string) []string {
	cleaned := make([]string, len(headerRow))

	for i, header := range headerRow {
		header = sanitize.Value(header)
		if header == "" {
			header = fmt.Sprintf("Column_%d", i+1)
		}
		cleaned[i] = header
	}

	return cleaned
}

// recordize converts a raw row into a sanitized Record keyed by header.
// Columns missing from the row map to the empty string; cells beyond the
// header width are dropped.
func recordize(headers []string, row []string) types.Record {
	record := make(types.Record, len(headers))

	for i, header := range headers {
		if i < len(row) {
			record[header] = sanitize.Value(row[i])
		} else {
			record[header] = ""
		}
	}

	return record
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
