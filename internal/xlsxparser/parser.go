// =============================================================================
// CSV to XML Converter - XLSX Row Reader
// =============================================================================
//
// This module lets a spreadsheet stand in for a CSV file. The selected sheet
// is streamed row by row with excelize's row iterator, so large workbooks are
// never loaded into memory as a whole.
//
// SHEET LAYOUT:
//   | Column A | Column B       |
//   |----------|----------------|
//   | name     | favorite color |   <- row 1: header
//   | Alice    | blue           |   <- row 2+: data
//
// ROW WIDTH:
//   excelize drops trailing empty cells, so a row whose last cells are blank
//   comes back short. Every data row is padded with empty strings up to the
//   header width: a spreadsheet cell is never "missing", only empty.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/ginjaninja78/csv2xml/internal/config"
	"github.com/xuri/excelize/v2"
)

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser reads one worksheet row per call to Next.
type StreamingParser struct {
	file      *excelize.File
	rows      *excelize.Rows
	sheet     string
	width     int
	current   []string
	rowNumber int
	err       error
}

// Open opens a workbook and positions a row iterator on the configured sheet.
//
// PARAMETERS:
//   - filePath: The path to the XLSX file.
//   - settings: The spreadsheet settings. An empty sheet name selects the
//     first sheet.
//
// RETURNS:
//   - A pointer to the StreamingParser. The caller must Close it.
//   - An error if the workbook or sheet cannot be opened.
func Open(filePath string, settings config.XLSXSettings) (*StreamingParser, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	sheet := settings.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		f.Close()
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return &StreamingParser{
		file:  f,
		rows:  rows,
		sheet: sheet,
	}, nil
}

// Next advances to the next row. Returns false at end of sheet or on error.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	if !p.rows.Next() {
		if err := p.rows.Error(); err != nil {
			p.err = fmt.Errorf("error reading row %d of sheet %q: %w", p.rowNumber+1, p.sheet, err)
		}
		p.current = nil
		return false
	}

	columns, err := p.rows.Columns()
	if err != nil {
		p.err = fmt.Errorf("error reading row %d of sheet %q: %w", p.rowNumber+1, p.sheet, err)
		p.current = nil
		return false
	}

	p.rowNumber++

	// The header fixes the width.
	if p.rowNumber == 1 {
		p.width = len(columns)
	}
	for len(columns) < p.width {
		columns = append(columns, "")
	}

	p.current = columns
	return true
}

// Record returns the current row.
func (p *StreamingParser) Record() []string {
	return p.current
}

// RowNumber returns the number of rows read so far (1-indexed).
func (p *StreamingParser) RowNumber() int {
	return p.rowNumber
}

// Sheet returns the name of the sheet being read.
func (p *StreamingParser) Sheet() string {
	return p.sheet
}

// Err returns any error that occurred during reading.
func (p *StreamingParser) Err() error {
	return p.err
}

// Close releases the row iterator and the workbook.
func (p *StreamingParser) Close() error {
	rowsErr := p.rows.Close()
	if err := p.file.Close(); err != nil {
		return err
	}
	return rowsErr
}
