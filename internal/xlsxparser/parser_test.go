package xlsxparser

import (
	"path/filepath"
	"testing"

	"github.com/ginjaninja78/csv2xml/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if name != "Sheet1" {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, f.SetSheetRow(name, cell, &r))
		}
	}

	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func readAll(t *testing.T, p *StreamingParser) [][]string {
	t.Helper()
	var records [][]string
	for p.Next() {
		records = append(records, p.Record())
	}
	require.NoError(t, p.Err())
	return records
}

func TestOpenReadsFirstSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Sheet1": {
			{"name", "favorite color"},
			{"Alice", "blue"},
			{"Bob", "red"},
		},
	})

	p, err := Open(path, config.XLSXSettings{})
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "Sheet1", p.Sheet())
	assert.Equal(t, [][]string{
		{"name", "favorite color"},
		{"Alice", "blue"},
		{"Bob", "red"},
	}, readAll(t, p))
	assert.Equal(t, 3, p.RowNumber())
}

func TestOpenPadsTrailingEmptyCells(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Sheet1": {
			{"a", "b", "c"},
			{"1"},
		},
	})

	p, err := Open(path, config.XLSXSettings{})
	require.NoError(t, err)
	defer p.Close()

	records := readAll(t, p)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"1", "", ""}, records[1])
}

func TestOpenNamedSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Sheet1":  {{"ignored"}},
		"Exports": {{"id"}, {"7"}},
	})

	p, err := Open(path, config.XLSXSettings{Sheet: "Exports"})
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, [][]string{{"id"}, {"7"}}, readAll(t, p))
}

func TestOpenMissingSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{"Sheet1": {{"id"}}})

	_, err := Open(path, config.XLSXSettings{Sheet: "Nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.xlsx"), config.XLSXSettings{})
	require.Error(t, err)
}
