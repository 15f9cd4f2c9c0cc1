// =============================================================================
// CSV to XML Converter - File Manager Utility
// =============================================================================
//
// This module provides the file handling used around a conversion:
//   - Opening the input for reading
//   - Creating (or truncating) the output
//   - Choosing the row source from the input's extension
//
// The output's parent directory is never created: a missing directory is a
// write failure, just like a missing permission.
//
// =============================================================================

package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// =============================================================================
// INPUT / OUTPUT FILES
// =============================================================================

// ErrIsDirectory is returned when an input path names a directory.
var ErrIsDirectory = errors.New("is a directory")

// OpenInputFile opens the input for reading. The caller must close it.
func OpenInputFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: path, Err: ErrIsDirectory}
	}

	return f, nil
}

// CreateOutputFile creates the output, truncating any existing content.
// The caller must close it.
func CreateOutputFile(path string) (*os.File, error) {
	return os.Create(path)
}

// =============================================================================
// FORMAT DETECTION
// =============================================================================

// Format names returned by DetectFormat. They match the config values.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// spreadsheetExtensions are read with the XLSX reader under "auto".
var spreadsheetExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// DetectFormat resolves the input format for a path.
//
// PARAMETERS:
//   - path: The input file path.
//   - configured: "csv", "xlsx", or "auto"/"" to decide by extension.
//
// RETURNS:
//   - "xlsx" for spreadsheet extensions under auto, else "csv"; an explicit
//     setting is returned unchanged.
func DetectFormat(path, configured string) string {
	switch configured {
	case FormatCSV, FormatXLSX:
		return configured
	}

	if spreadsheetExtensions[strings.ToLower(filepath.Ext(path))] {
		return FormatXLSX
	}
	return FormatCSV
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
