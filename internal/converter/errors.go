package converter

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by Convert matches exactly one of these
// with errors.Is.
var (
	// ErrInputNotFound means the input path does not exist.
	ErrInputNotFound = errors.New("input not found")

	// ErrInputRead means the input exists but could not be opened or read.
	ErrInputRead = errors.New("input read failed")

	// ErrOutputWrite means the output could not be created, written or closed.
	ErrOutputWrite = errors.New("output write failed")

	// ErrRowShape means a data row has fewer fields than the header.
	ErrRowShape = errors.New("row shorter than header")
)

// RowShapeError reports a data row with fewer fields than the header.
// Rows with more fields are not an error; the extras are ignored.
type RowShapeError struct {
	// Row is the 1-based record number; the header is record 1.
	Row int

	// Fields is the number of fields the row has.
	Fields int

	// Want is the number of header columns.
	Want int
}

func (e *RowShapeError) Error() string {
	return fmt.Sprintf("%v: record %d has %d field(s), header has %d", ErrRowShape, e.Row, e.Fields, e.Want)
}

// Is makes errors.Is(err, ErrRowShape) match.
func (e *RowShapeError) Is(target error) bool {
	return target == ErrRowShape
}

func inputErr(kind error, path string, err error) error {
	return fmt.Errorf("%w: %s: %w", kind, path, err)
}

func outputErr(path string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrOutputWrite, path, err)
}
