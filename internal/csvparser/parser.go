// =============================================================================
// CSV to XML Converter - CSV Parser Module
// =============================================================================
//
// This module streams records out of a comma-separated input. Records are
// handed out one at a time, positionally, exactly as the reader produced them:
// no trimming, no header lookup, no padding. Rows of any width are accepted
// here, including the empty row a blank line produces; deciding what a short
// row means is the converter's job.
//
// READ PIPELINE:
//   raw bytes -> charset decoder (optional) -> newline normalizer -> records
//
// FEATURES:
//   - Configurable delimiter (comma, tab, pipe, semicolon, any single rune)
//   - Optional input decoding from a named character set
//   - "\r\n" and lone "\r" line ends read as "\n"
//   - Lenient quote handling by default, strict on request
//
// =============================================================================

package csvparser

import (
	"errors"
	"fmt"
	"io"

	"github.com/ginjaninja78/csv2xml/internal/config"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// ErrUnsupportedEncoding is returned when the configured encoding label is
// not known.
var ErrUnsupportedEncoding = errors.New("unsupported input encoding")

// =============================================================================
// STREAMING PARSER
// =============================================================================

// StreamingParser reads one CSV record per call to Next.
//
// USAGE:
//   parser, err := NewStreamingParser(file, settings)
//   if err != nil {
//       return err
//   }
//
//   for parser.Next() {
//       record := parser.Record()
//       // Process the record...
//   }
//
//   if err := parser.Err(); err != nil {
//       return err
//   }
type StreamingParser struct {
	reader    *recordReader
	current   []string
	rowNumber int
	err       error
}

// NewStreamingParser wraps r in a CSV reader configured from settings.
//
// PARAMETERS:
//   - r: The raw input. The caller owns it and closes it.
//   - settings: The CSV parsing settings.
//
// RETURNS:
//   - A pointer to the StreamingParser.
//   - An error if the delimiter or encoding cannot be used.
func NewStreamingParser(r io.Reader, settings config.CSVSettings) (*StreamingParser, error) {
	comma, err := settings.Comma()
	if err != nil {
		return nil, err
	}

	decoded, err := decode(r, settings.Encoding)
	if err != nil {
		return nil, err
	}

	normalized := transform.NewReader(decoded, newlineNormalizer{})

	return &StreamingParser{
		reader: newRecordReader(normalized, comma, !settings.Lazy()),
	}, nil
}

// decode wraps r in a decoder for the named encoding.
// An empty label leaves the bytes untouched.
func decode(r io.Reader, label string) (io.Reader, error) {
	if label == "" {
		return r, nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, label)
	}

	// UTF-8 input needs no transform.
	if name == "utf-8" {
		return r, nil
	}

	return transform.NewReader(r, enc.NewDecoder()), nil
}

// Next advances to the next record. Returns false at end of input or on error.
func (p *StreamingParser) Next() bool {
	if p.err != nil {
		return false
	}

	record, err := p.reader.Read()
	if err == io.EOF {
		p.current = nil
		return false
	}
	if err != nil {
		p.err = fmt.Errorf("error reading record %d: %w", p.rowNumber+1, err)
		p.current = nil
		return false
	}

	p.rowNumber++
	p.current = record
	return true
}

// Record returns the current record.
func (p *StreamingParser) Record() []string {
	return p.current
}

// RowNumber returns the number of records read so far (1-indexed).
func (p *StreamingParser) RowNumber() int {
	return p.rowNumber
}

// Err returns any error that occurred during parsing.
func (p *StreamingParser) Err() error {
	return p.err
}
