// =============================================================================
// CSV to XML Converter - Record Reader
// =============================================================================
//
// recordReader splits newline-normalized text into records. Its rules are
// those of the common "excel" CSV dialect as most CSV tooling reads it:
//
//   - A blank line is a record with no fields.
//   - A field starting with '"' is quoted: delimiters and newlines inside it
//     are literal, and '""' stands for one '"'.
//   - Text following the closing quote of a field is appended to that field
//     ("x"y reads as xy). In strict mode it is an error.
//   - A '"' anywhere else is an ordinary character.
//   - A quoted field still open at end of input keeps what was read. In strict
//     mode it is an error.
//   - No field may exceed MaxFieldSize characters.
//
// Input must already have every line terminator turned into "\n"; see
// newlineNormalizer.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxFieldSize is the longest field, in characters, a record may carry.
const MaxFieldSize = 131072

// Record-level parse failures.
var (
	// ErrTextAfterQuote is reported in strict mode for text between a closing
	// quote and the next delimiter.
	ErrTextAfterQuote = errors.New("delimiter expected after closing quote")

	// ErrUnterminatedQuote is reported in strict mode when the input ends
	// inside a quoted field.
	ErrUnterminatedQuote = errors.New("unexpected end of data inside quoted field")

	// ErrFieldTooLarge is reported when a field exceeds MaxFieldSize.
	ErrFieldTooLarge = fmt.Errorf("field larger than field limit (%d)", MaxFieldSize)
)

type parseState int

const (
	startRecord parseState = iota
	startField
	inField
	inQuotedField
	quoteInQuotedField
	eatNewline
)

const quoteChar = '"'

type recordReader struct {
	r      *bufio.Reader
	comma  rune
	strict bool

	// line is the number of input lines consumed so far.
	line int

	state    parseState
	fields   []string
	field    []byte
	fieldLen int
}

func newRecordReader(r io.Reader, comma rune, strict bool) *recordReader {
	return &recordReader{
		r:      bufio.NewReader(r),
		comma:  comma,
		strict: strict,
	}
}

// Read returns the next record, or io.EOF when the input is exhausted.
// The returned slice is never reused.
func (rr *recordReader) Read() ([]string, error) {
	rr.state = startRecord
	rr.fields = []string{}
	rr.field = rr.field[:0]
	rr.fieldLen = 0

	for {
		line, err := rr.r.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}

		if line == "" {
			// End of input.
			if rr.state == startRecord {
				return nil, io.EOF
			}
			if rr.strict {
				return nil, fmt.Errorf("line %d: %w", rr.line, ErrUnterminatedQuote)
			}
			rr.saveField()
			rr.state = startRecord
			return rr.fields, nil
		}

		rr.line++
		if perr := rr.processLine(line); perr != nil {
			return nil, fmt.Errorf("line %d: %w", rr.line, perr)
		}

		if rr.state == startRecord {
			return rr.fields, nil
		}
	}
}

// processLine feeds one line, then the end-of-line marker, to the state
// machine. Bytes that are not valid UTF-8 are carried into fields unchanged.
func (rr *recordReader) processLine(line string) error {
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		if err := rr.processChar(r, line[i:i+size]); err != nil {
			return err
		}
		i += size
	}
	return rr.endOfLine()
}

func (rr *recordReader) processChar(c rune, raw string) error {
	switch rr.state {
	case startRecord:
		if c == '\n' {
			// Blank line: the record has no fields.
			rr.state = eatNewline
			return nil
		}
		rr.state = startField
		fallthrough

	case startField:
		switch c {
		case '\n':
			rr.saveField()
			rr.state = eatNewline
		case quoteChar:
			rr.state = inQuotedField
		case rr.comma:
			rr.saveField()
		default:
			rr.state = inField
			return rr.addChar(raw)
		}

	case inField:
		switch c {
		case '\n':
			rr.saveField()
			rr.state = eatNewline
		case rr.comma:
			rr.saveField()
			rr.state = startField
		default:
			return rr.addChar(raw)
		}

	case inQuotedField:
		if c == quoteChar {
			rr.state = quoteInQuotedField
			return nil
		}
		return rr.addChar(raw)

	case quoteInQuotedField:
		switch c {
		case quoteChar:
			rr.state = inQuotedField
			return rr.addChar(raw)
		case rr.comma:
			rr.saveField()
			rr.state = startField
		case '\n':
			rr.saveField()
			rr.state = eatNewline
		default:
			if rr.strict {
				return ErrTextAfterQuote
			}
			rr.state = inField
			return rr.addChar(raw)
		}

	case eatNewline:
		// Only the end-of-line marker can follow a terminator.
	}

	return nil
}

// endOfLine handles the marker that follows every line read, including a
// last line that has no terminator.
func (rr *recordReader) endOfLine() error {
	switch rr.state {
	case startRecord, eatNewline:
		rr.state = startRecord
	case startField, inField, quoteInQuotedField:
		rr.saveField()
		rr.state = startRecord
	case inQuotedField:
		// The newline, if any, is already part of the field.
	}
	return nil
}

func (rr *recordReader) addChar(raw string) error {
	if rr.fieldLen >= MaxFieldSize {
		return ErrFieldTooLarge
	}
	rr.field = append(rr.field, raw...)
	rr.fieldLen++
	return nil
}

func (rr *recordReader) saveField() {
	rr.fields = append(rr.fields, string(rr.field))
	rr.field = rr.field[:0]
	rr.fieldLen = 0
}
