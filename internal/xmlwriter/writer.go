// =============================================================================
// CSV to XML Converter - XML Writer Module
// =============================================================================
//
// This module emits the output document line by line. Nothing is built in
// memory: each call writes its lines straight to a buffered writer, so the
// document grows in lock-step with the input.
//
// XML STRUCTURE:
//
//   <?xml version="1.0"?>
//   <collection_info>                  <!-- Root element -->
//   <collection>                       <!-- One per data row -->
//       <name>Alice</name>             <!-- One per column -->
//       <favorite_color>blue</favorite_color>
//   </collection>
//   </collection_info>
//
// Record tags are not indented; field lines carry the configured indent.
// Every line, including the last, ends in "\n".
//
// TEXT HANDLING:
//   Cell text is written verbatim unless Escape is set. A value containing
//   '<', '&' or '>' therefore yields a document that is not well-formed.
//
// =============================================================================

package xmlwriter

import (
	"bufio"
	"bytes"
	"io"

	"github.com/ginjaninja78/csv2xml/internal/config"
)

// Declaration is the first line of every document.
const Declaration = `<?xml version="1.0"?>`

// =============================================================================
// WRITER OPTIONS
// =============================================================================

// Options controls element names, indentation and escaping.
type Options struct {
	// RootElement wraps the whole document.
	// Default: "collection_info"
	RootElement string

	// RecordElement wraps one data row.
	// Default: "collection"
	RecordElement string

	// Indent prefixes every field line.
	// Default: four spaces
	Indent string

	// Escape replaces markup characters in field text with entities.
	// Default: false
	Escape bool
}

// DefaultOptions returns the options that produce the standard layout.
func DefaultOptions() Options {
	return Options{
		RootElement:   config.DefaultRootElement,
		RecordElement: config.DefaultRecordElement,
		Indent:        config.DefaultIndent,
		Escape:        false,
	}
}

// OptionsFromConfig builds writer options from the output settings.
func OptionsFromConfig(out config.OutputSettings) Options {
	return Options{
		RootElement:   out.RootElement,
		RecordElement: out.RecordElement,
		Indent:        out.IndentString(),
		Escape:        out.EscapeValues,
	}
}

// =============================================================================
// WRITER
// =============================================================================

// Writer emits the document. The first write error is sticky: later calls
// do nothing and return it again.
type Writer struct {
	buf  *bufio.Writer
	opts Options
	err  error
}

// NewWriter wraps w. Call Flush when done.
func NewWriter(w io.Writer, opts Options) *Writer {
	return &Writer{
		buf:  bufio.NewWriter(w),
		opts: opts,
	}
}

// Begin writes the declaration and the root opening tag.
func (w *Writer) Begin() error {
	w.line(Declaration)
	w.openTag(w.opts.RootElement)
	w.newline()
	return w.err
}

// OpenRecord writes a record opening tag.
func (w *Writer) OpenRecord() error {
	w.openTag(w.opts.RecordElement)
	w.newline()
	return w.err
}

// WriteField writes one indented child element: <tag>value</tag>.
func (w *Writer) WriteField(tag, value string) error {
	w.write(w.opts.Indent)
	w.openTag(tag)
	if w.opts.Escape {
		w.write(EscapeText(value))
	} else {
		w.write(value)
	}
	w.closeTag(tag)
	w.newline()
	return w.err
}

// CloseRecord writes a record closing tag.
func (w *Writer) CloseRecord() error {
	w.closeTag(w.opts.RecordElement)
	w.newline()
	return w.err
}

// End writes the root closing tag and flushes.
func (w *Writer) End() error {
	w.closeTag(w.opts.RootElement)
	w.newline()
	return w.Flush()
}

// Flush pushes buffered bytes to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		// Push out whatever made it into the buffer before the failure.
		_ = w.buf.Flush()
		return w.err
	}
	if err := w.buf.Flush(); err != nil {
		w.err = err
	}
	return w.err
}

// Err returns the first write error, if any.
func (w *Writer) Err() error {
	return w.err
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func (w *Writer) write(s string) {
	if w.err != nil {
		return
	}
	if _, err := w.buf.WriteString(s); err != nil {
		w.err = err
	}
}

func (w *Writer) line(s string) {
	w.write(s)
	w.newline()
}

func (w *Writer) newline() {
	w.write("\n")
}

func (w *Writer) openTag(name string) {
	w.write("<")
	w.write(name)
	w.write(">")
}

func (w *Writer) closeTag(name string) {
	w.write("</")
	w.write(name)
	w.write(">")
}

// EscapeText escapes special characters for XML.
// Works on bytes so that input which is not valid UTF-8 passes through intact.
func EscapeText(s string) string {
	var buffer bytes.Buffer
	buffer.Grow(len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			buffer.WriteByte(c)
		}
	}

	return buffer.String()
}
