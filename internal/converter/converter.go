// =============================================================================
// CSV to XML Converter - Converter Module
// =============================================================================
//
// This module contains the core conversion logic: one synchronous pass over
// the input rows, writing the output document as it goes.
//
// CONVERSION PIPELINE:
//   1. Open the input (CSV or XLSX row source)
//   2. Create or truncate the output
//   3. Write the declaration and root opening tag
//   4. Record 1 (header): derive the tag-name list
//   5. Every other record: write one record block, one field line per tag
//   6. Write the root closing tag and close the output
//
// FAILURE:
//   Any error aborts the run at once. Bytes already produced are flushed to
//   the output and left there; the root closing tag is not written. Both
//   files are closed on every path.
//
// =============================================================================

package converter

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"time"

	"github.com/ginjaninja78/csv2xml/internal/config"
	"github.com/ginjaninja78/csv2xml/internal/csvparser"
	"github.com/ginjaninja78/csv2xml/internal/validation"
	"github.com/ginjaninja78/csv2xml/internal/xlsxparser"
	"github.com/ginjaninja78/csv2xml/internal/xmlwriter"
	"github.com/ginjaninja78/csv2xml/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result describes a conversion. On failure it holds the counts reached
// before the error.
type Result struct {
	// InputFile is the path that was read.
	InputFile string

	// OutputFile is the path that was written.
	OutputFile string

	// Format is the row source used: "csv" or "xlsx".
	Format string

	// Columns is the number of header columns.
	Columns int

	// RowsWritten is the number of complete record blocks written.
	RowsWritten int

	// Issues is the number of advisory warnings logged.
	Issues int

	// Elapsed is the time taken by the conversion.
	Elapsed time.Duration
}

// RowReader yields input records one at a time.
type RowReader interface {
	Next() bool
	Record() []string
	Err() error
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter turns one tabular input into one document.
type Converter struct {
	cfg    *config.Config
	logger Logger
}

// New creates a Converter. A nil cfg means config.Default(); a nil logger
// discards log output.
func New(cfg *config.Config, logger Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Converter{
		cfg:    cfg,
		logger: logger,
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Convert reads inputPath and writes the document to outputPath.
//
// The input is opened before the output is created, so a missing input
// leaves no output file behind.
//
// RETURNS:
//   - A Result with the counts reached.
//   - An error matching ErrInputNotFound, ErrInputRead, ErrOutputWrite or
//     ErrRowShape.
func (c *Converter) Convert(inputPath, outputPath string) (result Result, err error) {
	start := time.Now()

	source, err := c.openSource(inputPath)
	if err != nil {
		return Result{InputFile: inputPath, OutputFile: outputPath}, err
	}
	defer source.close()

	c.logger.Info("converting", "input", inputPath, "output", outputPath, "format", source.format)
	if utils.FileExists(outputPath) {
		c.logger.Debug("output exists and will be overwritten", "output", outputPath)
	}

	out, err := utils.CreateOutputFile(outputPath)
	if err != nil {
		return Result{InputFile: inputPath, OutputFile: outputPath, Format: source.format}, outputErr(outputPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = outputErr(outputPath, cerr)
		}
	}()

	result, err = c.render(source.rows, out, inputPath, outputPath)
	result.InputFile = inputPath
	result.OutputFile = outputPath
	result.Format = source.format
	result.Elapsed = time.Since(start)
	if err != nil {
		return result, err
	}

	c.logger.Info("conversion complete",
		"rows", result.RowsWritten,
		"columns", result.Columns,
		"warnings", result.Issues,
		"elapsed", result.Elapsed,
	)

	return result, nil
}

// Render streams rows into out. It is Convert without the file handling.
func (c *Converter) Render(rows RowReader, out io.Writer) (Result, error) {
	return c.render(rows, out, "input", "output")
}

func (c *Converter) render(rows RowReader, out io.Writer, inputName, outputName string) (Result, error) {
	var result Result

	opts := xmlwriter.OptionsFromConfig(c.cfg.Output)
	w := xmlwriter.NewWriter(out, opts)
	inspector := validation.NewInspector(opts.Escape)

	if err := w.Begin(); err != nil {
		return result, outputErr(outputName, err)
	}

	var tags []string
	record := 0

	for rows.Next() {
		fields := rows.Record()
		record++

		if record == 1 {
			tags = DeriveTagNames(fields)
			result.Columns = len(tags)
			c.logger.Debug("header", "tags", tags)
			result.Issues += c.report(inspector.InspectHeader(tags))
			continue
		}

		result.Issues += c.report(inspector.InspectRecord(record, fields))

		if len(fields) > len(tags) {
			c.logger.Debug("ignoring extra fields", "record", record, "fields", len(fields), "columns", len(tags))
		}

		if err := writeRecord(w, tags, fields, record); err != nil {
			// Keep what was produced so far, including the partial block.
			_ = w.Flush()
			var shape *RowShapeError
			if errors.As(err, &shape) {
				return result, err
			}
			return result, outputErr(outputName, err)
		}
		result.RowsWritten++
	}

	if err := rows.Err(); err != nil {
		_ = w.Flush()
		return result, inputErr(ErrInputRead, inputName, err)
	}

	if err := w.End(); err != nil {
		return result, outputErr(outputName, err)
	}

	return result, nil
}

// writeRecord writes one record block. A row shorter than tags fails at the
// first missing position, after the lines before it were written.
func writeRecord(w *xmlwriter.Writer, tags, fields []string, record int) error {
	if err := w.OpenRecord(); err != nil {
		return err
	}

	for i, tag := range tags {
		if i >= len(fields) {
			return &RowShapeError{Row: record, Fields: len(fields), Want: len(tags)}
		}
		if err := w.WriteField(tag, fields[i]); err != nil {
			return err
		}
	}

	return w.CloseRecord()
}

// report logs advisory issues and returns how many there were.
func (c *Converter) report(issues []*validation.Issue) int {
	for _, issue := range issues {
		c.logger.Warn(issue.Message,
			"rule", issue.Rule,
			"record", issue.Row,
			"column", issue.Column+1,
			"field", issue.Field,
			"value", issue.Value,
		)
	}
	return len(issues)
}

// =============================================================================
// HEADER ONLY
// =============================================================================

// ReadTags opens inputPath and returns the tag-name list derived from its
// first record. An empty input yields an empty list.
func (c *Converter) ReadTags(inputPath string) ([]string, error) {
	source, err := c.openSource(inputPath)
	if err != nil {
		return nil, err
	}
	defer source.close()

	if !source.rows.Next() {
		if err := source.rows.Err(); err != nil {
			return nil, inputErr(ErrInputRead, inputPath, err)
		}
		return []string{}, nil
	}

	return DeriveTagNames(source.rows.Record()), nil
}

// =============================================================================
// ROW SOURCES
// =============================================================================

type rowSource struct {
	rows   RowReader
	format string
	close  func()
}

// openSource opens the input with the reader matching its format.
func (c *Converter) openSource(inputPath string) (*rowSource, error) {
	format := utils.DetectFormat(inputPath, c.cfg.InputFormat)

	switch format {
	case utils.FormatXLSX:
		parser, err := xlsxparser.Open(inputPath, c.cfg.XLSX)
		if err != nil {
			return nil, classifyOpenErr(inputPath, err)
		}
		return &rowSource{
			rows:   parser,
			format: format,
			close:  func() { _ = parser.Close() },
		}, nil

	default:
		f, err := utils.OpenInputFile(inputPath)
		if err != nil {
			return nil, classifyOpenErr(inputPath, err)
		}
		parser, err := csvparser.NewStreamingParser(f, c.cfg.CSV)
		if err != nil {
			f.Close()
			return nil, inputErr(ErrInputRead, inputPath, err)
		}
		return &rowSource{
			rows:   parser,
			format: format,
			close:  func() { _ = f.Close() },
		}, nil
	}
}

func classifyOpenErr(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return inputErr(ErrInputNotFound, path, err)
	}
	return inputErr(ErrInputRead, path, fmt.Errorf("open: %w", err))
}
