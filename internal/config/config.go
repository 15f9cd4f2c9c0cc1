// =============================================================================
// CSV to XML Converter - Configuration Module
// =============================================================================
//
// This module loads the optional YAML configuration file. Every setting has a
// default that produces the standard collection_info layout, so running the
// converter without a configuration file is always valid.
//
// CONFIGURATION FILE (all keys optional):
//   input_format: auto
//   csv:
//     delimiter: ","
//     encoding: ""
//     lazy_quotes: true
//   xlsx:
//     sheet: ""
//   output:
//     root_element: collection_info
//     record_element: collection
//     indent: "    "
//     escape_values: false
//   log_level: warn
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultRootElement wraps the whole document.
	DefaultRootElement = "collection_info"

	// DefaultRecordElement wraps one data row.
	DefaultRecordElement = "collection"

	// DefaultIndent prefixes every field line.
	DefaultIndent = "    "

	// DefaultDelimiter separates fields in CSV input.
	DefaultDelimiter = ","
)

// Input formats accepted by InputFormat.
const (
	FormatAuto = "auto"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds every tunable of a conversion run.
type Config struct {
	// InputFormat selects the row source: "auto" picks by file extension.
	InputFormat string `yaml:"input_format"`

	// CSV contains settings for comma-separated input.
	CSV CSVSettings `yaml:"csv"`

	// XLSX contains settings for spreadsheet input.
	XLSX XLSXSettings `yaml:"xlsx"`

	// Output controls the shape of the generated document.
	Output OutputSettings `yaml:"output"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "warn" (quiet unless something needs attention)
	LogLevel string `yaml:"log_level"`
}

// CSVSettings contains settings for parsing CSV files.
type CSVSettings struct {
	// Delimiter is the single character separating fields.
	// Accepts the aliases "tab", "pipe" and "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// Encoding is the character encoding of the input, as an IANA or WHATWG
	// label such as "windows-1252". Empty means the bytes are used as-is.
	Encoding string `yaml:"encoding"`

	// LazyQuotes keeps text that follows a closing quote ("x"y reads as xy)
	// and keeps a quoted field left open at end of input. When false both
	// are read errors.
	// Default: true
	LazyQuotes *bool `yaml:"lazy_quotes"`
}

// XLSXSettings contains settings for spreadsheet input.
type XLSXSettings struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `yaml:"sheet"`
}

// OutputSettings controls the generated document.
type OutputSettings struct {
	RootElement   string `yaml:"root_element"`
	RecordElement string `yaml:"record_element"`

	// Indent prefixes every field line. A nil value means DefaultIndent, so
	// an explicit empty string disables indentation.
	Indent *string `yaml:"indent"`

	// EscapeValues replaces markup characters in cell text with entities.
	// Off by default: cell text is written through untouched.
	EscapeValues bool `yaml:"escape_values"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration that produces the standard layout.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path returns
//     the defaults without touching the filesystem.
//
// RETURNS:
//   - A pointer to the Config struct.
//   - An error if the file cannot be read, parsed or validated.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration bytes, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.InputFormat == "" {
		cfg.InputFormat = FormatAuto
	}
	if cfg.CSV.Delimiter == "" {
		cfg.CSV.Delimiter = DefaultDelimiter
	}
	if cfg.CSV.LazyQuotes == nil {
		lazy := true
		cfg.CSV.LazyQuotes = &lazy
	}
	if cfg.Output.RootElement == "" {
		cfg.Output.RootElement = DefaultRootElement
	}
	if cfg.Output.RecordElement == "" {
		cfg.Output.RecordElement = DefaultRecordElement
	}
	if cfg.Output.Indent == nil {
		indent := DefaultIndent
		cfg.Output.Indent = &indent
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
}

// Validate checks the configuration for values the converter cannot use.
func (c *Config) Validate() error {
	switch c.InputFormat {
	case FormatAuto, FormatCSV, FormatXLSX:
	default:
		return fmt.Errorf("unknown input_format %q (want auto, csv or xlsx)", c.InputFormat)
	}

	if _, err := c.CSV.Comma(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Output.RootElement) == "" {
		return fmt.Errorf("output.root_element must not be blank")
	}
	if strings.TrimSpace(c.Output.RecordElement) == "" {
		return fmt.Errorf("output.record_element must not be blank")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}

	return nil
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Comma resolves the delimiter setting to the rune used by the CSV reader.
func (s CSVSettings) Comma() (rune, error) {
	switch s.Delimiter {
	case "", ",":
		return ',', nil
	case "\\t", "\t", "tab", "TAB":
		return '\t', nil
	case "|", "pipe", "PIPE":
		return '|', nil
	case ";", "semicolon", "SEMICOLON":
		return ';', nil
	}

	if utf8.RuneCountInString(s.Delimiter) != 1 {
		return 0, fmt.Errorf("csv.delimiter must be a single character, got %q", s.Delimiter)
	}

	r, _ := utf8.DecodeRuneInString(s.Delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("csv.delimiter %q is not allowed", s.Delimiter)
	}
	return r, nil
}

// Lazy reports whether stray quotes are tolerated.
func (s CSVSettings) Lazy() bool {
	return s.LazyQuotes == nil || *s.LazyQuotes
}

// IndentString returns the configured indent, falling back to DefaultIndent.
func (o OutputSettings) IndentString() string {
	if o.Indent == nil {
		return DefaultIndent
	}
	return *o.Indent
}
