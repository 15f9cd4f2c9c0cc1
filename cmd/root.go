// =============================================================================
// CSV to XML Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command does
// the conversion itself; the other commands are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csv2xml <input> <output>)
//   ├── xsdCmd     (csv2xml xsd <input> [output])
//   └── versionCmd (csv2xml version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading the configuration file and applying flag overrides
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv2xml/internal/config"
	"github.com/ginjaninja78/csv2xml/internal/converter"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the optional configuration file.
// An empty value means the built-in defaults.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// Overrides for individual configuration values.
var (
	inputFormat string
	sheet       string
	encoding    string
	delimiter   string
	escape      bool
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd converts one input file into one XML document.
var rootCmd = &cobra.Command{
	Use:   "csv2xml <input> <output>",
	Short: "CSV to XML Converter - Turn a CSV file into a collection_info document",
	Long: `csv2xml reads a CSV file whose first row holds the column headers and
writes an XML document with one <collection> element per data row. Each
column becomes a child element named after its header, with spaces replaced
by underscores. Cell text is copied as-is unless --escape is given.

Spreadsheets (.xlsx) are read the same way, using the first sheet unless
--sheet names another.

Example Usage:
  csv2xml data.csv data.xml
  csv2xml --escape data.csv data.xml
  csv2xml --config csv2xml.yaml report.xlsx report.xml
  csv2xml xsd data.csv data.xsd`,

	Args: cobra.ExactArgs(2),

	// Errors are printed once by Execute.
	SilenceUsage:  true,
	SilenceErrors: true,

	RunE: runConvert,
}

// runConvert is the main function for the root command.
func runConvert(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg).With("run_id", uuid.NewString())

	result, err := converter.New(cfg, logger).Convert(inputPath, outputPath)
	if err != nil {
		// Execute prints the error itself; this record only adds run detail.
		logger.Debug("conversion failed",
			"input", inputPath,
			"output", outputPath,
			"rows", result.RowsWritten,
			"error", err,
		)
		return err
	}

	return nil
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadConfig reads the configuration file and applies any flags the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.InputFormat = inputFormat
	}
	if flags.Changed("sheet") {
		cfg.XLSX.Sheet = sheet
	}
	if flags.Changed("encoding") {
		cfg.CSV.Encoding = encoding
	}
	if flags.Changed("delimiter") {
		cfg.CSV.Delimiter = delimiter
	}
	if flags.Changed("escape") {
		cfg.Output.EscapeValues = escape
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// newLogger builds the run logger. --verbose wins over log_level.
func newLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return converter.NewLogger(cmd.ErrOrStderr(), level)
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to an optional YAML configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVar(&inputFormat, "format", config.FormatAuto, "Input format: auto, csv or xlsx")
	rootCmd.PersistentFlags().StringVar(&sheet, "sheet", "", "Worksheet to read from an .xlsx input (default: first sheet)")
	rootCmd.PersistentFlags().StringVar(&encoding, "encoding", "", "Character encoding of CSV input, e.g. windows-1252")
	rootCmd.PersistentFlags().StringVar(&delimiter, "delimiter", config.DefaultDelimiter, "CSV field delimiter (a single character, or tab, pipe, semicolon)")

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	rootCmd.Flags().BoolVar(&escape, "escape", false, "Replace & < > \" ' in cell text with XML entities")
}
