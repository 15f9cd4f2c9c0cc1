// =============================================================================
// CSV to XML Converter - XSD Command
// =============================================================================
//
// This file defines the 'xsd' command, which writes an XML Schema describing
// the document the converter would produce for an input's header row.
//
// COMMAND USAGE:
//   csv2xml xsd <input>            # schema on stdout
//   csv2xml xsd <input> <output>   # schema written to a file
//
// Only the first row of the input is read.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/csv2xml/internal/converter"
	"github.com/ginjaninja78/csv2xml/internal/xmlwriter"
)

// xsdCmd represents the 'xsd' command.
var xsdCmd = &cobra.Command{
	Use:   "xsd <input> [output]",
	Short: "Generate an XML Schema for an input's header row",
	Long: `Read the header row of a CSV or XLSX input and print an XML Schema
describing the document csv2xml would write for it. Element names follow
the configuration file, so the schema matches a run with the same --config.`,
	Args:          cobra.RangeArgs(1, 2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runXSD,
}

func runXSD(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg)

	tags, err := converter.New(cfg, logger).ReadTags(args[0])
	if err != nil {
		return err
	}
	logger.Debug("header read", "input", args[0], "tags", tags)

	schema := xmlwriter.GenerateXSD(tags, xmlwriter.OptionsFromConfig(cfg.Output))

	if len(args) == 1 {
		_, err = cmd.OutOrStdout().Write(schema)
		return err
	}

	if err := os.WriteFile(args[1], schema, 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}
	logger.Info("schema written", "output", args[1], "elements", len(tags))

	return nil
}

func init() {
	rootCmd.AddCommand(xsdCmd)
}
