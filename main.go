// =============================================================================
// CSV to XML Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the csv2xml CLI application. It delegates
// command execution to the cmd package.
//
// USAGE:
//   csv2xml <input> <output>     - Convert a CSV (or XLSX) file to XML
//   csv2xml xsd <input> [output] - Generate an XML Schema for an input
//   csv2xml version              - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : Cobra command definitions
//   - internal/      : Conversion logic (not for external import)
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/csv2xml/cmd"
)

func main() {
	cmd.Execute()
}
