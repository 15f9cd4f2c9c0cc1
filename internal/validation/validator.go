// =============================================================================
// CSV to XML Converter - Advisory Inspection
// =============================================================================
//
// The converter never rewrites tag names and, by default, never escapes cell
// text. Both choices can produce a document that is not well-formed. This
// module spots those cases and reports them so they can be logged. It never
// changes what gets written and never stops a run.
//
// CHECKS:
//   Header level:
//     - invalid_name   : tag is not a valid XML element name
//     - reserved_name  : tag starts with "xml" in any case
//     - duplicate_name : tag repeats an earlier column's tag
//   Record level (only when escaping is off):
//     - unescaped_markup : cell contains '<', '>' or '&'
//       Reported once per column, for the first row that shows it.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// =============================================================================
// ISSUE TYPES
// =============================================================================

// Rule names reported in Issue.Rule.
const (
	RuleInvalidName     = "invalid_name"
	RuleReservedName    = "reserved_name"
	RuleDuplicateName   = "duplicate_name"
	RuleUnescapedMarkup = "unescaped_markup"
)

// Issue is a single advisory finding.
type Issue struct {
	// Rule is the check that produced the issue.
	Rule string

	// Column is the zero-based column index.
	Column int

	// Row is the 1-based input row number; 1 is the header.
	Row int

	// Field is the tag name of the column.
	Field string

	// Value is the offending text (the tag itself for header issues).
	Value string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *Issue) Error() string {
	return fmt.Sprintf("[WARNING] Row %d, Column %d, Field '%s': %s (value: '%s')",
		e.Row,
		e.Column+1,
		e.Field,
		e.Message,
		e.Value,
	)
}

// =============================================================================
// INSPECTOR
// =============================================================================

// Inspector accumulates per-run state so each markup problem is reported
// once per column.
type Inspector struct {
	escaping bool
	tags     []string
	flagged  map[int]bool
}

// NewInspector creates an Inspector. With escaping on, cell text is safe and
// record inspection reports nothing.
func NewInspector(escaping bool) *Inspector {
	return &Inspector{
		escaping: escaping,
		flagged:  make(map[int]bool),
	}
}

// InspectHeader checks the derived tag names.
func (in *Inspector) InspectHeader(tags []string) []*Issue {
	in.tags = tags

	var issues []*Issue
	seen := make(map[string]int, len(tags))

	for col, tag := range tags {
		if !IsXMLName(tag) {
			issues = append(issues, &Issue{
				Rule:    RuleInvalidName,
				Column:  col,
				Row:     1,
				Field:   tag,
				Value:   tag,
				Message: "tag is not a valid XML element name",
			})
		} else if strings.HasPrefix(strings.ToLower(tag), "xml") {
			issues = append(issues, &Issue{
				Rule:    RuleReservedName,
				Column:  col,
				Row:     1,
				Field:   tag,
				Value:   tag,
				Message: "names starting with \"xml\" are reserved",
			})
		}

		if first, dup := seen[tag]; dup {
			issues = append(issues, &Issue{
				Rule:    RuleDuplicateName,
				Column:  col,
				Row:     1,
				Field:   tag,
				Value:   tag,
				Message: fmt.Sprintf("tag repeats column %d", first+1),
			})
		} else {
			seen[tag] = col
		}
	}

	return issues
}

// InspectRecord checks the cells of one data row that will be written.
//
// PARAMETERS:
//   - row: The 1-based input row number.
//   - record: The row's fields.
func (in *Inspector) InspectRecord(row int, record []string) []*Issue {
	if in.escaping {
		return nil
	}

	var issues []*Issue
	for col, tag := range in.tags {
		if col >= len(record) || in.flagged[col] {
			continue
		}
		if strings.ContainsAny(record[col], "<>&") {
			in.flagged[col] = true
			issues = append(issues, &Issue{
				Rule:    RuleUnescapedMarkup,
				Column:  col,
				Row:     row,
				Field:   tag,
				Value:   record[col],
				Message: "value contains markup characters and is written unescaped",
			})
		}
	}

	return issues
}

// =============================================================================
// NAME CHECKS
// =============================================================================

// IsXMLName reports whether s is usable as an element name: a letter or
// underscore followed by letters, digits, '-', '.', '_' or combining marks.
// Colons are rejected since namespaces are not produced.
func IsXMLName(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isNameStart(r) {
				return false
			}
			continue
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) ||
		r == '-' || r == '.' ||
		unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) ||
		r == '·'
}
