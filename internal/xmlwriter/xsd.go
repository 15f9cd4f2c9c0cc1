// =============================================================================
// CSV to XML Converter - XSD Generation
// =============================================================================
//
// GenerateXSD describes, as an XML Schema, the document the writer produces
// for a given tag-name list. Every field is typed xs:string and required,
// because every record carries one element per header column.
//
// The schema is only meaningful when the tag names are valid XML names; the
// validation package reports the ones that are not.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"fmt"
)

// GenerateXSD creates an XSD schema for the given tag names.
//
// PARAMETERS:
//   - tags: The derived tag-name list, in column order.
//   - opts: The writer options (element names).
//
// RETURNS:
//   - The XSD document as a byte slice.
func GenerateXSD(tags []string, opts Options) []byte {
	var buffer bytes.Buffer

	buffer.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">
`)

	// Root element definition.
	fmt.Fprintf(&buffer, `  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
        <xs:element ref="%s" minOccurs="0" maxOccurs="unbounded"/>
      </xs:sequence>
    </xs:complexType>
  </xs:element>

`, EscapeText(opts.RootElement), EscapeText(opts.RecordElement))

	// Record element definition.
	fmt.Fprintf(&buffer, `  <xs:element name="%s">
    <xs:complexType>
      <xs:sequence>
`, EscapeText(opts.RecordElement))

	for _, tag := range tags {
		fmt.Fprintf(&buffer, "        <xs:element name=\"%s\" type=\"xs:string\"/>\n", EscapeText(tag))
	}

	buffer.WriteString(`      </xs:sequence>
    </xs:complexType>
  </xs:element>

</xs:schema>
`)

	return buffer.Bytes()
}
