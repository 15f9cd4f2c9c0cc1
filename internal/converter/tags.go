package converter

import "strings"

// DeriveTagNames turns a header row into the tag-name list: each field with
// every ' ' replaced by '_'. Nothing else is normalized. The header slice is
// not modified.
func DeriveTagNames(header []string) []string {
	tags := make([]string, len(header))
	for i, field := range header {
		tags[i] = strings.ReplaceAll(field, " ", "_")
	}
	return tags
}
