package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsXMLName(t *testing.T) {
	testCases := []struct {
		name string
		want bool
	}{
		{"name", true},
		{"favorite_color", true},
		{"_private", true},
		{"a-b.c", true},
		{"café", true},
		{"x1", true},
		{"", false},
		{"1st", false},
		{"-dash", false},
		{"a/b", false},
		{"a<b", false},
		{"ns:tag", false},
		{"a\tb", false},
		{"bad\xff", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsXMLName(tc.name))
		})
	}
}

func TestInspectHeader(t *testing.T) {
	in := NewInspector(false)

	issues := in.InspectHeader([]string{"id", "2nd", "XmlData", "id", ""})

	rules := make([]string, 0, len(issues))
	for _, issue := range issues {
		rules = append(rules, issue.Rule)
	}
	assert.Equal(t, []string{RuleInvalidName, RuleReservedName, RuleDuplicateName, RuleInvalidName}, rules)

	dup := issues[2]
	assert.Equal(t, 3, dup.Column)
	assert.Contains(t, dup.Message, "column 1")
	assert.Contains(t, dup.Error(), "Row 1, Column 4, Field 'id'")
}

func TestInspectHeaderClean(t *testing.T) {
	assert.Empty(t, NewInspector(false).InspectHeader([]string{"name", "favorite_color"}))
}

func TestInspectRecordFlagsOncePerColumn(t *testing.T) {
	in := NewInspector(false)
	in.InspectHeader([]string{"a", "b"})

	issues := in.InspectRecord(2, []string{"x<y", "fine"})
	require.Len(t, issues, 1)
	assert.Equal(t, RuleUnescapedMarkup, issues[0].Rule)
	assert.Equal(t, 2, issues[0].Row)
	assert.Equal(t, "a", issues[0].Field)

	// Same column again: already reported.
	assert.Empty(t, in.InspectRecord(3, []string{"a&b", "ok"}))

	// New column.
	issues = in.InspectRecord(4, []string{"", "1 > 0"})
	require.Len(t, issues, 1)
	assert.Equal(t, "b", issues[0].Field)
}

func TestInspectRecordIgnoresShortAndExtraFields(t *testing.T) {
	in := NewInspector(false)
	in.InspectHeader([]string{"a", "b"})

	assert.Empty(t, in.InspectRecord(2, []string{"ok"}))
	assert.Empty(t, in.InspectRecord(3, []string{"ok", "ok", "<extra>"}))
}

func TestInspectRecordSilentWhenEscaping(t *testing.T) {
	in := NewInspector(true)
	in.InspectHeader([]string{"a"})

	assert.Empty(t, in.InspectRecord(2, []string{"<b>"}))
}
