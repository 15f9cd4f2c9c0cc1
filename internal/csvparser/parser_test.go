package csvparser

import (
	"strings"
	"testing"

	"github.com/ginjaninja78/csv2xml/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func readAll(t *testing.T, input string, settings config.CSVSettings) ([][]string, error) {
	t.Helper()
	parser, err := NewStreamingParser(strings.NewReader(input), settings)
	require.NoError(t, err)

	var records [][]string
	for parser.Next() {
		records = append(records, parser.Record())
	}
	return records, parser.Err()
}

func TestStreamingParserKeepsFieldsVerbatim(t *testing.T) {
	input := "name,favorite color\n Alice , blue \n\"Bob, Jr.\",\"say \"\"hi\"\"\"\n"

	records, err := readAll(t, input, config.Default().CSV)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"name", "favorite color"},
		{" Alice ", " blue "},
		{"Bob, Jr.", `say "hi"`},
	}, records)
}

func TestStreamingParserAcceptsRaggedRows(t *testing.T) {
	records, err := readAll(t, "a,b,c\n1,2\n1,2,3,4\n", config.Default().CSV)
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"a", "b", "c"}, {"1", "2"}, {"1", "2", "3", "4"}}, records)
}

func TestStreamingParserQuotedNewline(t *testing.T) {
	records, err := readAll(t, "note\n\"line one\nline two\"\n", config.Default().CSV)
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, "line one\nline two", records[1][0])
}

func TestStreamingParserDialect(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  [][]string
	}{
		{"blank line", "a,b\n1,2\n\n3,4\n", [][]string{{"a", "b"}, {"1", "2"}, {}, {"3", "4"}}},
		{"trailing blank line", "a,b\n1,2\n\n", [][]string{{"a", "b"}, {"1", "2"}, {}}},
		{"only blank lines", "\n\n", [][]string{{}, {}}},
		{"cr line ends", "a,b\r1,2\r3,4\r", [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}},
		{"crlf line ends", "a,b\r\n1,2\r\n", [][]string{{"a", "b"}, {"1", "2"}}},
		{"mixed line ends", "a\r\n1\r2\n3", [][]string{{"a"}, {"1"}, {"2"}, {"3"}}},
		{"no final newline", "a,b\n1,2", [][]string{{"a", "b"}, {"1", "2"}}},
		{"text after closing quote", "a,b\n\"x\"y,2\n", [][]string{{"a", "b"}, {"xy", "2"}}},
		{"quote after trailing text", "a\n\"x\"y\"z\n", [][]string{{"a"}, {"xy\"z"}}},
		{"quoted newline", "a,b\n\"multi\nline\",2\n", [][]string{{"a", "b"}, {"multi\nline", "2"}}},
		{"quoted crlf", "a\n\"l1\r\nl2\"\n", [][]string{{"a"}, {"l1\nl2"}}},
		{"doubled quotes", "a,b\n\"he said \"\"hi\"\"\",2\n", [][]string{{"a", "b"}, {`he said "hi"`, "2"}}},
		{"unterminated quote", "a\n\"open\n", [][]string{{"a"}, {"open\n"}}},
		{"bare quote", "a,b\nx\"y,2\n", [][]string{{"a", "b"}, {`x"y`, "2"}}},
		{"empty fields", "a,b\n,\n", [][]string{{"a", "b"}, {"", ""}}},
		{"trailing delimiter", "a,b\n1,\n", [][]string{{"a", "b"}, {"1", ""}}},
		{"empty quoted", "a,b\n\"\",\"\"\n", [][]string{{"a", "b"}, {"", ""}}},
		{"space before quote", "a,b\n \"x\",2\n", [][]string{{"a", "b"}, {` "x"`, "2"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			records, err := readAll(t, tc.input, config.Default().CSV)
			require.NoError(t, err)
			assert.Equal(t, tc.want, records)
		})
	}
}

func TestStreamingParserStrictQuotes(t *testing.T) {
	strict := false
	settings := config.CSVSettings{LazyQuotes: &strict}

	_, err := readAll(t, "a,b\n\"x\"y,2\n", settings)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTextAfterQuote)
	assert.Contains(t, err.Error(), "record 2")

	_, err = readAll(t, "a\n\"open\n", settings)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)

	// A quote inside an unquoted field is fine even when strict.
	records, err := readAll(t, "a,b\nx\"y,2\n", settings)
	require.NoError(t, err)
	assert.Equal(t, []string{`x"y`, "2"}, records[1])
}

func TestStreamingParserFieldLimit(t *testing.T) {
	atLimit := strings.Repeat("x", MaxFieldSize)
	records, err := readAll(t, "a\n"+atLimit+"\n", config.Default().CSV)
	require.NoError(t, err)
	assert.Len(t, records[1][0], MaxFieldSize)

	_, err = readAll(t, "a\n"+atLimit+"x\n", config.Default().CSV)
	assert.ErrorIs(t, err, ErrFieldTooLarge)
}

func TestStreamingParserKeepsInvalidUTF8(t *testing.T) {
	records, err := readAll(t, "a\ncaf\xe9\n", config.Default().CSV)
	require.NoError(t, err)
	assert.Equal(t, "caf\xe9", records[1][0])
}

func TestNewlineNormalizer(t *testing.T) {
	got, _, err := transform.String(newlineNormalizer{}, "a\r\nb\rc\nd\r\r\ne\r")
	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\nd\n\ne\n", got)
}

func TestStreamingParserDelimiter(t *testing.T) {
	records, err := readAll(t, "a|b\n1|2\n", config.CSVSettings{Delimiter: "pipe"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, records)
}

func TestStreamingParserDecodesLatin1(t *testing.T) {
	// "café" in windows-1252.
	input := "drink\ncaf\xe9\n"

	records, err := readAll(t, input, config.CSVSettings{Encoding: "windows-1252"})
	require.NoError(t, err)
	assert.Equal(t, "café", records[1][0])
}

func TestStreamingParserDecodesLatin9(t *testing.T) {
	input, err := charmap.ISO8859_15.NewEncoder().String("price,note\n5€,déjà vu\n")
	require.NoError(t, err)

	records, err := readAll(t, input, config.CSVSettings{Encoding: "iso-8859-15"})
	require.NoError(t, err)
	assert.Equal(t, []string{"5€", "déjà vu"}, records[1])
}

func TestStreamingParserRejectsUnknownEncoding(t *testing.T) {
	_, err := NewStreamingParser(strings.NewReader(""), config.CSVSettings{Encoding: "klingon-8"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedEncoding)
}

func TestStreamingParserRowNumber(t *testing.T) {
	parser, err := NewStreamingParser(strings.NewReader("h\n1\n2\n"), config.Default().CSV)
	require.NoError(t, err)

	for parser.Next() {
	}
	require.NoError(t, parser.Err())
	assert.Equal(t, 3, parser.RowNumber())
	assert.Nil(t, parser.Record())
}
