package csv

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func parse(t *testing.T, opt Options, in string) ([]string, [][]string) {
	t.Helper()
	s, err := NewParser(opt).Parse(context.Background(), strings.NewReader(in))
	require.NoError(t, err)
	return s.Header, s.Rows
}

func TestParse_KeepsCellsAsText(t *testing.T) {
	h, rows := parse(t, Options{}, "TAG NO,CT,SD PCS\n00123,1.050,007\n")

	assert.Equal(t, []string{"TAG NO", "CT", "SD PCS"}, h)
	assert.Equal(t, [][]string{{"00123", "1.050", "007"}}, rows)
}

func TestParse_HeaderBOMAndWhitespace(t *testing.T) {
	h, _ := parse(t, Options{}, "\uFEFF TAG NO ,METAL\u00a0WT.\nR1,2\n")
	assert.Equal(t, []string{"TAG NO", "METAL WT."}, h)
}

func TestParse_RaggedRowsArePaddedOrTruncated(t *testing.T) {
	_, rows := parse(t, Options{}, "a,b,c\n1\n1,2,3,4\n,,\n")

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "", ""}, rows[0])
	assert.Equal(t, []string{"1", "2", "3"}, rows[1])
	assert.Equal(t, []string{"", "", ""}, rows[2])
}

func TestParse_BlankLinesSkipped(t *testing.T) {
	_, rows := parse(t, Options{}, "a,b\n\n1,2\n\n3,4\n")
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}}, rows)
}

func TestParse_CustomComma(t *testing.T) {
	h, rows := parse(t, Options{Comma: ';'}, "a;b\n\"x;y\";2\n")
	assert.Equal(t, []string{"a", "b"}, h)
	assert.Equal(t, [][]string{{"x;y", "2"}}, rows)
}

func TestParse_LazyQuotesByDefault(t *testing.T) {
	_, rows := parse(t, Options{}, "SIZE,b\n16\",x\n")
	assert.Equal(t, [][]string{{`16"`, "x"}}, rows)

	_, err := NewParser(Options{StrictQuotes: true}).Parse(context.Background(), strings.NewReader("a\nx\"y\n"))
	assert.Error(t, err)
}

func TestParse_HeaderOnly(t *testing.T) {
	h, rows := parse(t, Options{}, "a,b\n")
	assert.Equal(t, []string{"a", "b"}, h)
	assert.Empty(t, rows)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := NewParser(Options{}).Parse(context.Background(), strings.NewReader(""))
	assert.ErrorContains(t, err, "empty input")
}

func TestDecode(t *testing.T) {
	utf16le, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("ORIGIN\nBrésil\n")
	require.NoError(t, err)
	utf16be, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String("ORIGIN\nBrésil\n")
	require.NoError(t, err)
	cp1252, err := charmap.Windows1252.NewEncoder().String("ORIGIN\nBrésil €\n")
	require.NoError(t, err)

	tests := []struct {
		name     string
		in       string
		want     string
		wantName string
		force    string
	}{
		{"utf8", "ORIGIN\nBrésil\n", "ORIGIN\nBrésil\n", EncUTF8, ""},
		{"utf8_bom", "\xEF\xBB\xBFa\n", "a\n", EncUTF8BOM, ""},
		{"utf16le", utf16le, "ORIGIN\nBrésil\n", EncUTF16LE, ""},
		{"utf16be", utf16be, "ORIGIN\nBrésil\n", EncUTF16BE, ""},
		{"cp1252_detected", cp1252, "ORIGIN\nBrésil €\n", EncWindows1252, ""},
		{"latin1_forced", "Br\xe9sil", "Brésil", EncLatin1, "latin-1"},
		{"utf8_forced_strips_bom", "\xEF\xBB\xBFa", "a", EncUTF8, "UTF-8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, name, err := Decode([]byte(tt.in), tt.force)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestParse_Windows1252Input(t *testing.T) {
	in, err := charmap.Windows1252.NewEncoder().String("ORIGIN,STONE TYPE\nBrésil,Ruby\n")
	require.NoError(t, err)

	_, rows := parse(t, Options{}, in)
	assert.Equal(t, [][]string{{"Brésil", "Ruby"}}, rows)
}

func TestParse_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b strings.Builder
	b.WriteString("a\n")
	for i := 0; i < 3000; i++ {
		b.WriteString("x\n")
	}
	_, err := NewParser(Options{}).Parse(ctx, strings.NewReader(b.String()))
	assert.ErrorIs(t, err, context.Canceled)
}
