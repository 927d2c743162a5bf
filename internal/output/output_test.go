package output

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gemmap/internal/parser/xlsx"
	"gemmap/pkg/records"
)

func sample() records.Table {
	return records.Table{
		Columns: []string{"uid", "sku", "price", "label"},
		Rows: []records.Record{
			{"uid": "1", "sku": "00123", "price": "1,050.00", "label": "Fast Shipping, Verified Partner", "extra": "dropped"},
			{"uid": "2", "sku": "R\"2\"", "label": "Fast Shipping, Verified Partner, New"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "CSV", sample()))

	want := "uid,sku,price,label\n" +
		"1,00123,\"1,050.00\",\"Fast Shipping, Verified Partner\"\n" +
		"2,\"R\"\"2\"\"\",,\"Fast Shipping, Verified Partner, New\"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records.Table{Columns: []string{"TAG NO", "CT"}}))
	assert.Equal(t, "TAG NO,CT\n", buf.String())
}

func TestWriteXLSX_RoundTripsAsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, sample()))

	s, err := xlsx.NewParser(xlsx.Options{}).Parse(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"uid", "sku", "price", "label"}, s.Header)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, []string{"1", "00123", "1,050.00", "Fast Shipping, Verified Partner"}, s.Rows[0])
	assert.Equal(t, "", s.Rows[1][2])
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	assert.ErrorContains(t, Write(&bytes.Buffer{}, "json", sample()), "unsupported format")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "upload.csv")
	require.NoError(t, WriteFile(p, FormatCSV, sample()))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), "00123")

	err = WriteFile(filepath.Join(dir, "missing", "upload.csv"), FormatCSV, sample())
	assert.ErrorContains(t, err, "create ")
}

func TestDigest(t *testing.T) {
	a := Digest(sample())
	assert.Len(t, a, 16)
	assert.Equal(t, a, Digest(sample()))

	changed := sample()
	changed.Rows[1]["price"] = "1"
	assert.NotEqual(t, a, Digest(changed))

	// cell boundaries are part of the fingerprint
	x := records.Table{Columns: []string{"a", "b"}, Rows: []records.Record{{"a": "1,", "b": ""}}}
	y := records.Table{Columns: []string{"a", "b"}, Rows: []records.Record{{"a": "1", "b": ","}}}
	assert.NotEqual(t, Digest(x), Digest(y))
}
