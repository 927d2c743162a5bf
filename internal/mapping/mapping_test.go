package mapping

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"gemmap/internal/schema"
	"gemmap/pkg/records"
)

func TestIdentity(t *testing.T) {
	id := Identity()
	assert.Len(t, id, len(schema.VendorFields))
	for _, f := range schema.VendorFields {
		assert.Equal(t, f, id.Column(f))
	}
}

func TestFromSheet(t *testing.T) {
	s := records.Sheet{
		Header: []string{"expected_field", "vendor_column"},
		Rows: [][]string{
			{"CT", "Carat"},
			{"TAG NO", " Stock # "},
			{"CLR", ""},
			{"", "Ignored"},
			{"NOT A FIELD", "Whatever"},
		},
	}
	tbl, ok := FromSheet(s)
	require.True(t, ok)

	assert.Equal(t, "Carat", tbl.Column(schema.FieldCarat))
	assert.Equal(t, "Stock #", tbl.Column(schema.FieldTagNo))
	assert.Equal(t, "CLR", tbl.Column(schema.FieldColor))
	assert.Equal(t, "SHAPE", tbl.Column(schema.FieldShape))
}

func TestFromSheet_CleansNamesLikeHeaders(t *testing.T) {
	s := records.Sheet{
		Header: []string{"expected_field", "vendor_column"},
		Rows: [][]string{
			{"TAG NO\u00a0", "Stock\u00a0#"},
			{"ORIGIN", "Pays d\u2019orig\u0301ine"},
		},
	}
	tbl, ok := FromSheet(s)
	require.True(t, ok)

	assert.Equal(t, "Stock #", tbl.Column(schema.FieldTagNo))

	// the vendor header is cleaned the same way by the parsers
	row := records.Record{"Stock #": "R7", "Pays d\u2019orig\u00edne": "Brazil"}
	got := tbl.Remap(row)
	assert.Equal(t, "R7", got[schema.FieldTagNo])
	assert.Equal(t, "Brazil", got[schema.FieldOrigin])
}

func TestFromSheet_TooFewColumnsIsIdentity(t *testing.T) {
	tbl, ok := FromSheet(records.Sheet{Header: []string{"only"}, Rows: [][]string{{"CT"}}})
	assert.False(t, ok)
	assert.Equal(t, Identity(), tbl)
}

func TestRemap(t *testing.T) {
	tbl := Identity()
	tbl[schema.FieldCarat] = "Carat"

	row := records.Record{"Carat": "1.05", "TAG NO": "R1", "Vendor Only": "x"}
	got := tbl.Remap(row)

	assert.Len(t, got, len(schema.VendorFields))
	assert.Equal(t, "1.05", got[schema.FieldCarat])
	assert.Equal(t, "R1", got[schema.FieldTagNo])
	assert.Equal(t, "", got[schema.FieldColor])
	_, ok := got["Vendor Only"]
	assert.False(t, ok)

	out := tbl.Apply([]records.Record{row, {}})
	require.Len(t, out, 2)
	assert.Equal(t, got, out[0])
}

func TestUnmapped(t *testing.T) {
	tbl := Identity()
	tbl[schema.FieldCarat] = "Carat"

	missing := tbl.Unmapped(append([]string{"Carat"}, schema.VendorFields[:5]...))
	assert.NotContains(t, missing, "Carat")
	assert.NotContains(t, missing, schema.FieldTagNo)
	assert.Contains(t, missing, schema.FieldOrigin)
	assert.Len(t, missing, len(schema.VendorFields)-6)
}

func TestRowsTemplate(t *testing.T) {
	rows := Identity().Rows()
	require.Len(t, rows, len(schema.VendorFields)+1)
	assert.Equal(t, []string{HeaderCanonical, HeaderVendor}, rows[0])
	assert.Equal(t, []string{schema.FieldTagNo, schema.FieldTagNo}, rows[1])
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tbl, err := Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, Identity(), tbl)

	csvPath := filepath.Join(dir, "m.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("expected_field,vendor_column\nCT,Carat\n"), 0o644))
	tbl, err = Load(ctx, csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Carat", tbl.Column(schema.FieldCarat))

	onePath := filepath.Join(dir, "one.csv")
	require.NoError(t, os.WriteFile(onePath, []byte("expected_field\nCT\n"), 0o644))
	tbl, err = Load(ctx, onePath)
	require.NoError(t, err)
	assert.Equal(t, Identity(), tbl)

	xlsxPath := filepath.Join(dir, "m.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"expected_field", "vendor_column"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"SD WT.", "Side Wt"}))
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())
	tbl, err = Load(ctx, xlsxPath)
	require.NoError(t, err)
	assert.Equal(t, "Side Wt", tbl.Column(schema.FieldSideWeight))

	_, err = Load(ctx, filepath.Join(dir, "absent.csv"))
	assert.ErrorContains(t, err, "open mapping")
}
