package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordGet(t *testing.T) {
	r := Record{"TAG NO": "  R1001 ", "CT": ""}

	assert.Equal(t, "R1001", r.Get("TAG NO"))
	assert.Equal(t, "", r.Get("CT"))
	assert.Equal(t, "", r.Get("missing"))
}

func TestRecordClone(t *testing.T) {
	r := Record{"a": "1"}
	c := r.Clone()
	c["a"] = "2"

	assert.Equal(t, "1", r["a"])
	assert.Equal(t, "2", c["a"])
}

func TestTableValues(t *testing.T) {
	tbl := Table{
		Columns: []string{"b", "a", "c"},
		Rows:    []Record{{"a": "1", "b": "2", "extra": "x"}},
	}

	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, []string{"2", "1", ""}, tbl.Values(0))
}

func TestSheetTable(t *testing.T) {
	s := Sheet{
		Header: []string{"TAG NO", "CT", "CT"},
		Rows:   [][]string{{"R1", "1.0", "2.0"}, {"R2"}},
	}
	tbl := s.Table()

	assert.Equal(t, []string{"TAG NO", "CT", "CT"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, Record{"TAG NO": "R1", "CT": "1.0"}, tbl.Rows[0])
	assert.Equal(t, Record{"TAG NO": "R2", "CT": ""}, tbl.Rows[1])
}

func TestClean(t *testing.T) {
	assert.Equal(t, "METAL WT.", Clean(" METAL\u00a0WT. "))
	assert.Equal(t, "Bre\u0301sil", Clean("Bre\u0301sil"))
	assert.Equal(t, "", Clean("\u00a0"))
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Stock #", CleanName("Stock\u00a0# "))
	assert.Equal(t, "Br\u00e9sil", CleanName("Bre\u0301sil"))
	assert.Equal(t, "", CleanName("\u00a0"))
}
