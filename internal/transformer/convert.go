package transformer

import (
	"gemmap/internal/mapping"
	"gemmap/internal/schema"
	"gemmap/internal/transformer/builtin"
	"gemmap/pkg/records"
)

// Result is one conversion pass over a vendor table.
type Result struct {
	// Listings has schema.UploadColumns and one row per input row, in input
	// order.
	Listings records.Table
	// MissingDiamond holds the remapped input rows (schema.VendorFields) of
	// diamond rows without a positive weight.
	MissingDiamond records.Table

	Diamonds  int
	Gemstones int
}

// Rows reports the number of converted rows.
func (r Result) Rows() int { return r.Listings.Len() }

// Convert maps rows that are already keyed by the canonical vendor fields.
// The input is not modified.
func Convert(rows []records.Record) Result {
	res := Result{
		Listings:       records.Table{Columns: schema.UploadColumns, Rows: make([]records.Record, 0, len(rows))},
		MissingDiamond: records.Table{Columns: schema.VendorFields},
	}
	for i, row := range rows {
		m := MapRow(i+1, row)
		res.Listings.Rows = append(res.Listings.Rows, schema.Project(m.Record))

		switch m.Branch {
		case BranchDiamond:
			res.Diamonds++
		case BranchGemstone:
			res.Gemstones++
		}
		if m.MissingWeight {
			res.MissingDiamond.Rows = append(res.MissingDiamond.Rows, row.Clone())
		}
	}
	return res
}

// Pipeline is the full row path for a parsed vendor table: clean cells,
// remap vendor columns, convert.
type Pipeline struct {
	Mapping mapping.Table
}

// Run converts in. A nil Mapping is the identity mapping.
func (p Pipeline) Run(in records.Table) Result {
	m := p.Mapping
	if m == nil {
		m = mapping.Identity()
	}
	rows := Chain{builtin.Normalize{}, m}.Apply(in.Rows)
	return Convert(rows)
}
