// Package mapping re-keys vendor rows onto the canonical vendor field names
// before conversion. A Table maps each canonical field to the column the
// vendor actually uses for it; fields the table does not mention keep their
// own name.
package mapping

import (
	"gemmap/internal/schema"
	"gemmap/pkg/records"
)

// Table maps canonical field -> vendor column.
type Table map[string]string

// Identity returns the table that reads every canonical field from the
// column of the same name.
func Identity() Table {
	t := make(Table, len(schema.VendorFields))
	for _, f := range schema.VendorFields {
		t[f] = f
	}
	return t
}

// FromSheet builds a Table from a parsed mapping sheet. The first column
// holds canonical fields, the second the vendor columns; the header row names
// are not significant. A blank vendor column falls back to the canonical name
// and blank canonical names are skipped. ok is false when the sheet has fewer
// than two columns, in which case the identity table is returned.
func FromSheet(s records.Sheet) (t Table, ok bool) {
	if len(s.Header) < 2 {
		return Identity(), false
	}
	t = Identity()
	for _, r := range s.Rows {
		if len(r) < 2 {
			continue
		}
		canonical := records.CleanName(r[0])
		if canonical == "" {
			continue
		}
		vendor := records.CleanName(r[1])
		if vendor == "" {
			vendor = canonical
		}
		t[canonical] = vendor
	}
	return t, true
}

// Column returns the vendor column for a canonical field.
func (t Table) Column(field string) string {
	if c, ok := t[field]; ok && c != "" {
		return c
	}
	return field
}

// Remap returns a record keyed by exactly schema.VendorFields, each value
// read from the mapped vendor column. Columns the row lacks read as "".
func (t Table) Remap(row records.Record) records.Record {
	out := make(records.Record, len(schema.VendorFields))
	for _, f := range schema.VendorFields {
		out[f] = row[t.Column(f)]
	}
	return out
}

// Apply remaps a batch of rows; it satisfies transformer.Transformer.
func (t Table) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, len(in))
	for i, r := range in {
		out[i] = t.Remap(r)
	}
	return out
}

// Unmapped lists the vendor columns the table reads that header lacks, in
// schema.VendorFields order.
func (t Table) Unmapped(header []string) []string {
	have := make(map[string]struct{}, len(header))
	for _, h := range header {
		have[h] = struct{}{}
	}
	var missing []string
	for _, f := range schema.VendorFields {
		if _, ok := have[t.Column(f)]; !ok {
			missing = append(missing, t.Column(f))
		}
	}
	return missing
}

// Rows renders the table as template rows, header first, in
// schema.VendorFields order.
func (t Table) Rows() [][]string {
	out := make([][]string, 0, len(schema.VendorFields)+1)
	out = append(out, []string{HeaderCanonical, HeaderVendor})
	for _, f := range schema.VendorFields {
		out = append(out, []string{f, t.Column(f)})
	}
	return out
}

// Template header names.
const (
	HeaderCanonical = "expected_field"
	HeaderVendor    = "vendor_column"
)
