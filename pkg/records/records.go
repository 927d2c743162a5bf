// Package records holds the row and table shapes shared by parsers,
// transformers and writers. Every cell is text: values are never coerced to
// numbers so leading zeros and exact decimal spellings survive the pipeline.
package records

import "strings"

// Record maps a column name to its raw cell text.
type Record map[string]string

// Get returns the trimmed value for key, or "" when the key is absent.
func (r Record) Get(key string) string {
	return strings.TrimSpace(r[key])
}

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered header plus its rows. Columns fixes the column order
// used when the table is written back out; rows may carry extra keys, which
// writers ignore.
type Table struct {
	Columns []string
	Rows    []Record
}

// Len reports the number of data rows.
func (t Table) Len() int { return len(t.Rows) }

// Values returns row i projected onto Columns, missing keys as "".
func (t Table) Values(i int) []string {
	out := make([]string, len(t.Columns))
	row := t.Rows[i]
	for j, c := range t.Columns {
		out[j] = row[c]
	}
	return out
}

// Sheet is a parsed grid: a header row plus body rows already padded or
// truncated to the header width.
type Sheet struct {
	Header []string
	Rows   [][]string
}

// Table keys every body row by the header. A repeated header name keeps the
// first column's value.
func (s Sheet) Table() Table {
	t := Table{Columns: append([]string(nil), s.Header...), Rows: make([]Record, len(s.Rows))}
	for i, row := range s.Rows {
		rec := make(Record, len(s.Header))
		for j, h := range s.Header {
			if _, dup := rec[h]; dup {
				continue
			}
			if j < len(row) {
				rec[h] = row[j]
			} else {
				rec[h] = ""
			}
		}
		t.Rows[i] = rec
	}
	return t
}
