package builtin

import "gemmap/pkg/records"

// Normalize cleans every cell of every record with records.Clean. Input
// records are left untouched; Apply returns fresh copies.
type Normalize struct{}

func (Normalize) Apply(in []records.Record) []records.Record {
	out := make([]records.Record, len(in))
	for i, r := range in {
		c := make(records.Record, len(r))
		for k, v := range r {
			c[k] = records.Clean(v)
		}
		out[i] = c
	}
	return out
}
