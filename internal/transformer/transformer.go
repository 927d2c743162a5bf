// Package transformer turns remapped vendor rows into marketplace upload
// records.
//
// The work is split into row-local steps:
//   - Chain runs batch transformers (cell cleaning, column remapping) in order.
//   - MapRow builds one upload record from one vendor row.
//   - Convert folds MapRow over a batch, numbering rows from 1 and collecting
//     diamond rows that have no usable weight.
//
// Nothing here does I/O and nothing fails: unparseable cells become "".
package transformer

import "gemmap/pkg/records"

// Transformer rewrites a batch of records.
type Transformer interface {
	Apply([]records.Record) []records.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

func (c Chain) Apply(in []records.Record) []records.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}
