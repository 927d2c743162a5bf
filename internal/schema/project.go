package schema

import (
	"fmt"
	"sort"

	"gemmap/pkg/records"
)

var uploadIndex = func() map[string]int {
	m := make(map[string]int, len(UploadColumns))
	for i, c := range UploadColumns {
		m[c] = i
	}
	return m
}()

// IsUploadColumn reports whether name belongs to the upload header.
func IsUploadColumn(name string) bool {
	_, ok := uploadIndex[name]
	return ok
}

// Project returns a new record holding exactly the UploadColumns keys. Columns
// the input did not populate are set to ""; keys outside the header are
// dropped.
func Project(rec records.Record) records.Record {
	out := make(records.Record, len(UploadColumns))
	for _, c := range UploadColumns {
		out[c] = rec[c]
	}
	return out
}

// Values returns rec's cells in UploadColumns order.
func Values(rec records.Record) []string {
	out := make([]string, len(UploadColumns))
	for i, c := range UploadColumns {
		out[i] = rec[c]
	}
	return out
}

// Check reports keys missing from, or unexpected in, rec relative to the
// upload header. A nil error means rec is a well-formed upload row.
func Check(rec records.Record) error {
	var missing, extra []string
	for _, c := range UploadColumns {
		if _, ok := rec[c]; !ok {
			missing = append(missing, c)
		}
	}
	for k := range rec {
		if !IsUploadColumn(k) {
			extra = append(extra, k)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	return fmt.Errorf("upload row: missing=%v extra=%v", missing, extra)
}
