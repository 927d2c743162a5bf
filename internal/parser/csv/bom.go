package csv

import (
	"strings"

	"gemmap/pkg/records"
)

const utf8BOM = "\uFEFF"

// StripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
func StripHeaderBOM(headers []string) []string {
	if len(headers) == 0 {
		return headers
	}
	headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	return headers
}

// CleanHeaders strips a leading BOM and cleans every header cell so vendor
// column names compare equal to the canonical ones. Headers are otherwise
// kept verbatim: "METAL WT." stays "METAL WT.".
func CleanHeaders(h []string) []string {
	h = StripHeaderBOM(h)
	out := make([]string, len(h))
	for i, c := range h {
		out[i] = records.CleanName(c)
	}
	return out
}
