package records

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Clean maps NBSP to a plain space and trims surrounding whitespace. The
// remaining bytes of a cell are kept as read.
func Clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\u00a0", " "))
}

// CleanName is Clean plus NFC composition, for column names that are
// compared against canonical field names.
func CleanName(s string) string {
	return norm.NFC.String(Clean(s))
}
