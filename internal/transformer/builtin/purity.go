package builtin

import "strings"

// FormatGoldPurity upper-cases a karat token and makes sure it ends in "K".
// "18" and "18k" both become "18K"; blank input stays blank.
func FormatGoldPurity(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if !strings.HasSuffix(s, "K") {
		s += "K"
	}
	return s
}
