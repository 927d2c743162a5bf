// Package builtin holds the row-level normalizers used by the listing mapper.
// Every function here is total: unrecognised or blank input yields "" (or the
// documented default label) and never an error.
package builtin

import "strings"

// Rule pairs a lower-case substring with the label it selects.
type Rule struct {
	Substring string
	Label     string
}

// Rules is an ordered classifier. The first rule whose substring occurs in
// the input wins, so more specific substrings must precede generic ones.
type Rules []Rule

// Match lower-cases s and returns the label of the first matching rule.
func (rs Rules) Match(s string) (string, bool) {
	low := strings.ToLower(strings.TrimSpace(s))
	for _, r := range rs {
		if strings.Contains(low, r.Substring) {
			return r.Label, true
		}
	}
	return "", false
}
