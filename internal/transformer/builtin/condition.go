package builtin

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	ConditionExcellent = "Excellent"
	ConditionBrandNew  = "Brand New"
)

// Condition maps the vendor stock type onto the listing condition.
// Only "new" yields Brand New; "second hand", blanks and anything else are
// Excellent.
func Condition(stockType string) string {
	if strings.ToLower(strings.TrimSpace(stockType)) == "new" {
		return ConditionBrandNew
	}
	return ConditionExcellent
}

// Label builds the listing label for a condition.
func Label(base, newSuffix, condition string) string {
	if condition == ConditionBrandNew {
		return base + newSuffix
	}
	return base
}

// decimalRe accepts plain decimal numbers, with underscores only between
// digits. Hex floats are rejected.
var decimalRe = regexp.MustCompile(`^[+-]?(?:(?:\d(?:_?\d)*)?\.\d(?:_?\d)*|\d(?:_?\d)*\.?)(?:[eE][+-]?\d(?:_?\d)*)?$`)

// specialRe matches the infinity and NaN spellings.
var specialRe = regexp.MustCompile(`(?i)^[+-]?(?:inf|infinity|nan)$`)

// PositiveNumber reports whether s parses as a float greater than zero.
// Values past the float64 range count as infinite, so "1e400" is positive.
func PositiveNumber(s string) bool {
	s = strings.TrimSpace(s)
	if !decimalRe.MatchString(s) && !specialRe.MatchString(s) {
		return false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return false
	}
	return f > 0
}

// ResolveWeight picks the first candidate that is a positive number, in
// order. It returns "" and false when none qualifies.
func ResolveWeight(candidates ...string) (string, bool) {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if PositiveNumber(c) {
			return c, true
		}
	}
	return "", false
}

// Treatment canonicalises a treatment note. "heated" in any case becomes the
// marketplace wording; other values pass through trimmed.
func Treatment(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "heated") {
		return "Indication of heating"
	}
	return s
}
