package builtin

import (
	"regexp"
	"strings"
)

// Size is the parsed form of a vendor SIZE cell. Either the dimensional
// fields or Standard are set, never both.
type Size struct {
	Length   string
	Width    string
	Unit     string
	Standard string
}

var (
	sizeInches = regexp.MustCompile(`^(\d+\.?\d*)"?$`)
	sizeDouble = regexp.MustCompile(`^(\d+\.?\d*)(cm|mm)?[*x](\d+\.?\d*)(cm|mm)?$`)
	sizeSingle = regexp.MustCompile(`^(\d+\.?\d*)(cm|mm)?$`)
)

// ParseSize interprets raw for the given category. Ring sizes are kept
// verbatim as the standard size. Bare numbers and inch values are labelled
// "cm" as the marketplace expects. Unrecognised text yields a zero Size.
func ParseSize(raw, category string) Size {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), " ", "")
	if s == "" {
		return Size{}
	}
	if category == CategoryRing {
		return Size{Standard: s}
	}
	if m := sizeInches.FindStringSubmatch(s); m != nil {
		return Size{Length: m[1], Unit: "cm"}
	}
	if m := sizeDouble.FindStringSubmatch(s); m != nil {
		unit := m[4]
		if unit == "" {
			unit = m[2]
		}
		return Size{Length: m[1], Width: m[3], Unit: unit}
	}
	if m := sizeSingle.FindStringSubmatch(s); m != nil {
		return Size{Length: m[1], Unit: m[2]}
	}
	return Size{}
}
