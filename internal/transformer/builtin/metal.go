package builtin

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TwoToneGold is returned for any description naming both white and yellow.
const TwoToneGold = "Two tone gold"

var (
	karatToken = regexp.MustCompile(`(?i)\b(18K|14K|22K)\b`)
	spaceRun   = regexp.MustCompile(`\s+`)
)

// CleanMetal turns a free-text metal description into its listing label.
//
//	"18K White & Yellow Gold" -> "Two tone gold"
//	"18K Yellow Gold"         -> "Yellow Gold"
//	"14k rose & white"        -> "Rose And White"
func CleanMetal(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	low := strings.ToLower(s)
	if strings.Contains(low, "white") && strings.Contains(low, "yellow") {
		return TwoToneGold
	}
	s = karatToken.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "&", "and")
	s = strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
	// A Caser carries state, so each call gets its own.
	return cases.Title(language.Und).String(s)
}
