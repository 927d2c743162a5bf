package builtin

import "strings"

// Canonical stone types.
const (
	StoneDiamond      = "Diamond"
	StoneRuby         = "Ruby"
	StoneEmerald      = "Emerald"
	StonePadparadscha = "Padparadscha Sapphire"
	StoneBlueSapphire = "Blue Sapphire"
	StoneSapphire     = "Sapphire"
	StoneChrysoberyl  = "Chrysoberyl"
	StoneTourmaline   = "Tourmaline"
	StoneAquamarine   = "Aquamarine"
	StonePearl        = "Pearl"
	StoneJade         = "Jade"
	StoneOthers       = "Others"
)

// StoneRules lists the sapphire varieties ahead of plain "sapphire".
var StoneRules = Rules{
	{"diamond", StoneDiamond},
	{"ruby", StoneRuby},
	{"emerald", StoneEmerald},
	{"padparadscha", StonePadparadscha},
	{"blue sapphire", StoneBlueSapphire},
	{"sapphire", StoneSapphire},
	{"chrysoberyl", StoneChrysoberyl},
	{"tourmaline", StoneTourmaline},
	{"aquamarine", StoneAquamarine},
	{"pearl", StonePearl},
	{"jade", StoneJade},
}

// NormalizeStoneType maps raw stone text onto the canonical vocabulary.
func NormalizeStoneType(s string) string {
	if st, ok := StoneRules.Match(s); ok {
		return st
	}
	return StoneOthers
}

// IsDiamond reports whether the raw stone text names a diamond. It decides
// the mapping branch on its own, independent of NormalizeStoneType.
func IsDiamond(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "diamond")
}

// IsFancy reports whether the raw stone text describes a fancy colour.
func IsFancy(raw string) bool {
	return strings.Contains(strings.ToLower(raw), "fancy")
}
