package builtin

import "strings"

// Listing categories.
const (
	CategoryBracelet    = "Bracelet"
	CategoryNecklace    = "Necklace"
	CategoryRing        = "Ring"
	CategoryEarring     = "Earring"
	CategoryPendant     = "Pendant"
	CategoryBrooch      = "Brooch"
	CategoryAccessories = "Accessories"
	CategoryOthers      = "Others"
)

// CategoryRules is the scan order used after the earring check.
var CategoryRules = Rules{
	{"bracelet", CategoryBracelet},
	{"bangle", CategoryBracelet},
	{"necklace (chain)", CategoryNecklace},
	{"necklace", CategoryNecklace},
	{"neck-pndt", CategoryNecklace},
	{"ring", CategoryRing},
	{"earring pair", CategoryEarring},
	{"earring", CategoryEarring},
	{"pendant", CategoryPendant},
	{"brooch", CategoryBrooch},
	{"accessories", CategoryAccessories},
}

// DetectCategory classifies an item description. Anything mentioning
// "earring" is an Earring before any other rule is consulted, since "ring"
// would otherwise match first.
func DetectCategory(details string) string {
	if strings.Contains(strings.ToLower(details), "earring") {
		return CategoryEarring
	}
	if c, ok := CategoryRules.Match(details); ok {
		return c
	}
	return CategoryOthers
}
