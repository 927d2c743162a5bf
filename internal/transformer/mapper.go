package transformer

import (
	"strconv"

	"gemmap/internal/schema"
	"gemmap/internal/transformer/builtin"
	"gemmap/pkg/records"
)

// Branch names the attribute family a row was mapped through.
type Branch string

const (
	BranchDiamond  Branch = "diamond"
	BranchGemstone Branch = "gemstone"
)

// Mapped is the result of MapRow.
type Mapped struct {
	Record records.Record
	Branch Branch
	// MissingWeight is set for diamond rows where neither CT nor SD WT. is a
	// positive number.
	MissingWeight bool
}

// styleColumns picks the style column COLLECTION is written to.
var styleColumns = map[string]string{
	builtin.CategoryRing:        "ring-style",
	builtin.CategoryBracelet:    "bracelet-style",
	builtin.CategoryNecklace:    "necklace-style",
	builtin.CategoryPendant:     "pendant-style",
	builtin.CategoryEarring:     "earring-style",
	builtin.CategoryBrooch:      "brooch-style",
	builtin.CategoryAccessories: "accessories-style",
}

var enhancementColumns = map[string]string{
	builtin.StoneRuby:         "gemstone_ruby-enhancement",
	builtin.StoneSapphire:     "gemstone_sapphire-enhancement",
	builtin.StoneBlueSapphire: "gemstone_blue-sapphire-enhancement",
	builtin.StoneEmerald:      "gemstone_emerald-enhancement",
	builtin.StoneChrysoberyl:  "gemstone_chrysoberyl-enhancement",
	builtin.StoneTourmaline:   "gemstone_tourmaline-enhancement",
	builtin.StoneAquamarine:   "gemstone_aquamarine-enhancement",
	builtin.StonePadparadscha: "gemstone_padparadscha-sapphire-enhancement",
}

var originColumns = map[string]string{
	builtin.StoneRuby:         "gemstone_ruby-origin",
	builtin.StoneSapphire:     "gemstone_sapphire-origin",
	builtin.StoneBlueSapphire: "gemstone_blue-sapphire-origin",
	builtin.StoneEmerald:      "gemstone_emerald-origin",
	builtin.StoneChrysoberyl:  "gemstone_chrysoberyl-origin",
	builtin.StoneTourmaline:   "gemstone_tourmaline-origin",
	builtin.StoneAquamarine:   "gemstone_aquamarine-origin",
	builtin.StonePadparadscha: "gemstone_padparadscha-sapphire-origin",
	builtin.StoneJade:         "gemstone_jade-origin",
	builtin.StonePearl:        "gemstone_pearl-origin",
}

// StyleColumn returns the style column for a category, or "" for Others.
func StyleColumn(category string) string { return styleColumns[category] }

// EnhancementColumn returns the treatment column for a canonical stone type.
func EnhancementColumn(stone string) string { return enhancementColumns[stone] }

// OriginColumn returns the origin column for a canonical stone type.
func OriginColumn(stone string) string { return originColumns[stone] }

// MapRow maps one row, keyed by the canonical vendor fields, onto the upload
// columns. uid is the 1-based position of the row in its input. The returned
// record holds only the columns this row populates; schema.Project fills the
// rest.
func MapRow(uid int, row records.Record) Mapped {
	category := builtin.DetectCategory(row.Get(schema.FieldDetails))
	size := builtin.ParseSize(row.Get(schema.FieldSize), category)
	condition := builtin.Condition(row.Get(schema.FieldStockType2))

	rec := records.Record{
		schema.ColUID:             strconv.Itoa(uid),
		schema.ColSKU:             row.Get(schema.FieldTagNo),
		schema.ColCategory:        category,
		schema.ColCurrency:        schema.Currency,
		schema.ColPrice:           row.Get(schema.FieldSalePrice),
		schema.ColMetal:           builtin.CleanMetal(row.Get(schema.FieldMetal)),
		schema.ColGoldPurity:      builtin.FormatGoldPurity(row.Get(schema.FieldMetalCarat)),
		schema.ColSizeLength:      size.Length,
		schema.ColSizeWidth:       size.Width,
		schema.ColSizeUnit:        size.Unit,
		schema.ColStandardSize:    size.Standard,
		schema.ColTotalWeight:     row.Get(schema.FieldMetalWeight),
		schema.ColCondition:       condition,
		schema.ColLabel:           builtin.Label(schema.LabelBase, schema.LabelNewSuffix, condition),
		schema.ColHaveMasterPiece: schema.HaveMasterPiece,
		schema.ColDiamondQuantity: row.Get(schema.FieldSidePieces),
	}

	if collection := row.Get(schema.FieldCollection); collection != "" {
		if col := StyleColumn(category); col != "" {
			rec[col] = collection
		}
	}

	stoneRaw := row.Get(schema.FieldStoneType)
	if builtin.IsDiamond(stoneRaw) {
		return mapDiamond(rec, row, stoneRaw)
	}
	return mapGemstone(rec, row, stoneRaw)
}

func mapDiamond(rec, row records.Record, stoneRaw string) Mapped {
	weight, ok := builtin.ResolveWeight(row.Get(schema.FieldCarat), row.Get(schema.FieldSideWeight))

	clr := row.Get(schema.FieldColor)
	color, white, fancy := "White", clr, ""
	if builtin.IsFancy(stoneRaw) {
		color, white, fancy = "Fancy", "", clr
	}

	rec[schema.ColDiamondCaratWeight] = weight
	rec[schema.ColDiamondColor] = color
	rec[schema.ColDiamondWhiteOptions] = white
	rec[schema.ColDiamondFancyOptions] = fancy
	rec[schema.ColDiamondCert] = row.Get(schema.FieldLab)
	rec[schema.ColDiamondCertNumber] = row.Get(schema.FieldCert)
	rec[schema.ColDiamondShape] = row.Get(schema.FieldShape)
	rec[schema.ColDiamondClarity] = row.Get(schema.FieldClarity)
	rec[schema.ColDiamondCut] = row.Get(schema.FieldCut)
	rec[schema.ColDiamondPolish] = row.Get(schema.FieldPolish)
	rec[schema.ColDiamondSymmetry] = row.Get(schema.FieldSymmetry)
	rec[schema.ColDiamondFluor] = row.Get(schema.FieldFluor)
	rec[schema.ColDiamondCenterStone] = schema.CenterStone
	rec[schema.ColGemStoneType] = builtin.StoneDiamond

	return Mapped{Record: rec, Branch: BranchDiamond, MissingWeight: !ok}
}

func mapGemstone(rec, row records.Record, stoneRaw string) Mapped {
	stone := builtin.NormalizeStoneType(stoneRaw)
	shape := row.Get(schema.FieldShape)
	clr := row.Get(schema.FieldColor)

	rec[schema.ColDiamondCaratWeight] = row.Get(schema.FieldSideWeight)
	rec[schema.ColDiamondCenterStone] = schema.SideStone
	rec[schema.ColGemCert] = row.Get(schema.FieldLab)
	rec[schema.ColGemCertNumber] = row.Get(schema.FieldCert)
	rec[schema.ColGemCaratWeight] = row.Get(schema.FieldCarat)
	rec[schema.ColGemShape] = shape
	rec[schema.ColGemColor] = clr
	rec[schema.ColGemStoneType] = stone
	rec[schema.ColGemCenterStone] = schema.CenterStone

	if stone == builtin.StonePearl {
		rec[schema.ColGemPearlShape] = shape
		rec[schema.ColGemPearlColor] = clr
	}
	if t := row.Get(schema.FieldTreatment); t != "" {
		if col := EnhancementColumn(stone); col != "" {
			rec[col] = builtin.Treatment(t)
		}
	}
	if o := row.Get(schema.FieldOrigin); o != "" {
		if col := OriginColumn(stone); col != "" {
			rec[col] = o
		}
	}
	return Mapped{Record: rec, Branch: BranchGemstone}
}
