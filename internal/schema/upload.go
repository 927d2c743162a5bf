// Package schema defines the two column contracts of the converter: the
// vendor fields the mapper reads and the ordered marketplace upload header it
// writes. The upload header is an external contract; its order is significant
// and must be reproduced verbatim.
package schema

// Vendor field names as they appear in the default (identity) mapping.
const (
	FieldTagNo       = "TAG NO"
	FieldSalePrice   = "gem gem sale price"
	FieldMetal       = "METAL"
	FieldMetalCarat  = "METAL CARAT"
	FieldDetails     = "DETAILS"
	FieldStoneType   = "STONE TYPE"
	FieldSize        = "SIZE"
	FieldMetalWeight = "METAL WT."
	FieldStockType2  = "STOCK TYPE2"
	FieldSidePieces  = "SD PCS"
	FieldCollection  = "COLLECTION"
	FieldColor       = "CLR"
	FieldCarat       = "CT"
	FieldSideWeight  = "SD WT."
	FieldLab         = "LAB"
	FieldCert        = "CERT"
	FieldShape       = "SHAPE"
	FieldClarity     = "CRT"
	FieldCut         = "C"
	FieldPolish      = "P"
	FieldSymmetry    = "S"
	FieldFluor       = "FLO"
	FieldTreatment   = "TREATMENT"
	FieldOrigin      = "ORIGIN"
)

// VendorFields lists every canonical vendor field in the order used for the
// mapping template and for the missing-diamond side table.
var VendorFields = []string{
	FieldTagNo, FieldSalePrice, FieldMetal, FieldMetalCarat, FieldDetails, FieldStoneType,
	FieldSize, FieldMetalWeight, FieldStockType2, FieldSidePieces, FieldCollection, FieldColor,
	FieldCarat, FieldSideWeight, FieldLab, FieldCert, FieldShape, FieldClarity, FieldCut,
	FieldPolish, FieldSymmetry, FieldFluor, FieldTreatment, FieldOrigin,
}

// UploadColumns is the marketplace bulk-upload header.
var UploadColumns = []string{
	"uid", "sku", "name", "category", "description", "images", "certificate_images", "ruler_images",
	"currency", "price", "discounted_price", "to_be_listed", "have_master_piece", "year-of-purchase",
	"condition", "packaging-info", "ring-style", "brand", "engagement-rings-solitaire-hashes",
	"engagement-rings-options", "engagement-rings-other-hashes", "metal", "gender", "total-weight",
	"standard-size", "resize-from", "resize-to", "resize-supported", "gold-purity", "earring-style",
	"earring-type", "earring-solitaire-hashes", "earring-studs-options", "earring-other-hashes",
	"bracelet-style", "bracelet-style-other-hashes", "size-length", "size-width", "size-unit",
	"necklace-style", "necklace-style-other-hashes", "pendant-style", "pendant-style-solitaire-hashes",
	"pendant-style-object-hashes", "brooch-style", "brooch-style-hashes", "accessories-style", "label",
	"diamond_quantity", "diamond_certification", "diamond_certification-number", "diamond_carat-weight",
	"diamond_diamond-shape", "diamond_diamond-color", "diamond_diamond-color-white-options",
	"diamond_diamond-color-fancy-options", "diamond_diamond-clarity", "diamond_diamond-cut",
	"diamond_diamond-polish", "diamond_diamond-symmetry", "diamond_diamond-fluoroscence",
	"diamond_diamond-girdle", "diamond_average-color", "diamond_average-clarity",
	"diamond_approximate-carat-weight", "diamond_center-stone", "diamond_diamond-grade",
	"gemstone_quantity", "gemstone_gold-purity", "gemstone_certification", "gemstone_certification-number",
	"gemstone_carat-weight", "gemstone_diamond-color-fancy-options", "gemstone_gem-stone-shape",
	"gemstone_gem-stone-color", "gemstone_gem-stone-clarity", "gemstone_gem-stone-cut",
	"gemstone_pearl-shape", "gemstone_pearl-color", "gemstone_pearl-clarity", "gemstone_pearl-lustre",
	"gemstone_stone-type", "gemstone_stone-type-pearl-options", "gemstone_ruby-color",
	"gemstone_ruby-origin", "gemstone_ruby-enhancement", "gemstone_blue-sapphire-color",
	"gemstone_blue-sapphire-origin", "gemstone_blue-sapphire-enhancement", "gemstone_emerald-color",
	"gemstone_emerald-origin", "gemstone_emerald-enhancement", "gemstone_chrysoberyl-origin",
	"gemstone_chrysoberyl-enhancement", "gemstone_tourmaline-origin", "gemstone_tourmaline-enhancement",
	"gemstone_aquamarine-origin", "gemstone_aquamarine-enhancement", "gemstone_sapphire-origin",
	"gemstone_sapphire-enhancement", "gemstone_padparadscha-sapphire-color",
	"gemstone_padparadscha-sapphire-origin", "gemstone_padparadscha-sapphire-enhancement",
	"gemstone_approximate-carat-weight", "gemstone_center-stone", "gemstone_jade-color",
	"gemstone_jade-origin", "gemstone_diamond-grade", "gemstone_chrysoberyl-color",
	"gemstone_tourmaline-color", "gemstone_aquamarine-color", "gemstone_jade-clarity",
	"gemstone_pearl-origin",
}

// Upload column names the mapper writes directly.
const (
	ColUID             = "uid"
	ColSKU             = "sku"
	ColCategory        = "category"
	ColCurrency        = "currency"
	ColPrice           = "price"
	ColHaveMasterPiece = "have_master_piece"
	ColCondition       = "condition"
	ColMetal           = "metal"
	ColTotalWeight     = "total-weight"
	ColStandardSize    = "standard-size"
	ColGoldPurity      = "gold-purity"
	ColSizeLength      = "size-length"
	ColSizeWidth       = "size-width"
	ColSizeUnit        = "size-unit"
	ColLabel           = "label"

	ColDiamondQuantity     = "diamond_quantity"
	ColDiamondCert         = "diamond_certification"
	ColDiamondCertNumber   = "diamond_certification-number"
	ColDiamondCaratWeight  = "diamond_carat-weight"
	ColDiamondShape        = "diamond_diamond-shape"
	ColDiamondColor        = "diamond_diamond-color"
	ColDiamondWhiteOptions = "diamond_diamond-color-white-options"
	ColDiamondFancyOptions = "diamond_diamond-color-fancy-options"
	ColDiamondClarity      = "diamond_diamond-clarity"
	ColDiamondCut          = "diamond_diamond-cut"
	ColDiamondPolish       = "diamond_diamond-polish"
	ColDiamondSymmetry     = "diamond_diamond-symmetry"
	ColDiamondFluor        = "diamond_diamond-fluoroscence"
	ColDiamondCenterStone  = "diamond_center-stone"

	ColGemCert        = "gemstone_certification"
	ColGemCertNumber  = "gemstone_certification-number"
	ColGemCaratWeight = "gemstone_carat-weight"
	ColGemShape       = "gemstone_gem-stone-shape"
	ColGemColor       = "gemstone_gem-stone-color"
	ColGemPearlShape  = "gemstone_pearl-shape"
	ColGemPearlColor  = "gemstone_pearl-color"
	ColGemStoneType   = "gemstone_stone-type"
	ColGemCenterStone = "gemstone_center-stone"
)

// Fixed values written into every upload row.
const (
	Currency        = "USD"
	LabelBase       = "Fast Shipping, Verified Partner"
	LabelNewSuffix  = ", New"
	HaveMasterPiece = "No"
	CenterStone     = "Center stone"
	SideStone       = "Side stone"
)
