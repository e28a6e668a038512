package domain

import "fmt"

// Column names of an active-listings export. Matching is exact and case-sensitive.
const (
	ColumnEngineHours  = "Engine Hours"
	ColumnValidHIN     = "Valid HIN?"
	ColumnDisplayPrice = "Display Price"
	ColumnMake         = "Make"
	ColumnModel        = "Model"
	ColumnImages       = "Images"

	// ColumnPriceBand is appended to the working copy of the input table
	// once every listing has been classified.
	ColumnPriceBand = "Price Band"
)

// ValidHINYes is the only `Valid HIN?` value that marks a hull
// identification number as valid.
const ValidHINYes = "Yes"

// LowImageThreshold is the image count below which a listing is flagged.
const LowImageThreshold = 10

// Variant selects which flavour of the analysis runs.
type Variant string

const (
	// VariantBasic requires the five core columns and reports the band summary
	// plus the engine-hours, HIN and display-price subsets.
	VariantBasic Variant = "basic"
	// VariantExtended additionally requires Images, reports the low-image subset
	// and the per-family headline totals.
	VariantExtended Variant = "extended"
)

var (
	basicColumns = []string{
		ColumnEngineHours,
		ColumnValidHIN,
		ColumnDisplayPrice,
		ColumnMake,
		ColumnModel,
	}
	extendedColumns = append(append([]string{}, basicColumns...), ColumnImages)
)

// RequiredColumns returns the required column names in reporting order.
// The returned slice is a fresh copy.
func (v Variant) RequiredColumns() []string {
	if v == VariantBasic {
		return append([]string{}, basicColumns...)
	}
	return append([]string{}, extendedColumns...)
}

// Extended reports whether the variant includes image checks and headline totals.
func (v Variant) Extended() bool {
	return v != VariantBasic
}

// ParseVariant converts a user supplied string into a Variant.
// An empty string selects the extended variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", VariantExtended:
		return VariantExtended, nil
	case VariantBasic:
		return VariantBasic, nil
	default:
		return "", fmt.Errorf("unknown variant %q (want %q or %q)", s, VariantBasic, VariantExtended)
	}
}

// MakeModel identifies a listing in a quality subset.
type MakeModel struct {
	Make  string `json:"make" csv:"Make"`
	Model string `json:"model" csv:"Model"`
}

// QualityCheck names one of the data-quality predicates.
type QualityCheck string

const (
	CheckMissingEngineHours  QualityCheck = "missing_engine_hours"
	CheckInvalidHIN          QualityCheck = "invalid_hin"
	CheckMissingDisplayPrice QualityCheck = "missing_display_price"
	CheckLowImages           QualityCheck = "low_images"
)

// SheetName is the worksheet name used when the subset is exported.
func (c QualityCheck) SheetName() string {
	switch c {
	case CheckMissingEngineHours:
		return "Missing Engine Hours"
	case CheckInvalidHIN:
		return "Invalid HIN"
	case CheckMissingDisplayPrice:
		return "Missing Display Price"
	case CheckLowImages:
		return "Low Images"
	default:
		return string(c)
	}
}

// Title is the heading shown to the user above the subset.
func (c QualityCheck) Title() string {
	switch c {
	case CheckMissingEngineHours:
		return "Boats with Missing Engine Hours"
	case CheckInvalidHIN:
		return "Boats with Invalid HIN Numbers"
	case CheckMissingDisplayPrice:
		return "Boats with Missing Display Price"
	case CheckLowImages:
		return fmt.Sprintf("Boats with Fewer Than %d Images", LowImageThreshold)
	default:
		return string(c)
	}
}

// QualitySubset lists the listings failing one check, in input row order.
type QualitySubset struct {
	Check    QualityCheck `json:"check"`
	Listings []MakeModel  `json:"listings"`
}

// Len returns the number of flagged listings.
func (s QualitySubset) Len() int {
	return len(s.Listings)
}
