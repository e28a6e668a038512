package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductFamily is a membership product line priced per listing.
type ProductFamily string

const (
	// FamilyBT is the BoatTrader product line.
	FamilyBT ProductFamily = "BT"
	// FamilyYW is the YachtWorld product line.
	FamilyYW ProductFamily = "YW"
)

// TierRevenue holds the projected revenue of one product family at each tier.
type TierRevenue struct {
	Advantage decimal.Decimal `json:"advantage"`
	Plus      decimal.Decimal `json:"plus"`
	Select    decimal.Decimal `json:"select"`
}

// Total sums the three tiers.
func (t TierRevenue) Total() decimal.Decimal {
	return t.Advantage.Add(t.Plus).Add(t.Select)
}

// Add returns the tier-wise sum of t and o.
func (t TierRevenue) Add(o TierRevenue) TierRevenue {
	return TierRevenue{
		Advantage: t.Advantage.Add(o.Advantage),
		Plus:      t.Plus.Add(o.Plus),
		Select:    t.Select.Add(o.Select),
	}
}

// BandSummaryRow is one row of the price band summary table.
type BandSummaryRow struct {
	PriceBand string      `json:"price_band"`
	BoatCount int         `json:"boat_count"`
	BT        TierRevenue `json:"bt"`
	YW        TierRevenue `json:"yw"`
}

// BandSummaryHeaders are the column headings of the band summary table.
var BandSummaryHeaders = []string{
	"Price Band",
	"Boat Count",
	"BT Advantage",
	"BT Plus",
	"BT Select",
	"YW Advantage",
	"YW Plus",
	"YW Select",
}

// RevenueTotals are the headline totals per product family: the sum of the
// Advantage, Plus and Select columns over every band.
type RevenueTotals struct {
	BT decimal.Decimal `json:"bt"`
	YW decimal.Decimal `json:"yw"`
}

// AnalysisResult is everything derived from one uploaded inventory export.
type AnalysisResult struct {
	ID            string           `json:"id"`
	Variant       Variant          `json:"variant"`
	GeneratedAt   time.Time        `json:"generated_at"`
	TotalListings int              `json:"total_listings"`
	UnknownCount  int              `json:"unknown_price_count"`
	Bands         []BandSummaryRow `json:"bands"`
	Totals        *RevenueTotals   `json:"totals,omitempty"`
	Quality       []QualitySubset  `json:"quality"`
}

// BandedCount returns the number of listings that landed in one of the ten
// known price bands.
func (r *AnalysisResult) BandedCount() int {
	n := 0
	for _, b := range r.Bands {
		n += b.BoatCount
	}
	return n
}

// Subset returns the quality subset for check, if the variant produced it.
func (r *AnalysisResult) Subset(check QualityCheck) (QualitySubset, bool) {
	for _, s := range r.Quality {
		if s.Check == check {
			return s, true
		}
	}
	return QualitySubset{}, false
}
