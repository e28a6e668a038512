package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// Rate is the per-listing Advantage fee of each product family in a band.
type Rate struct {
	BT decimal.Decimal
	YW decimal.Decimal
}

// For returns the rate of the given family.
func (r Rate) For(f domain.ProductFamily) decimal.Decimal {
	if f == domain.FamilyYW {
		return r.YW
	}
	return r.BT
}

var rates = [BandCount]Rate{
	{BT: decimal.NewFromInt(10), YW: decimal.NewFromInt(100)},
	{BT: decimal.NewFromInt(25), YW: decimal.NewFromInt(100)},
	{BT: decimal.NewFromInt(50), YW: decimal.NewFromInt(100)},
	{BT: decimal.NewFromInt(75), YW: decimal.NewFromInt(100)},
	{BT: decimal.NewFromInt(100), YW: decimal.NewFromInt(100)},
	{BT: decimal.NewFromInt(125), YW: decimal.NewFromInt(125)},
	{BT: decimal.NewFromInt(150), YW: decimal.NewFromInt(150)},
	{BT: decimal.NewFromInt(200), YW: decimal.NewFromInt(200)},
	{BT: decimal.NewFromInt(500), YW: decimal.NewFromInt(500)},
	{BT: decimal.NewFromInt(1000), YW: decimal.NewFromInt(1000)},
}

// RateFor returns the rate of band b. Unknown carries no rate.
func RateFor(b Band) Rate {
	if !b.Known() {
		return Rate{BT: decimal.Zero, YW: decimal.Zero}
	}
	return rates[b.index]
}

// Tier is a membership tier.
type Tier string

const (
	TierAdvantage Tier = "Advantage"
	TierPlus      Tier = "Plus"
	TierSelect    Tier = "Select"
)

// Tiers lists the tiers in presentation order.
var Tiers = []Tier{TierAdvantage, TierPlus, TierSelect}

var (
	plusMultiplier   = decimal.RequireFromString("1.25")
	selectMultiplier = decimal.RequireFromString("1.5")
)

// Multiplier returns the factor applied to the Advantage fee.
func (t Tier) Multiplier() decimal.Decimal {
	switch t {
	case TierPlus:
		return plusMultiplier
	case TierSelect:
		return selectMultiplier
	default:
		return decimal.NewFromInt(1)
	}
}

// Project computes the revenue of one family for count listings in band b.
func Project(b Band, f domain.ProductFamily, count int) domain.TierRevenue {
	advantage := RateFor(b).For(f).Mul(decimal.NewFromInt(int64(count)))
	return domain.TierRevenue{
		Advantage: advantage,
		Plus:      advantage.Mul(plusMultiplier),
		Select:    advantage.Mul(selectMultiplier),
	}
}

// SummaryRow builds the band summary row for count listings in b.
func SummaryRow(b Band, count int) domain.BandSummaryRow {
	return domain.BandSummaryRow{
		PriceBand: b.Label,
		BoatCount: count,
		BT:        Project(b, domain.FamilyBT, count),
		YW:        Project(b, domain.FamilyYW, count),
	}
}
