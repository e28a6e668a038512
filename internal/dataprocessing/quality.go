package dataprocessing

import (
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/pricing"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// qualityRule flags a listing row. Rules are independent: one row may be
// flagged by several of them.
type qualityRule struct {
	check    domain.QualityCheck
	flagged  func(r listingRow) bool
	extended bool
}

var qualityRules = []qualityRule{
	{
		check:   domain.CheckMissingEngineHours,
		flagged: func(r listingRow) bool { return IsMissing(r.engineHours) },
	},
	{
		// a missing cell is not "Yes" either
		check:   domain.CheckInvalidHIN,
		flagged: func(r listingRow) bool { return r.validHIN != domain.ValidHINYes },
	},
	{
		check:   domain.CheckMissingDisplayPrice,
		flagged: func(r listingRow) bool { return IsMissing(r.displayPrice) },
	},
	{
		check:    domain.CheckLowImages,
		flagged:  func(r listingRow) bool { return lowImageCount(r.images) },
		extended: true,
	},
}

// rulesFor returns the rules that apply to variant, in reporting order.
func rulesFor(v domain.Variant) []qualityRule {
	out := make([]qualityRule, 0, len(qualityRules))
	for _, r := range qualityRules {
		if r.extended && !v.Extended() {
			continue
		}
		out = append(out, r)
	}
	return out
}

// lowImageCount reports whether raw is a number below the threshold. Missing
// or non-numeric counts are not flagged.
func lowImageCount(raw string) bool {
	if IsMissing(raw) {
		return false
	}
	n := pricing.ParsePrice(raw)
	return n.Valid && n.Value < domain.LowImageThreshold
}

// listingRow is the projection of a table row the aggregator reads.
type listingRow struct {
	engineHours  string
	validHIN     string
	displayPrice string
	makeName     string
	model        string
	images       string
}

func (r listingRow) makeModel() domain.MakeModel {
	return domain.MakeModel{Make: presentOrEmpty(r.makeName), Model: presentOrEmpty(r.model)}
}

func presentOrEmpty(v string) string {
	if IsMissing(v) {
		return ""
	}
	return v
}

// columnPositions caches header lookups for the listing columns.
type columnPositions struct {
	engineHours, validHIN, displayPrice, makeName, model, images int
}

func positionsOf(t *Table) columnPositions {
	pos := func(name string) int {
		if i, ok := t.ColumnIndex(name); ok {
			return i
		}
		return -1
	}
	return columnPositions{
		engineHours:  pos(domain.ColumnEngineHours),
		validHIN:     pos(domain.ColumnValidHIN),
		displayPrice: pos(domain.ColumnDisplayPrice),
		makeName:     pos(domain.ColumnMake),
		model:        pos(domain.ColumnModel),
		images:       pos(domain.ColumnImages),
	}
}

func (p columnPositions) row(cells []string) listingRow {
	get := func(i int) string {
		if i < 0 {
			return ""
		}
		return cells[i]
	}
	return listingRow{
		engineHours:  get(p.engineHours),
		validHIN:     get(p.validHIN),
		displayPrice: get(p.displayPrice),
		makeName:     get(p.makeName),
		model:        get(p.model),
		images:       get(p.images),
	}
}
