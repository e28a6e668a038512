// Package pricing holds the fixed price bands, the per-band membership rate
// table and the tier multipliers used to project revenue.
package pricing

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Band is a half-open price interval [Lower, Upper).
type Band struct {
	Label string
	Lower float64
	Upper float64

	index int
}

// Known reports whether b is one of the ten real bands.
func (b Band) Known() bool {
	return b.index >= 0
}

// Index is the position of b in the fixed band order, or -1 for Unknown.
func (b Band) Index() int {
	return b.index
}

// Contains reports whether price lies in [Lower, Upper).
func (b Band) Contains(price float64) bool {
	return b.Known() && price >= b.Lower && price < b.Upper
}

func (b Band) String() string {
	return b.Label
}

// UnknownLabel is the label of the sentinel band.
const UnknownLabel = "Unknown"

// Unknown is assigned to listings whose price is missing, unparseable,
// negative or not finite.
var Unknown = Band{Label: UnknownLabel, Lower: math.NaN(), Upper: math.NaN(), index: -1}

// BandCount is the number of real price bands.
const BandCount = 10

var bands = [BandCount]Band{
	{Label: "Under $10K", Lower: 0, Upper: 10_000},
	{Label: "$10K-$25K", Lower: 10_000, Upper: 25_000},
	{Label: "$25K-$50K", Lower: 25_000, Upper: 50_000},
	{Label: "$50K-$75K", Lower: 50_000, Upper: 75_000},
	{Label: "$75K-$100K", Lower: 75_000, Upper: 100_000},
	{Label: "$100K-$250K", Lower: 100_000, Upper: 250_000},
	{Label: "$250K-$500K", Lower: 250_000, Upper: 500_000},
	{Label: "$500K-$1M", Lower: 500_000, Upper: 1_000_000},
	{Label: "$1M-$5M", Lower: 1_000_000, Upper: 5_000_000},
	{Label: "Over $5M", Lower: 5_000_000, Upper: math.Inf(1)},
}

func init() {
	if bands[0].Lower != 0 {
		panic("pricing: first band must start at zero")
	}
	for i := range bands {
		bands[i].index = i
		if i > 0 && bands[i].Lower != bands[i-1].Upper {
			panic(fmt.Sprintf("pricing: band %q does not start where %q ends", bands[i].Label, bands[i-1].Label))
		}
	}
	if !math.IsInf(bands[BandCount-1].Upper, 1) {
		panic("pricing: last band must be unbounded")
	}
}

// All returns the ten bands in ascending order.
func All() []Band {
	out := make([]Band, BandCount)
	copy(out, bands[:])
	return out
}

// ByLabel looks a band up by its label. "Unknown" resolves to the sentinel.
func ByLabel(label string) (Band, bool) {
	if label == UnknownLabel {
		return Unknown, true
	}
	for _, b := range bands {
		if b.Label == label {
			return b, true
		}
	}
	return Band{}, false
}

// Classify assigns price to exactly one band. Boundary values belong to the
// band whose lower bound they equal.
func Classify(price float64) Band {
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return Unknown
	}
	// first band whose upper bound is strictly above price
	i := sort.Search(BandCount, func(i int) bool { return price < bands[i].Upper })
	if i == BandCount {
		return Unknown
	}
	return bands[i]
}

// Price is a coerced display price. Valid is false when the raw cell could
// not be read as a number.
type Price struct {
	Value float64
	Valid bool
}

// ParsePrice trims raw and parses it as a float. Anything that does not parse
// as a plain number yields an invalid Price.
func ParsePrice(raw string) Price {
	s := strings.TrimSpace(raw)
	if s == "" || hexFloat(s) {
		return Price{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return Price{}
	}
	return Price{Value: v, Valid: true}
}

// Band classifies p, mapping invalid prices to Unknown.
func (p Price) Band() Band {
	if !p.Valid {
		return Unknown
	}
	return Classify(p.Value)
}

// hexFloat reports a 0x-prefixed literal, which strconv accepts but a
// spreadsheet price never is.
func hexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
