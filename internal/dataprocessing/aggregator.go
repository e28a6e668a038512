package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/pricing"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/validation"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// cancellation is checked every ctxCheckInterval rows
const ctxCheckInterval = 1024

// Aggregator classifies listings into price bands, projects membership
// revenue and collects the data-quality subsets.
type Aggregator struct {
	logger           *slog.Logger
	variant          domain.Variant
	workers          int
	minRowsPerWorker int
}

// AggregatorConfig holds configuration options for the Aggregator.
type AggregatorConfig struct {
	Variant          domain.Variant // basic or extended; empty means extended
	Workers          int            // partitions scanned concurrently
	MinRowsPerWorker int            // below this many rows per worker the scan stays sequential
}

// DefaultAggregatorConfig returns the sequential extended configuration.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		Variant:          domain.VariantExtended,
		Workers:          1,
		MinRowsPerWorker: 5000,
	}
}

// NewAggregator creates an aggregator with the given configuration.
func NewAggregator(logger *slog.Logger, config AggregatorConfig) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Variant == "" {
		config.Variant = domain.VariantExtended
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	if config.MinRowsPerWorker <= 0 {
		config.MinRowsPerWorker = 5000
	}

	return &Aggregator{
		logger:           logger.With(slog.String("component", "aggregator")),
		variant:          config.Variant,
		workers:          config.Workers,
		minRowsPerWorker: config.MinRowsPerWorker,
	}
}

// Variant returns the analysis variant the aggregator runs.
func (a *Aggregator) Variant() domain.Variant {
	return a.variant
}

// Analysis is the aggregator output: the derived result plus the input table
// with its "Price Band" column.
type Analysis struct {
	Result  *domain.AnalysisResult
	Working *Table
}

// partial is the aggregate of one contiguous row range.
type partial struct {
	counts  [pricing.BandCount]int
	unknown int
	labels  []string
	subsets [][]domain.MakeModel
}

// Aggregate runs the analysis over t. The table must carry every column the
// variant requires; t itself is never modified.
func (a *Aggregator) Aggregate(ctx context.Context, t *Table) (*Analysis, error) {
	if missing := validation.MissingColumns(t, a.variant.RequiredColumns()); len(missing) > 0 {
		return nil, fmt.Errorf("aggregate: table lacks required columns %v", missing)
	}

	start := time.Now()
	a.logger.InfoContext(ctx, "aggregating listings",
		slog.Int("row_count", t.Len()),
		slog.String("variant", string(a.variant)))

	rules := rulesFor(a.variant)
	pos := positionsOf(t)

	ranges := a.partition(t.Len())
	parts := make([]*partial, len(ranges))

	if len(ranges) == 1 {
		p, err := scan(ctx, t, pos, rules, ranges[0][0], ranges[0][1])
		if err != nil {
			return nil, err
		}
		parts[0] = p
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for i, r := range ranges {
			i, lo, hi := i, r[0], r[1]
			g.Go(func() error {
				p, err := scan(gctx, t, pos, rules, lo, hi)
				if err != nil {
					return err
				}
				parts[i] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	merged := merge(parts, len(rules), t.Len())

	working, err := t.WithColumn(domain.ColumnPriceBand, merged.labels)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}

	result := a.buildResult(t.Len(), merged, rules)

	a.logger.InfoContext(ctx, "listings aggregated",
		slog.Int("row_count", t.Len()),
		slog.Int("unknown_price_count", merged.unknown),
		slog.Int("partitions", len(ranges)),
		slog.Duration("duration", time.Since(start)))

	return &Analysis{Result: result, Working: working}, nil
}

// partition splits n rows into contiguous [lo, hi) ranges, one per worker.
func (a *Aggregator) partition(n int) [][2]int {
	workers := a.workers
	if most := n / a.minRowsPerWorker; most < workers {
		workers = most
	}
	if workers <= 1 {
		return [][2]int{{0, n}}
	}

	size := (n + workers - 1) / workers
	out := make([][2]int, 0, workers)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		out = append(out, [2]int{lo, hi})
	}
	return out
}

func scan(ctx context.Context, t *Table, pos columnPositions, rules []qualityRule, lo, hi int) (*partial, error) {
	p := &partial{
		labels:  make([]string, 0, hi-lo),
		subsets: make([][]domain.MakeModel, len(rules)),
	}

	for i := lo; i < hi; i++ {
		if (i-lo)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		row := pos.row(t.Rows[i])

		band := coercePrice(row.displayPrice).Band()
		if band.Known() {
			p.counts[band.Index()]++
		} else {
			p.unknown++
		}
		p.labels = append(p.labels, band.Label)

		for j, rule := range rules {
			if rule.flagged(row) {
				p.subsets[j] = append(p.subsets[j], row.makeModel())
			}
		}
	}
	return p, nil
}

// coercePrice treats NA markers as undefined before numeric parsing.
func coercePrice(raw string) pricing.Price {
	if IsMissing(raw) {
		return pricing.Price{}
	}
	return pricing.ParsePrice(raw)
}

// merge concatenates partials in range order so subsets and labels keep the
// input row order.
func merge(parts []*partial, ruleCount, rows int) *partial {
	out := &partial{
		labels:  make([]string, 0, rows),
		subsets: make([][]domain.MakeModel, ruleCount),
	}
	for _, p := range parts {
		for i, c := range p.counts {
			out.counts[i] += c
		}
		out.unknown += p.unknown
		out.labels = append(out.labels, p.labels...)
		for j := range p.subsets {
			out.subsets[j] = append(out.subsets[j], p.subsets[j]...)
		}
	}
	return out
}

func (a *Aggregator) buildResult(total int, merged *partial, rules []qualityRule) *domain.AnalysisResult {
	result := &domain.AnalysisResult{
		Variant:       a.variant,
		TotalListings: total,
		UnknownCount:  merged.unknown,
		Bands:         make([]domain.BandSummaryRow, 0, pricing.BandCount),
		Quality:       make([]domain.QualitySubset, 0, len(rules)),
	}

	btTotal, ywTotal := decimal.Zero, decimal.Zero
	for _, band := range pricing.All() {
		row := pricing.SummaryRow(band, merged.counts[band.Index()])
		btTotal = btTotal.Add(row.BT.Total())
		ywTotal = ywTotal.Add(row.YW.Total())
		result.Bands = append(result.Bands, row)
	}

	if a.variant.Extended() {
		result.Totals = &domain.RevenueTotals{BT: btTotal, YW: ywTotal}
	}

	for j, rule := range rules {
		listings := merged.subsets[j]
		if listings == nil {
			listings = []domain.MakeModel{}
		}
		result.Quality = append(result.Quality, domain.QualitySubset{
			Check:    rule.check,
			Listings: listings,
		})
	}

	return result
}
