package services

import (
	"context"
	"fmt"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/exporter"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// Presenter renders analysis output for a user. The CLI renders to a
// terminal; other front ends may collect the calls instead.
type Presenter interface {
	Heading(ctx context.Context, text string) error
	Message(ctx context.Context, text string) error
	Table(ctx context.Context, t exporter.Table) error
}

// Present renders result through p: headline totals (extended variant), the
// unknown price count when non-zero, then every table under its title.
func Present(ctx context.Context, p Presenter, result *domain.AnalysisResult) error {
	if err := p.Heading(ctx, "Boat Inventory Analysis"); err != nil {
		return err
	}

	for _, msg := range summaryLines(result) {
		if err := p.Message(ctx, msg); err != nil {
			return err
		}
	}

	for _, t := range exporter.BuildTables(result) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Heading(ctx, t.Title); err != nil {
			return err
		}
		if err := p.Table(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

func summaryLines(result *domain.AnalysisResult) []string {
	lines := []string{fmt.Sprintf("Total listings: %d", result.TotalListings)}
	if result.Totals != nil {
		lines = append(lines,
			fmt.Sprintf("Total BT revenue: $%s", result.Totals.BT.StringFixed(2)),
			fmt.Sprintf("Total YW revenue: $%s", result.Totals.YW.StringFixed(2)),
		)
	}
	if result.UnknownCount > 0 {
		lines = append(lines, fmt.Sprintf("%d listings have no usable display price (Unknown band)", result.UnknownCount))
	}
	return lines
}
