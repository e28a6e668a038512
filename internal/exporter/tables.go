package exporter

import (
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// PriceBandsSheet is the name of the band summary sheet.
const PriceBandsSheet = "Price Bands"

// Table is one named output table. Cells hold string, int or decimal.Decimal
// values so each writer can choose its own representation.
type Table struct {
	Name    string
	Title   string
	Headers []string
	Rows    [][]any
}

// Records renders every cell as text, the way the CSV writer and terminal
// presenter show them.
func (t Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make([]string, len(row))
		for j, c := range row {
			rec[j] = formatCell(c)
		}
		out[i] = rec
	}
	return out
}

// BuildTables lays out an analysis result as output tables: the band summary
// first, then one table per quality subset in reporting order.
func BuildTables(result *domain.AnalysisResult) []Table {
	tables := make([]Table, 0, 1+len(result.Quality))
	tables = append(tables, bandTable(result))
	for _, s := range result.Quality {
		tables = append(tables, subsetTable(s))
	}
	return tables
}

func bandTable(result *domain.AnalysisResult) Table {
	rows := make([][]any, 0, len(result.Bands))
	for _, b := range result.Bands {
		rows = append(rows, []any{
			b.PriceBand,
			b.BoatCount,
			b.BT.Advantage, b.BT.Plus, b.BT.Select,
			b.YW.Advantage, b.YW.Plus, b.YW.Select,
		})
	}
	return Table{
		Name:    PriceBandsSheet,
		Title:   "Price Band Summary",
		Headers: append([]string(nil), domain.BandSummaryHeaders...),
		Rows:    rows,
	}
}

func subsetTable(s domain.QualitySubset) Table {
	rows := make([][]any, 0, len(s.Listings))
	for _, l := range s.Listings {
		rows = append(rows, []any{l.Make, l.Model})
	}
	return Table{
		Name:    s.Check.SheetName(),
		Title:   s.Check.Title(),
		Headers: []string{domain.ColumnMake, domain.ColumnModel},
		Rows:    rows,
	}
}
