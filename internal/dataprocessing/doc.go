// Package dataprocessing turns an uploaded listings export into the price band
// summary, revenue projection and data-quality subsets.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Loader: reads CSV or XLSX bytes into a Table
// 2. Table: a rectangular, header-addressable view with missing-value rules
// 3. Aggregator: classifies prices, counts bands, projects revenue and flags rows
//
// # Usage
//
//	table, err := dataprocessing.LoadFile("active_listings.csv")
//	if err != nil {
//	    return err // *errors.LoadError
//	}
//
//	agg := dataprocessing.NewAggregator(logger, dataprocessing.DefaultAggregatorConfig())
//	analysis, err := agg.Aggregate(ctx, table)
//
// Column presence is checked by the validation package before aggregation;
// the aggregator refuses tables that lack a required column.
//
// # Data Flow
//
//	bytes → Loader → Table → Validator → Aggregator → AnalysisResult (+ working Table)
//
// # Missing values
//
// A cell is missing when it is empty or holds one of the usual NA markers
// ("N/A", "NULL", "NaN" and friends). Missing display prices are counted
// under the Unknown band; missing engine hours and display prices are flagged.
//
// # Concurrency
//
// With AggregatorConfig.Workers above one, large tables are split into
// contiguous row ranges scanned in parallel. Partial results are merged in
// range order, so the output is identical to a sequential run.
package dataprocessing
