// Package exporter writes analysis results to spreadsheets and CSV files.
//
// This package contains three main components:
//
// BuildTables: lays an AnalysisResult out as named tables (the price band
// summary followed by the quality subsets). The terminal presenter renders
// the same tables.
//
// WorkbookExporter: writes the tables as sheets of one xlsx workbook, header
// row first and no index column.
//
// CSVWriter: core CSV writing with UTF-8 BOM for Excel compatibility, one
// snake_case file per table plus a streaming writer for the annotated listings.
//
// Example usage:
//
//	wb := exporter.NewWorkbookExporter(logger)
//	err := wb.ExportFile(ctx, "listing_analysis.xlsx", result)
//
//	cw := exporter.NewCSVWriter(logger, "out")
//	paths, err := cw.WriteTables(ctx, exporter.BuildTables(result))
package exporter
