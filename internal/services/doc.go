// Package services holds the application layer of the analyzer.
//
// AnalysisService ties the pipeline together: it loads an uploaded export
// (CSV or xlsx), checks the required columns for the requested variant,
// aggregates the listings and stamps the result with an ID and timestamp.
// It also exports results as an xlsx workbook or as CSV files. Every run is
// traced and recorded on the analysis metrics when those are configured.
//
// Present walks a result through a Presenter so the CLI and any other front
// end show the same headings, messages and tables in the same order.
package services
