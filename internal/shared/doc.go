// Package shared holds helpers used across the listings analyzer that do not
// belong to any single component.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - a buffered slog handler with assertion helpers
//   - CSV and XLSX fixture builders for listing exports
//   - a synthetic listings generator for concurrency tests
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    data := testutil.ListingsCSV(t, testutil.GoodListing("Sea Ray", "Sundancer", "15000"))
//	    // ...
//	    testutil.AssertNoErrors(t, logs)
//	}
package shared
