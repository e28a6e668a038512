package testutil

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ExtendedHeader is a header carrying every column the extended analysis needs.
var ExtendedHeader = []string{"Make", "Model", "Display Price", "Engine Hours", "Valid HIN?", "Images"}

// BasicHeader omits Images.
var BasicHeader = []string{"Make", "Model", "Display Price", "Engine Hours", "Valid HIN?"}

// Listing is a convenience row for building fixtures against ExtendedHeader.
type Listing struct {
	Make, Model, Price, Hours, ValidHIN, Images string
}

// Row returns the listing's cells in ExtendedHeader order.
func (l Listing) Row() []string {
	return []string{l.Make, l.Model, l.Price, l.Hours, l.ValidHIN, l.Images}
}

// BasicRow returns the listing's cells in BasicHeader order.
func (l Listing) BasicRow() []string {
	return []string{l.Make, l.Model, l.Price, l.Hours, l.ValidHIN}
}

// GoodListing returns a listing that fails no quality check.
func GoodListing(mk, model, price string) Listing {
	return Listing{Make: mk, Model: model, Price: price, Hours: "120", ValidHIN: "Yes", Images: "24"}
}

// CSVBytes encodes header and rows as CSV.
func CSVBytes(t testing.TB, header []string, rows ...[]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows: %v", err)
	}
	return buf.Bytes()
}

// ListingsCSV encodes listings against ExtendedHeader.
func ListingsCSV(t testing.TB, listings ...Listing) []byte {
	t.Helper()

	rows := make([][]string, len(listings))
	for i, l := range listings {
		rows[i] = l.Row()
	}
	return CSVBytes(t, ExtendedHeader, rows...)
}

// XLSXBytes builds an in-memory workbook whose first sheet holds header and rows.
func XLSXBytes(t testing.TB, header []string, rows ...[]string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	all := append([][]string{header}, rows...)
	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("set row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

// GenerateListings produces n listings cycling through every price band and
// every quality defect, for load and concurrency tests.
func GenerateListings(n int) []Listing {
	prices := []string{"5000", "15000", "30000", "60000", "80000", "150000", "300000", "750000", "2000000", "9000000", "N/A", "abc", "-10"}
	out := make([]Listing, n)
	for i := range out {
		l := GoodListing(fmt.Sprintf("Make%d", i%7), fmt.Sprintf("Model%d", i), prices[i%len(prices)])
		if i%5 == 0 {
			l.Hours = ""
		}
		if i%6 == 0 {
			l.ValidHIN = "No"
		}
		if i%4 == 0 {
			l.Images = "3"
		}
		out[i] = l
	}
	return out
}
