package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
)

var (
	zipMagic = []byte("PK\x03\x04")
	utf8BOM  = []byte("\xEF\xBB\xBF")

	errNoColumns = errors.New("no columns to parse from file")
)

// LoadFile reads path and parses it with LoadTable.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewLoadError(err)
	}
	return LoadTable(data)
}

// LoadReader drains r and parses the bytes with LoadTable. Read failures,
// including an exceeded upload limit, are reported as load errors.
func LoadReader(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewLoadError(err)
	}
	return LoadTable(data)
}

// LoadTable parses an uploaded export. Workbooks are recognised by their zip
// signature and read from the first sheet; everything else is read as CSV.
// The first row is the header. Any failure is returned as a *errors.LoadError.
func LoadTable(data []byte) (*Table, error) {
	var (
		header []string
		rows   [][]string
		err    error
	)
	if bytes.HasPrefix(data, zipMagic) {
		header, rows, err = readWorkbook(data)
	} else {
		header, rows, err = readCSV(data)
	}
	if err != nil {
		return nil, apperrors.NewLoadError(err)
	}

	t, err := NewTable(header, rows)
	if err != nil {
		return nil, apperrors.NewLoadError(err)
	}
	return t, nil
}

func readCSV(data []byte) ([]string, [][]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, errNoColumns
	}

	r := csv.NewReader(bytes.NewReader(data))
	// strict quoting: an unterminated quote must fail rather than swallow rows
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errNoColumns
	}
	return records[0], records[1:], nil
}

func readWorkbook(data []byte) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errNoColumns
	}

	// raw values so currency or thousands formats do not leak into prices
	all, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	records := make([][]string, 0, len(all))
	for _, row := range all {
		if blankRow(row) {
			continue
		}
		records = append(records, row)
	}
	if len(records) == 0 {
		return nil, nil, errNoColumns
	}
	return records[0], records[1:], nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
