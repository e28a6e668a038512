package dataprocessing

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/shared/testutil"
)

func TestLoadTable_CSV(t *testing.T) {
	data := testutil.ListingsCSV(t,
		testutil.GoodListing("Sea Ray", "Sundancer 320", "15000"),
		testutil.Listing{Make: "Grady-White", Model: "Canyon 306", Price: "N/A", Hours: "", ValidHIN: "No", Images: "4"},
	)

	tbl, err := LoadTable(data)
	require.NoError(t, err)

	assert.Equal(t, testutil.ExtendedHeader, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	v, _ := tbl.Value(1, "Display Price")
	assert.Equal(t, "N/A", v)
	v, _ = tbl.Value(0, "Model")
	assert.Equal(t, "Sundancer 320", v)
}

func TestLoadTable_CSVWithBOMAndQuotes(t *testing.T) {
	data := "\xEF\xBB\xBFMake,Model,Display Price\r\n\"Hatteras\",\"GT 63, Open\",\"2500000\"\r\n\r\nViking,54,\r\n"

	tbl, err := LoadTable([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Make", "Model", "Display Price"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len(), "blank lines are skipped")
	v, _ := tbl.Value(0, "Model")
	assert.Equal(t, "GT 63, Open", v)
	v, _ = tbl.Value(1, "Display Price")
	assert.True(t, IsMissing(v))
}

func TestLoadTable_XLSX(t *testing.T) {
	data := testutil.XLSXBytes(t, testutil.BasicHeader,
		[]string{"Boston Whaler", "Montauk 170", "45000", "80", "Yes"},
		[]string{"Bayliner", "VR5"},
	)

	tbl, err := LoadTable(data)
	require.NoError(t, err)

	assert.Equal(t, testutil.BasicHeader, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	v, _ := tbl.Value(0, "Display Price")
	assert.Equal(t, "45000", v)
	v, _ = tbl.Value(1, "Valid HIN?")
	assert.True(t, IsMissing(v), "short workbook rows are padded")
}

func TestLoadTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantMsg string
		wantIs  error
	}{
		{
			name:    "empty input",
			data:    nil,
			wantMsg: "Error loading file: no columns to parse from file",
		},
		{
			name:    "whitespace only",
			data:    []byte("  \n\n"),
			wantMsg: "Error loading file: no columns to parse from file",
		},
		{
			name:    "row wider than header",
			data:    []byte("Make,Model\nSea Ray,Sundancer,extra\n"),
			wantMsg: "Error loading file: expected 2 fields in line 2, saw 3",
		},
		{
			name:    "unterminated quote",
			data:    []byte("Make,Model,Display Price\n\"Sea Ray,Sundancer,15000\nViking,54,900000\nBayliner,VR5,30000\n"),
			wantMsg: "Error loading file: ",
			wantIs:  csv.ErrQuote,
		},
		{
			name:    "bare quote in unquoted field",
			data:    []byte("Make,Model,Display Price\nSea Ray,Sundancer 32\"0,15000\n"),
			wantMsg: "Error loading file: ",
			wantIs:  csv.ErrBareQuote,
		},
		{
			name:    "corrupt workbook",
			data:    []byte("PK\x03\x04not really a zip"),
			wantMsg: "Error loading file: open workbook:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTable(tt.data)
			require.Error(t, err)

			var loadErr *apperrors.LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.True(t, strings.HasPrefix(err.Error(), tt.wantMsg), "got %q", err.Error())
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "listings.csv")
	require.NoError(t, os.WriteFile(path, testutil.ListingsCSV(t, testutil.GoodListing("a", "b", "1")), 0644))

	tbl, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	_, err = LoadFile(filepath.Join(dir, "nope.csv"))
	assert.True(t, apperrors.IsLoadError(err))
}

func TestLoadReader(t *testing.T) {
	tbl, err := LoadReader(strings.NewReader("Make,Model\na,b\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())

	_, err = LoadReader(failingReader{})
	assert.True(t, apperrors.IsLoadError(err))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }
