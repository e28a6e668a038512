package dataprocessing

import "fmt"

// naTokens are the cell values read as missing. The set mirrors the default
// NA markers of common dataframe readers so exports that spell a blank as
// "N/A" or "NULL" behave as if the cell were empty.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw cell value counts as missing.
func IsMissing(v string) bool {
	_, ok := naTokens[v]
	return ok
}

// Table is a rectangular, column-addressable view of an uploaded export.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a Table, padding short rows with empty cells. A row wider
// than the header is an error.
func NewTable(columns []string, rows [][]string) (*Table, error) {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, 0, len(rows)),
	}
	t.reindex()

	width := len(columns)
	for i, row := range rows {
		if len(row) > width {
			// header is line 1
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", width, i+2, len(row))
		}
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		// first occurrence wins
		if _, dup := t.index[c]; !dup {
			t.index[c] = i
		}
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is a header of t. Matching is exact.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Value returns the raw cell at row for column. ok is false when the column
// does not exist.
func (t *Table) Value(row int, column string) (v string, ok bool) {
	i, ok := t.index[column]
	if !ok {
		return "", false
	}
	return t.Rows[row][i], true
}

// WithColumn returns a copy of t in which column holds values. An existing
// column of that name is replaced in place, otherwise it is appended.
// The receiver is not modified.
func (t *Table) WithColumn(column string, values []string) (*Table, error) {
	if len(values) != len(t.Rows) {
		return nil, fmt.Errorf("column %q has %d values for %d rows", column, len(values), len(t.Rows))
	}

	pos, exists := t.index[column]
	cols := append([]string(nil), t.Columns...)
	if !exists {
		pos = len(cols)
		cols = append(cols, column)
	}

	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		nr := make([]string, len(cols))
		copy(nr, r)
		nr[pos] = values[i]
		rows[i] = nr
	}

	out := &Table{Columns: cols, Rows: rows}
	out.reindex()
	return out, nil
}
