package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"", "N/A", "NA", "n/a", "NULL", "null", "NaN", "nan", "None", "#N/A", "<NA>", "-nan", "1.#QNAN"} {
		assert.True(t, IsMissing(v), "%q should be missing", v)
	}
	for _, v := range []string{" ", "0", "No", "Yes", "none", "N.A.", "unknown"} {
		assert.False(t, IsMissing(v), "%q should be present", v)
	}
}

func TestNewTable(t *testing.T) {
	t.Run("pads short rows", func(t *testing.T) {
		tbl, err := NewTable([]string{"Make", "Model", "Images"}, [][]string{{"Sea Ray"}, {"Boston Whaler", "Montauk", "12"}})
		require.NoError(t, err)

		assert.Equal(t, 2, tbl.Len())
		assert.Equal(t, []string{"Sea Ray", "", ""}, tbl.Rows[0])
		v, ok := tbl.Value(0, "Images")
		assert.True(t, ok)
		assert.True(t, IsMissing(v))
	})

	t.Run("rejects wide rows", func(t *testing.T) {
		_, err := NewTable([]string{"Make"}, [][]string{{"a"}, {"b", "c"}})
		require.Error(t, err)
		assert.Equal(t, "expected 1 fields in line 3, saw 2", err.Error())
	})

	t.Run("header only", func(t *testing.T) {
		tbl, err := NewTable([]string{"Make", "Model"}, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
		assert.True(t, tbl.HasColumn("Model"))
	})
}

func TestTable_DuplicateHeaderFirstWins(t *testing.T) {
	tbl, err := NewTable([]string{"Make", "Model", "Make"}, [][]string{{"first", "m", "second"}})
	require.NoError(t, err)

	v, ok := tbl.Value(0, "Make")
	require.True(t, ok)
	assert.Equal(t, "first", v)

	i, _ := tbl.ColumnIndex("Make")
	assert.Equal(t, 0, i)
}

func TestTable_ValueUnknownColumn(t *testing.T) {
	tbl, err := NewTable([]string{"Make"}, [][]string{{"a"}})
	require.NoError(t, err)

	_, ok := tbl.Value(0, "make")
	assert.False(t, ok)
	assert.False(t, tbl.HasColumn("make"))
}

func TestTable_WithColumn(t *testing.T) {
	base, err := NewTable([]string{"Make", "Display Price"}, [][]string{{"a", "1"}, {"b", "2"}})
	require.NoError(t, err)

	t.Run("appends new column", func(t *testing.T) {
		out, err := base.WithColumn("Price Band", []string{"Under $10K", "Unknown"})
		require.NoError(t, err)

		assert.Equal(t, []string{"Make", "Display Price", "Price Band"}, out.Columns)
		v, _ := out.Value(1, "Price Band")
		assert.Equal(t, "Unknown", v)

		// receiver untouched
		assert.Equal(t, []string{"Make", "Display Price"}, base.Columns)
		assert.Len(t, base.Rows[0], 2)
	})

	t.Run("replaces existing column", func(t *testing.T) {
		out, err := base.WithColumn("Make", []string{"x", "y"})
		require.NoError(t, err)

		assert.Equal(t, base.Columns, out.Columns)
		v, _ := out.Value(0, "Make")
		assert.Equal(t, "x", v)
		v, _ = base.Value(0, "Make")
		assert.Equal(t, "a", v)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := base.WithColumn("Price Band", []string{"only one"})
		assert.Error(t, err)
	})
}
