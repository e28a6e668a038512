package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/exporter"
)

func TestTablePresenter(t *testing.T) {
	var buf bytes.Buffer
	p := NewTablePresenter(&buf)
	ctx := context.Background()

	require.NoError(t, p.Heading(ctx, "Price Bands"))
	require.NoError(t, p.Table(ctx, exporter.Table{
		Name:    "Price Bands",
		Headers: []string{"Price Band", "Boat Count", "BT Advantage"},
		Rows:    [][]any{{"$10K-$25K", 2, decimal.NewFromInt(50)}},
	}))
	require.NoError(t, p.Heading(ctx, "Invalid HIN"))
	require.NoError(t, p.Table(ctx, exporter.Table{Name: "Invalid HIN", Headers: []string{"Make", "Model"}}))
	require.NoError(t, p.Message(ctx, "done"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Price Bands\n"))
	assert.Contains(t, out, "Boat Count")
	assert.Contains(t, out, "$10K-$25K")
	assert.Contains(t, out, "50.00")
	assert.Contains(t, out, "\n\nInvalid HIN\n(none)\n")
	assert.True(t, strings.HasSuffix(out, "done\n"))
}

func TestNumericColumns(t *testing.T) {
	tbl := exporter.Table{
		Headers: []string{"Price Band", "Boat Count", "BT"},
		Rows:    [][]any{{"Under $10K", 0, decimal.Zero}, {"Over $5M", 1, decimal.NewFromInt(3)}},
	}
	assert.Equal(t, []bool{false, true, true}, numericColumns(tbl))
	assert.Equal(t, []bool{false, false}, numericColumns(exporter.Table{Headers: []string{"Make", "Model"}}))
}
