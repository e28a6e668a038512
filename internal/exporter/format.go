package exporter

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// formatDecimal formats a money value with exactly 2 decimal places
func formatDecimal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatCell renders a table cell as text
func formatCell(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return formatInt(c)
	case decimal.Decimal:
		return formatDecimal(c)
	case nil:
		return ""
	default:
		return fmt.Sprint(c)
	}
}

// FileName turns a table name into a snake_case CSV file name,
// "Missing Engine Hours" becomes "missing_engine_hours.csv".
func FileName(tableName string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(tableName) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	name := strings.TrimSuffix(b.String(), "_")
	if name == "" {
		name = "table"
	}
	return name + ".csv"
}
