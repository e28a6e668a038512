package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// XLSXContentType is the media type of the exported workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultWorkbookName is the file name offered for downloads.
const DefaultWorkbookName = "listing_analysis.xlsx"

// excelize built-in number format 4 is "#,##0.00"
const moneyNumFmt = 4

// WorkbookExporter writes analysis tables to an xlsx workbook, one sheet per
// table, header row first and no index column.
type WorkbookExporter struct {
	logger *slog.Logger
}

// NewWorkbookExporter creates a workbook exporter
func NewWorkbookExporter(logger *slog.Logger) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookExporter{logger: logger.With(slog.String("component", "workbook_exporter"))}
}

// Export writes the workbook for result to w.
func (e *WorkbookExporter) Export(ctx context.Context, w io.Writer, result *domain.AnalysisResult) error {
	return e.Write(ctx, w, BuildTables(result))
}

// ExportFile writes the workbook for result to path, creating parent
// directories as needed.
func (e *WorkbookExporter) ExportFile(ctx context.Context, path string, result *domain.AnalysisResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create export directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("failed to create workbook file", err).WithContext("path", path)
	}

	if err := e.Export(ctx, file, result); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return apperrors.NewStorageError("failed to close workbook file", err).WithContext("path", path)
	}

	e.logger.InfoContext(ctx, "workbook exported", slog.String("path", path))
	return nil
}

// Write renders tables as sheets in the given order and streams the workbook to w.
func (e *WorkbookExporter) Write(ctx context.Context, w io.Writer, tables []Table) error {
	if len(tables) == 0 {
		return apperrors.NewAppValidationError("workbook needs at least one table")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return apperrors.NewStorageError("failed to create money style", err)
	}

	for i, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.Name); err != nil {
				return apperrors.NewStorageError("failed to name sheet", err).WithContext("sheet", t.Name)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return apperrors.NewStorageError("failed to add sheet", err).WithContext("sheet", t.Name)
		}

		if err := writeSheet(f, t, headerStyle, moneyStyle); err != nil {
			return apperrors.NewStorageError("failed to write sheet", err).WithContext("sheet", t.Name)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return apperrors.NewStorageError("failed to write workbook", err)
	}

	e.logger.DebugContext(ctx, "workbook written", slog.Int("sheets", len(tables)))
	return nil
}

func writeSheet(f *excelize.File, t Table, headerStyle, moneyStyle int) error {
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
		return err
	}
	if len(t.Headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(t.Name, "A1", last, headerStyle); err != nil {
			return err
		}
		lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Name, "A", lastCol, 18); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
			return err
		}
		for c, v := range row {
			if _, ok := v.(decimal.Decimal); !ok {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(t.Name, name, name, moneyStyle); err != nil {
				return fmt.Errorf("style %s: %w", name, err)
			}
		}
	}
	return nil
}

// cellValue converts decimals to numbers excelize can store
func cellValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}
