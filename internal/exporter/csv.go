package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter writes output tables as CSV files under a base directory
type CSVWriter struct {
	baseDir string
	logger  *slog.Logger
}

// NewCSVWriter creates a new CSV writer rooted at baseDir
func NewCSVWriter(logger *slog.Logger, baseDir string) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{
		baseDir: baseDir,
		logger:  logger.With(slog.String("component", "csv_writer")),
	}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	Append    bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(filePath string, options WriteOptions) error {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Writing CSV file",
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	flags := os.O_CREATE | os.O_WRONLY
	if options.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(fullPath, flags, 0644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if options.BOMPrefix && !options.Append {
		if _, err := file.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)

	if !options.Append && len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteTable writes t to its snake_case file name and returns the full path.
func (w *CSVWriter) WriteTable(ctx context.Context, t Table) (string, error) {
	name := FileName(t.Name)
	if err := w.WriteCSV(name, WriteOptions{
		Headers:   t.Headers,
		Records:   t.Records(),
		BOMPrefix: true,
	}); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to write %s table", t.Name), err)
	}

	path := w.resolvePath(name)
	w.logger.InfoContext(ctx, "table written",
		slog.String("table", t.Name),
		slog.String("path", path),
		slog.Int("rows", len(t.Rows)))
	return path, nil
}

// WriteTables writes every table and returns the paths in table order.
func (w *CSVWriter) WriteTables(ctx context.Context, tables []Table) ([]string, error) {
	paths := make([]string, 0, len(tables))
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		p, err := w.WriteTable(ctx, t)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// StreamWriter provides streaming CSV writing for large datasets
type StreamWriter struct {
	file   *os.File
	writer *csv.Writer
}

// CreateStreamWriter creates a new streaming CSV writer
func (w *CSVWriter) CreateStreamWriter(filePath string, headers []string) (*StreamWriter, error) {
	fullPath := w.resolvePath(filePath)

	w.logger.Debug("Creating CSV stream writer",
		slog.String("full_path", fullPath),
		slog.Int("header_count", len(headers)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := file.Write(utf8BOM); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return &StreamWriter{
		file:   file,
		writer: writer,
	}, nil
}

// WriteRecord writes a single record to the stream
func (s *StreamWriter) WriteRecord(record []string) error {
	return s.writer.Write(record)
}

// Close flushes and closes the stream writer
func (s *StreamWriter) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// WriteRows streams header and rows to filePath. It is used for the annotated
// listings file, which can be much larger than the summary tables.
func (w *CSVWriter) WriteRows(ctx context.Context, filePath string, headers []string, rows [][]string) (string, error) {
	sw, err := w.CreateStreamWriter(filePath, headers)
	if err != nil {
		return "", apperrors.NewStorageError("failed to create CSV stream", err)
	}
	for i, row := range rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				sw.Close()
				return "", err
			}
		}
		if err := sw.WriteRecord(row); err != nil {
			sw.Close()
			return "", apperrors.NewStorageError(fmt.Sprintf("failed to write row %d", i+1), err)
		}
	}
	if err := sw.Close(); err != nil {
		return "", apperrors.NewStorageError("failed to flush CSV stream", err)
	}
	return w.resolvePath(filePath), nil
}

// resolvePath resolves relative paths against the base directory
func (w *CSVWriter) resolvePath(filePath string) string {
	if filepath.IsAbs(filePath) || w.baseDir == "" {
		return filePath
	}
	return filepath.Join(w.baseDir, filePath)
}
