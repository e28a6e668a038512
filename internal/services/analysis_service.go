package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/dataprocessing"
	apperrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/exporter"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/infrastructure"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/validation"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// AnnotatedListingsFile is the CSV holding the input rows plus their price band.
const AnnotatedListingsFile = "annotated_listings.csv"

// Analysis outcomes recorded on the listings_analyses_total metric
const (
	OutcomeSuccess        = "success"
	OutcomeLoadError      = "load_error"
	OutcomeMissingColumns = "missing_columns"
	OutcomeCancelled      = "cancelled"
	OutcomeError          = "error"
)

// AnalysisServiceConfig configures the analysis pipeline
type AnalysisServiceConfig struct {
	// Variant is used when a request does not name one.
	Variant          domain.Variant
	Workers          int
	MinRowsPerWorker int
}

// DefaultAnalysisServiceConfig returns the extended variant on one worker.
func DefaultAnalysisServiceConfig() AnalysisServiceConfig {
	agg := dataprocessing.DefaultAggregatorConfig()
	return AnalysisServiceConfig{
		Variant:          agg.Variant,
		Workers:          agg.Workers,
		MinRowsPerWorker: agg.MinRowsPerWorker,
	}
}

// AnalysisService runs the load, validate and aggregate pipeline and exports
// its results. It keeps no state between calls.
type AnalysisService struct {
	cfg      AnalysisServiceConfig
	logger   *slog.Logger
	metrics  *infrastructure.AnalysisMetrics
	tracer   trace.Tracer
	files    *validation.FileValidator
	workbook *exporter.WorkbookExporter
	now      func() time.Time
}

// NewAnalysisService creates an analysis service. metrics and tracer may be
// nil; the global tracer is used in that case.
func NewAnalysisService(logger *slog.Logger, cfg AnalysisServiceConfig, metrics *infrastructure.AnalysisMetrics, tracer trace.Tracer) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.InstrumentationName)
	}
	if cfg.Variant == "" {
		cfg.Variant = domain.VariantExtended
	}
	return &AnalysisService{
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "analysis_service")),
		metrics:  metrics,
		tracer:   tracer,
		files:    validation.NewFileValidator(logger),
		workbook: exporter.NewWorkbookExporter(logger),
		now:      time.Now,
	}
}

// DefaultVariant returns the variant used when a caller passes "".
func (s *AnalysisService) DefaultVariant() domain.Variant {
	return s.cfg.Variant
}

// Analyze loads data as a CSV or xlsx listings export and analyzes it.
// Errors are *errors.LoadError or *errors.MissingFieldsError for bad input.
func (s *AnalysisService) Analyze(ctx context.Context, data []byte, variant domain.Variant) (*dataprocessing.Analysis, error) {
	return s.run(ctx, variant, "bytes", func() (*dataprocessing.Table, error) {
		return dataprocessing.LoadTable(data)
	})
}

// AnalyzeReader is Analyze for a stream.
func (s *AnalysisService) AnalyzeReader(ctx context.Context, r io.Reader, variant domain.Variant) (*dataprocessing.Analysis, error) {
	return s.run(ctx, variant, "reader", func() (*dataprocessing.Table, error) {
		return dataprocessing.LoadReader(r)
	})
}

// AnalyzeFile checks that path names a supported listings file, then analyzes it.
func (s *AnalysisService) AnalyzeFile(ctx context.Context, path string, variant domain.Variant) (*dataprocessing.Analysis, error) {
	return s.run(ctx, variant, filepath.Base(path), func() (*dataprocessing.Table, error) {
		if err := s.files.ValidateListingsFile(path); err != nil {
			return nil, apperrors.NewLoadError(err)
		}
		return dataprocessing.LoadFile(path)
	})
}

func (s *AnalysisService) run(ctx context.Context, variant domain.Variant, source string, load func() (*dataprocessing.Table, error)) (*dataprocessing.Analysis, error) {
	if variant == "" {
		variant = s.cfg.Variant
	}

	ctx, span := s.tracer.Start(ctx, "listings.analyze", trace.WithAttributes(
		attribute.String("listings.variant", string(variant)),
		attribute.String("listings.source", source),
	))
	defer span.End()

	start := time.Now()
	fail := func(outcome string, err error) (*dataprocessing.Analysis, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		s.metrics.RecordAnalysis(ctx, string(variant), outcome, 0, 0, time.Since(start))
		s.logger.WarnContext(ctx, "listings analysis failed",
			slog.String("outcome", outcome),
			slog.String("source", source),
			slog.String("error", err.Error()))
		return nil, err
	}

	table, err := load()
	if err != nil {
		return fail(OutcomeLoadError, err)
	}
	infrastructure.AddSpanEvent(ctx, "listings.loaded", attribute.Int("listings.rows", table.Len()))

	if err := validation.NewColumnValidator(s.logger, variant).Validate(ctx, table); err != nil {
		return fail(OutcomeMissingColumns, err)
	}

	agg := dataprocessing.NewAggregator(s.logger, dataprocessing.AggregatorConfig{
		Variant:          variant,
		Workers:          s.cfg.Workers,
		MinRowsPerWorker: s.cfg.MinRowsPerWorker,
	})
	analysis, err := agg.Aggregate(ctx, table)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fail(OutcomeCancelled, err)
		}
		return fail(OutcomeError, fmt.Errorf("analyze listings: %w", err))
	}

	analysis.Result.ID = uuid.NewString()
	analysis.Result.GeneratedAt = s.now().UTC()

	res := analysis.Result
	span.SetAttributes(
		attribute.Int("listings.total", res.TotalListings),
		attribute.Int("listings.unknown_price", res.UnknownCount),
	)
	s.metrics.RecordAnalysis(ctx, string(variant), OutcomeSuccess, res.TotalListings, res.UnknownCount, time.Since(start))

	s.logger.InfoContext(ctx, "listings analyzed",
		slog.String("analysis_id", res.ID),
		slog.String("variant", string(variant)),
		slog.Int("total_listings", res.TotalListings),
		slog.Int("unknown_price_count", res.UnknownCount),
		slog.Duration("duration", time.Since(start)))

	return analysis, nil
}

// ExportWorkbook streams the xlsx workbook for result to w.
func (s *AnalysisService) ExportWorkbook(ctx context.Context, w io.Writer, result *domain.AnalysisResult) error {
	ctx, span := s.tracer.Start(ctx, "listings.export_workbook")
	defer span.End()

	if err := s.workbook.Export(ctx, w, result); err != nil {
		infrastructure.RecordError(ctx, err)
		return err
	}
	s.metrics.RecordExport(ctx, "xlsx")
	return nil
}

// ExportWorkbookFile writes the xlsx workbook for result to path.
func (s *AnalysisService) ExportWorkbookFile(ctx context.Context, path string, result *domain.AnalysisResult) error {
	ctx, span := s.tracer.Start(ctx, "listings.export_workbook", trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	if err := s.workbook.ExportFile(ctx, path, result); err != nil {
		infrastructure.RecordError(ctx, err)
		return err
	}
	s.metrics.RecordExport(ctx, "xlsx")
	return nil
}

// ExportCSV writes one CSV per result table plus the annotated listings to
// dir and returns the written paths.
func (s *AnalysisService) ExportCSV(ctx context.Context, dir string, analysis *dataprocessing.Analysis) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, "listings.export_csv", trace.WithAttributes(attribute.String("dir", dir)))
	defer span.End()

	if err := s.files.ValidateOutputDirectory(dir); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	w := exporter.NewCSVWriter(s.logger, dir)
	paths, err := w.WriteTables(ctx, exporter.BuildTables(analysis.Result))
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return paths, err
	}

	if analysis.Working != nil {
		p, err := w.WriteRows(ctx, AnnotatedListingsFile, analysis.Working.Columns, analysis.Working.Rows)
		if err != nil {
			infrastructure.RecordError(ctx, err)
			return paths, err
		}
		paths = append(paths, p)
	}

	s.metrics.RecordExport(ctx, "csv")
	return paths, nil
}
