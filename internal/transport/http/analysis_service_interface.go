package http

import (
	"context"
	"io"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/dataprocessing"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the analysis operations the handlers need
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, data []byte, variant domain.Variant) (*dataprocessing.Analysis, error)
	ExportWorkbook(ctx context.Context, w io.Writer, result *domain.AnalysisResult) error
}
