package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/exporter"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/middleware"
	api "github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/api/v1"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// AnalysisHandler handles listings uploads with RFC 7807 error responses
type AnalysisHandler struct {
	service        AnalysisServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	queries        *middleware.QueryValidator
	maxUploadBytes int64
}

// NewAnalysisHandler creates a new analysis handler. Uploads larger than
// maxUploadBytes are rejected with 413.
func NewAnalysisHandler(service AnalysisServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *AnalysisHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}
	return &AnalysisHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "analysis_handler")),
		errorHandler:   errorHandler,
		queries:        middleware.NewQueryValidator(),
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the analysis routes
func (h *AnalysisHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Analyze)
	r.Post("/export", h.Export)
	return r
}

// Analyze handles POST /api/v1/analyses. The listings file is either the
// multipart field "file" or the raw request body.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req api.AnalyzeRequest
	if err := h.queries.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	analysis, err := h.service.Analyze(r.Context(), data, domain.Variant(req.Variant))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, api.AnalysisResponse{Status: "success", Data: analysis.Result})
}

// Export handles POST /api/v1/analyses/export and answers with the xlsx
// workbook as an attachment.
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req api.ExportRequest
	if err := h.queries.Bind(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	data, err := h.readUpload(w, r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	analysis, err := h.service.Analyze(r.Context(), data, domain.Variant(req.Variant))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	// buffered so a failed export can still be reported as a problem
	var buf bytes.Buffer
	if err := h.service.ExportWorkbook(r.Context(), &buf, analysis.Result); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := downloadName(req.Filename)
	w.Header().Set("Content-Type", exporter.XLSXContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Analysis-ID", analysis.Result.ID)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to stream workbook",
			slog.String("error", err.Error()))
	}
}

// readUpload returns the uploaded file's bytes, capped at maxUploadBytes.
func (h *AnalysisHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return h.readMultipart(r)
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, uploadError(err)
	}
	if len(data) == 0 {
		return nil, apierrors.ErrMissingUpload(api.UploadField)
	}
	return data, nil
}

func (h *AnalysisHandler) readMultipart(r *http.Request) ([]byte, error) {
	// keep at most 8MB of parts in memory, the rest spills to temp files
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		return nil, uploadError(err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(api.UploadField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, apierrors.ErrMissingUpload(api.UploadField)
	}
	if err != nil {
		return nil, uploadError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, uploadError(err)
	}

	h.logger.DebugContext(r.Context(), "listings file uploaded",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size))
	return data, nil
}

// uploadError keeps size violations recognizable to the error handler and
// reports anything else as a malformed request.
func uploadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return maxErr
	}
	return apierrors.InvalidRequestWithError(fmt.Errorf("read upload: %w", err))
}

// downloadName returns the attachment name, forcing the .xlsx extension.
func downloadName(requested string) string {
	if requested == "" {
		return exporter.DefaultWorkbookName
	}
	if !strings.HasSuffix(strings.ToLower(requested), ".xlsx") {
		requested += ".xlsx"
	}
	return requested
}
