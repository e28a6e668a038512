package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/dataprocessing"
	apierrors "github.com/Yachtguy502/Analyze-Active-Listings/internal/errors"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/exporter"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// MockAnalysisService is a mock implementation of AnalysisServiceInterface
type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, data []byte, variant domain.Variant) (*dataprocessing.Analysis, error) {
	args := m.Called(ctx, data, variant)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dataprocessing.Analysis), args.Error(1)
}

func (m *MockAnalysisService) ExportWorkbook(ctx context.Context, w io.Writer, result *domain.AnalysisResult) error {
	args := m.Called(ctx, w, result)
	if args.Error(0) == nil {
		_, _ = w.Write([]byte("PK-workbook"))
	}
	return args.Error(0)
}

const sampleCSV = "Engine Hours,Valid HIN,Display Price,Make,Model,Images\n120,Yes,15000,Sea Ray,Sundancer,12\n"

func sampleAnalysis() *dataprocessing.Analysis {
	return &dataprocessing.Analysis{Result: &domain.AnalysisResult{
		ID:            "a-1",
		Variant:       domain.VariantExtended,
		TotalListings: 1,
		Quality:       []domain.QualitySubset{},
	}}
}

func newTestHandler(svc *MockAnalysisService, limit int64) *AnalysisHandler {
	return NewAnalysisHandler(svc, nil, apierrors.NewErrorHandler(nil, false), limit)
}

func multipartBody(t *testing.T, field, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, "listings.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAnalysisHandler_Analyze(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       func(t *testing.T) (io.Reader, string)
		setup      func(m *MockAnalysisService)
		wantStatus int
		wantType   string
	}{
		{
			name:   "multipart upload",
			target: "/",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, "file", sampleCSV)
			},
			setup: func(m *MockAnalysisService) {
				m.On("Analyze", mock.Anything, []byte(sampleCSV), domain.Variant("")).Return(sampleAnalysis(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "raw body with variant",
			target: "/?variant=basic",
			body: func(t *testing.T) (io.Reader, string) {
				return strings.NewReader(sampleCSV), "text/csv"
			},
			setup: func(m *MockAnalysisService) {
				m.On("Analyze", mock.Anything, []byte(sampleCSV), domain.VariantBasic).Return(sampleAnalysis(), nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "unknown variant",
			target: "/?variant=deluxe",
			body: func(t *testing.T) (io.Reader, string) {
				return strings.NewReader(sampleCSV), "text/csv"
			},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeValidation,
		},
		{
			name:   "empty body",
			target: "/",
			body: func(t *testing.T) (io.Reader, string) {
				return strings.NewReader(""), "text/csv"
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "multipart without file field",
			target: "/",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, "other", sampleCSV)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "missing columns",
			target: "/",
			body: func(t *testing.T) (io.Reader, string) {
				return strings.NewReader("Make\nSea Ray\n"), "text/csv"
			},
			setup: func(m *MockAnalysisService) {
				m.On("Analyze", mock.Anything, mock.Anything, domain.Variant("")).
					Return(nil, apierrors.NewMissingFieldsError([]string{"Engine Hours", "Images"}))
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   apierrors.TypeMissingColumns,
		},
		{
			name:   "unreadable file",
			target: "/",
			body: func(t *testing.T) (io.Reader, string) {
				return strings.NewReader("\x00\x01"), "application/octet-stream"
			},
			setup: func(m *MockAnalysisService) {
				m.On("Analyze", mock.Anything, mock.Anything, domain.Variant("")).
					Return(nil, apierrors.NewLoadError(io.ErrUnexpectedEOF))
			},
			wantStatus: http.StatusBadRequest,
			wantType:   apierrors.TypeLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAnalysisService)
			if tt.setup != nil {
				tt.setup(svc)
			}
			body, contentType := tt.body(t)
			req := httptest.NewRequest(http.MethodPost, tt.target, body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			newTestHandler(svc, 1<<20).Routes().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeBody(t, rec)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "success", resp["status"])
				data := resp["data"].(map[string]interface{})
				assert.Equal(t, "a-1", data["id"])
			}
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, resp["type"])
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAnalysisHandler_AnalyzeMissingColumnsDetail(t *testing.T) {
	svc := new(MockAnalysisService)
	svc.On("Analyze", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apierrors.NewMissingFieldsError([]string{"Engine Hours", "Images"}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("Make\n"))
	rec := httptest.NewRecorder()
	newTestHandler(svc, 0).Routes().ServeHTTP(rec, req)

	resp := decodeBody(t, rec)
	assert.Equal(t, "Missing columns in CSV: Engine Hours, Images", resp["detail"])
	assert.Equal(t, []interface{}{"Engine Hours", "Images"}, resp["missing_columns"])
}

func TestAnalysisHandler_UploadTooLarge(t *testing.T) {
	svc := new(MockAnalysisService)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", "text/csv")
	rec := httptest.NewRecorder()
	newTestHandler(svc, 16).Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, apierrors.TypePayloadTooLarge, decodeBody(t, rec)["type"])
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisHandler_Export(t *testing.T) {
	tests := []struct {
		name            string
		target          string
		wantDisposition string
	}{
		{
			name:            "default file name",
			target:          "/export",
			wantDisposition: `attachment; filename=listing_analysis.xlsx`,
		},
		{
			name:            "requested file name gets extension",
			target:          "/export?filename=march_inventory",
			wantDisposition: `attachment; filename=march_inventory.xlsx`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := sampleAnalysis()
			svc := new(MockAnalysisService)
			svc.On("Analyze", mock.Anything, []byte(sampleCSV), domain.Variant("")).Return(analysis, nil)
			svc.On("ExportWorkbook", mock.Anything, mock.Anything, analysis.Result).Return(nil)

			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(sampleCSV))
			rec := httptest.NewRecorder()
			newTestHandler(svc, 0).Routes().ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, exporter.XLSXContentType, rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantDisposition, rec.Header().Get("Content-Disposition"))
			assert.Equal(t, "a-1", rec.Header().Get("X-Analysis-ID"))
			assert.Equal(t, "PK-workbook", rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestAnalysisHandler_ExportRejectsBadFilename(t *testing.T) {
	svc := new(MockAnalysisService)

	req := httptest.NewRequest(http.MethodPost, "/export?filename=..%2Fsecret", strings.NewReader(sampleCSV))
	rec := httptest.NewRecorder()
	newTestHandler(svc, 0).Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnalysisHandler_ExportFailure(t *testing.T) {
	analysis := sampleAnalysis()
	svc := new(MockAnalysisService)
	svc.On("Analyze", mock.Anything, mock.Anything, mock.Anything).Return(analysis, nil)
	svc.On("ExportWorkbook", mock.Anything, mock.Anything, analysis.Result).
		Return(apierrors.NewStorageError("failed to write workbook", io.ErrShortWrite))

	req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(sampleCSV))
	rec := httptest.NewRecorder()
	newTestHandler(svc, 0).Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apierrors.TypeInternal, decodeBody(t, rec)["type"])
}

func TestDownloadName(t *testing.T) {
	assert.Equal(t, exporter.DefaultWorkbookName, downloadName(""))
	assert.Equal(t, "q1.xlsx", downloadName("q1"))
	assert.Equal(t, "Q1.XLSX", downloadName("Q1.XLSX"))
}
