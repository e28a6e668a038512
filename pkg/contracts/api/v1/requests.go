// Package api contains the HTTP contract of the listings analyzer.
// Version v1 represents the current stable API version.
package api

import (
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

// Analysis API Requests

// AnalyzeRequest carries the query parameters of POST /api/v1/analyses.
// The listings file itself travels as the request body or the multipart
// field named by UploadField.
type AnalyzeRequest struct {
	Variant string `json:"variant" query:"variant" validate:"omitempty,oneof=basic extended"`
}

// ExportRequest carries the query parameters of POST /api/v1/analyses/export.
type ExportRequest struct {
	Variant  string `json:"variant" query:"variant" validate:"omitempty,oneof=basic extended"`
	Filename string `json:"filename" query:"filename" validate:"omitempty,max=128,filename"`
}

// UploadField is the multipart form field holding the listings file.
const UploadField = "file"

// Analysis API Responses

// Response is the success envelope shared by JSON endpoints
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// AnalysisResponse is the body of a successful analysis
type AnalysisResponse struct {
	Status string                 `json:"status"`
	Data   *domain.AnalysisResult `json:"data"`
}

// HealthResponse is the body of GET /api/health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
