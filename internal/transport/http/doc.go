// Package http implements the HTTP handlers of the listings analyzer.
// Handlers stay thin: they parse the upload and query parameters, call the
// analysis service and render the result. Every failure goes through the
// shared ErrorHandler so clients always receive RFC 7807 problem documents.
//
// # Endpoints
//
//	POST /api/v1/analyses          upload -> JSON analysis result
//	POST /api/v1/analyses/export   upload -> xlsx workbook attachment
//	GET  /api/health               liveness
//	GET  /api/version              build information
//
// Uploads are accepted either as the multipart form field "file" or as the
// raw request body, in CSV or xlsx format. The optional "variant" query
// parameter selects "basic" or "extended" analysis.
package http
