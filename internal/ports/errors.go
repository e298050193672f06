package ports

import "errors"

// Standard application-level errors.
// Adapters should wrap underlying infrastructure errors with these standard errors.
var (
	// General Errors
	ErrUnknown            = errors.New("unknown error occurred")
	ErrInvalidRequest     = errors.New("invalid request parameters or format")
	ErrNotFound           = errors.New("resource not found")
	ErrConfigurationError = errors.New("invalid or missing configuration")

	// Ingestion Errors
	ErrUnreadableInput = errors.New("order export could not be read")
	ErrMalformedInput  = errors.New("order export is structurally malformed")

	// AI Analyst Errors
	ErrAnalystUnavailable = errors.New("AI analyst API is unavailable")
	ErrAnalysisFailed     = errors.New("AI analysis request failed")

	// Export Errors
	ErrExportFailed = errors.New("failed to export trade journal")

	// Database Specific Errors
	ErrDuplicateEntry = errors.New("database record already exists")
	ErrDBConnection   = errors.New("database connection error")
	ErrQueryFailed    = errors.New("database query failed")
	ErrUpdateFailed   = errors.New("database update failed")
)
