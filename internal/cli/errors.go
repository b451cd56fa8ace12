// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Input errors
	ErrCategoryInvalid = "CATEGORY_INVALID"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// Pipeline errors (mirrored from the atlas package)
	ErrSourceUnavailable = "SOURCE_UNAVAILABLE"
	ErrLoadError         = "LOAD_ERROR"
	ErrColumnNotFound    = "COLUMN_NOT_FOUND"
	ErrExportError       = "EXPORT_ERROR"

	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"
	ErrSourcesFile   = "SOURCES_FILE_INVALID"

	// MCP client integration errors
	ErrMCPClientInvalid    = "MCP_CLIENT_INVALID"
	ErrMCPConfigWriteError = "MCP_CONFIG_WRITE_ERROR"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
