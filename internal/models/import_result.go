package models

import "time"

// RowValidationError represents a validation error for one input row
type RowValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// RecipientImportResult represents the result of a recipients import with
// per-row validation details
type RecipientImportResult struct {
	ValidRecipients  []BatchRecipient     `json:"valid_recipients"`
	ValidationErrors []RowValidationError `json:"validation_errors"`
	TotalRows        int                  `json:"total_rows"`
	ValidCount       int                  `json:"valid_count"`
	ErrorCount       int                  `json:"error_count"`
	ErrorReportPath  string               `json:"error_report_path,omitempty"`
	ImportTime       time.Time            `json:"import_time"`
}

// OverrideImportResult summarizes a bank-override bulk import
type OverrideImportResult struct {
	ValidOverrides   []BankOverride       `json:"valid_overrides"`
	ValidationErrors []RowValidationError `json:"validation_errors"`
	TotalRows        int                  `json:"total_rows"`
	ValidCount       int                  `json:"valid_count"`
	ErrorCount       int                  `json:"error_count"`
}
