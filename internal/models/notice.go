package models

import "time"

// Batch statuses
const (
	BatchStatusPending             = "pending"
	BatchStatusProcessing          = "processing"
	BatchStatusCompleted           = "completed"
	BatchStatusCompletedWithErrors = "completed_with_errors"
	BatchStatusFailed              = "failed"
	BatchStatusCancelled           = "cancelled"
)

// Notice statuses
const (
	NoticeStatusGenerated = "generated"
	NoticeStatusFailed    = "failed"
)

type NoticeBatch struct {
	ID             int       `db:"id" json:"id"`
	BatchCode      string    `db:"batch_code" json:"batch_code"`
	UserID         int       `db:"user_id" json:"user_id"`
	TemplateID     int       `db:"template_id" json:"template_id"`
	Filename       string    `db:"filename" json:"filename"`
	Placeholder    string    `db:"placeholder" json:"placeholder"`
	Tone           string    `db:"tone" json:"tone"`
	FontName       string    `db:"font_name" json:"font_name"`
	FontSize       int       `db:"font_size" json:"font_size"`
	TotalRows      int       `db:"total_rows" json:"total_rows"`
	InvalidRows    int       `db:"invalid_rows" json:"invalid_rows"`
	TotalGroups    int       `db:"total_groups" json:"total_groups"`
	GeneratedCount int       `db:"generated_count" json:"generated_count"`
	FailedCount    int       `db:"failed_count" json:"failed_count"`
	Status         string    `db:"status" json:"status"`
	ErrorMessage   string    `db:"error_message" json:"error_message"`
	OutputDir      string    `db:"output_dir" json:"output_dir"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

type BatchRecipient struct {
	ID          int64  `db:"id" json:"id"`
	BatchID     int    `db:"batch_id" json:"batch_id"`
	RowNumber   int    `db:"row_number" json:"row_number"`
	AccountNo   string `db:"account_no" json:"account_no"`
	AccountName string `db:"account_name" json:"account_name"`
	RoutingCode string `db:"routing_code" json:"routing_code"`
	BankName    string `db:"bank_name" json:"bank_name"`
}

type GeneratedNotice struct {
	ID           int       `db:"id" json:"id"`
	BatchID      int       `db:"batch_id" json:"batch_id"`
	RoutingCode  string    `db:"routing_code" json:"routing_code"`
	BankName     string    `db:"bank_name" json:"bank_name"`
	Filename     string    `db:"filename" json:"filename"`
	RecordCount  int       `db:"record_count" json:"record_count"`
	Status       string    `db:"status" json:"status"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// BatchUploadOptions are the form fields accepted alongside the recipients file
type BatchUploadOptions struct {
	TemplateID  int    `json:"template_id" form:"template_id"`
	Placeholder string `json:"placeholder" form:"placeholder"`
	Tone        string `json:"tone" form:"tone"`
	FontName    string `json:"font_name" form:"font_name"`
	FontSize    int    `json:"font_size" form:"font_size"`
}

// BatchProgress mirrors generation progress into Redis for live polling
type BatchProgress struct {
	BatchID     int    `json:"batch_id"`
	BatchCode   string `json:"batch_code"`
	Status      string `json:"status"`
	TotalGroups int    `json:"total_groups"`
	Done        int    `json:"done"`
	Generated   int    `json:"generated"`
	Failed      int    `json:"failed"`
	CurrentBank string `json:"current_bank"`
}
