package models

// SummaryStats feeds the dashboard cards
type SummaryStats struct {
	TotalBatches     int            `json:"total_batches"`
	TotalNotices     int            `json:"total_notices"`
	TotalRecipients  int            `json:"total_recipients"`
	BatchesByStatus  map[string]int `json:"batches_by_status"`
	NoticesGenerated int            `json:"notices_generated"`
	NoticesFailed    int            `json:"notices_failed"`
}

// BankStat is one row of the top-banks breakdown
type BankStat struct {
	BankName    string `db:"bank_name" json:"bank_name"`
	NoticeCount int    `db:"notice_count" json:"notice_count"`
	RecordCount int    `db:"record_count" json:"record_count"`
}
