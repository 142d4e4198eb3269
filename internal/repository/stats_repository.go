package repository

import (
	"noticegen-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) CountBatches() (int, error) {
	var total int
	err := r.db.Get(&total, "SELECT COUNT(*) FROM notice_batches")
	return total, err
}

func (r *StatsRepository) CountBatchesByStatus() (map[string]int, error) {
	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	query := "SELECT status, COUNT(*) as count FROM notice_batches GROUP BY status"
	if err := r.db.Select(&rows, query); err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *StatsRepository) CountRecipients() (int, error) {
	var total int
	err := r.db.Get(&total, "SELECT COUNT(*) FROM batch_recipients")
	return total, err
}

func (r *StatsRepository) CountNoticesByStatus() (generated, failed int, err error) {
	query := `SELECT
	            COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as generated,
	            COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) as failed
	          FROM generated_notices`
	var row struct {
		Generated int `db:"generated"`
		Failed    int `db:"failed"`
	}
	err = r.db.Get(&row, query, models.NoticeStatusGenerated, models.NoticeStatusFailed)
	return row.Generated, row.Failed, err
}

// TopBanks returns the banks with the most generated notices
func (r *StatsRepository) TopBanks(limit int) ([]models.BankStat, error) {
	var stats []models.BankStat
	query := `SELECT bank_name,
	                 COUNT(*) as notice_count,
	                 COALESCE(SUM(record_count), 0) as record_count
	          FROM generated_notices
	          WHERE status = ?
	          GROUP BY bank_name
	          ORDER BY notice_count DESC, bank_name
	          LIMIT ?`
	err := r.db.Select(&stats, query, models.NoticeStatusGenerated, limit)
	return stats, err
}
