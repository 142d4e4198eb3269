package repository

import (
	"fmt"

	"noticegen-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type NoticeRepository struct {
	db *sqlx.DB
}

func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Batches

func (r *NoticeRepository) CreateBatch(batch *models.NoticeBatch) error {
	query := `INSERT INTO notice_batches (batch_code, user_id, template_id, filename,
	          placeholder, tone, font_name, font_size, total_rows, invalid_rows,
	          total_groups, status, output_dir)
	          VALUES (:batch_code, :user_id, :template_id, :filename,
	          :placeholder, :tone, :font_name, :font_size, :total_rows, :invalid_rows,
	          :total_groups, :status, :output_dir)`
	result, err := r.db.NamedExec(query, batch)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	batch.ID = int(id)
	return nil
}

func (r *NoticeRepository) FindBatchByID(id int) (*models.NoticeBatch, error) {
	var batch models.NoticeBatch
	query := "SELECT * FROM notice_batches WHERE id = ? LIMIT 1"
	err := r.db.Get(&batch, query, id)
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *NoticeRepository) FindBatchByCode(code string) (*models.NoticeBatch, error) {
	var batch models.NoticeBatch
	query := "SELECT * FROM notice_batches WHERE batch_code = ? LIMIT 1"
	err := r.db.Get(&batch, query, code)
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *NoticeRepository) FindBatches(limit, offset int, status, search string) ([]models.NoticeBatch, int64, error) {
	var batches []models.NoticeBatch
	var total int64

	whereClause := ""
	args := []interface{}{}

	if status != "" {
		whereClause = "WHERE status = ?"
		args = append(args, status)
	}
	if search != "" {
		if whereClause == "" {
			whereClause = "WHERE "
		} else {
			whereClause += " AND "
		}
		whereClause += "(batch_code LIKE ? OR filename LIKE ?)"
		searchPattern := "%" + search + "%"
		args = append(args, searchPattern, searchPattern)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM notice_batches %s", whereClause)
	err := r.db.Get(&total, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, batch_code, user_id, template_id, filename, placeholder, tone,
		       font_name, font_size, total_rows, invalid_rows, total_groups,
		       generated_count, failed_count, status,
		       COALESCE(error_message, '') as error_message,
		       output_dir, created_at, updated_at
		FROM notice_batches %s
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`, whereClause)
	args = append(args, limit, offset)
	err = r.db.Select(&batches, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return batches, total, nil
}

// FindAllBatches returns every batch, newest first, for list exports
func (r *NoticeRepository) FindAllBatches() ([]models.NoticeBatch, error) {
	var batches []models.NoticeBatch
	query := `SELECT id, batch_code, user_id, template_id, filename, placeholder, tone,
	          font_name, font_size, total_rows, invalid_rows, total_groups,
	          generated_count, failed_count, status,
	          COALESCE(error_message, '') as error_message,
	          output_dir, created_at, updated_at
	          FROM notice_batches ORDER BY created_at DESC, id DESC`
	err := r.db.Select(&batches, query)
	return batches, err
}

func (r *NoticeRepository) UpdateBatchStatus(id int, status string) error {
	query := "UPDATE notice_batches SET status = ? WHERE id = ?"
	_, err := r.db.Exec(query, status, id)
	return err
}

// MarkBatchFailed sets the failed status together with the error message
func (r *NoticeRepository) MarkBatchFailed(id int, errorMessage string) error {
	query := "UPDATE notice_batches SET status = ?, error_message = ? WHERE id = ?"
	_, err := r.db.Exec(query, models.BatchStatusFailed, errorMessage, id)
	return err
}

// UpdateBatchProgress persists the running generated/failed counters
func (r *NoticeRepository) UpdateBatchProgress(id int, generated, failed int) error {
	query := "UPDATE notice_batches SET generated_count = ?, failed_count = ? WHERE id = ?"
	_, err := r.db.Exec(query, generated, failed, id)
	return err
}

// FinalizeBatch writes the terminal status and final counters in one update
func (r *NoticeRepository) FinalizeBatch(id int, status string, generated, failed int, errorMessage string) error {
	query := `UPDATE notice_batches SET status = ?, generated_count = ?, failed_count = ?,
	          error_message = ? WHERE id = ?`
	_, err := r.db.Exec(query, status, generated, failed, errorMessage, id)
	return err
}

// BatchStatus reads only the status column; the worker polls this between
// notices to honor cancellation.
func (r *NoticeRepository) BatchStatus(id int) (string, error) {
	var status string
	query := "SELECT status FROM notice_batches WHERE id = ? LIMIT 1"
	err := r.db.Get(&status, query, id)
	if err != nil {
		return "", err
	}
	return status, nil
}

func (r *NoticeRepository) DeleteBatch(id int) error {
	query := "DELETE FROM notice_batches WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}

// Recipients

func (r *NoticeRepository) BulkInsertRecipients(recipients []models.BatchRecipient) error {
	if len(recipients) == 0 {
		return nil
	}

	// Chunk to stay under the MySQL placeholder limit (65535)
	const chunkSize = 5000

	for i := 0; i < len(recipients); i += chunkSize {
		end := i + chunkSize
		if end > len(recipients) {
			end = len(recipients)
		}

		chunk := recipients[i:end]

		query := "INSERT INTO batch_recipients (batch_id, `row_number`, account_no, account_name, routing_code, bank_name) " +
			"VALUES (:batch_id, :row_number, :account_no, :account_name, :routing_code, :bank_name)"

		if _, err := r.db.NamedExec(query, chunk); err != nil {
			return fmt.Errorf("insert recipients chunk %d-%d: %w", i+1, end, err)
		}
	}

	return nil
}

func (r *NoticeRepository) FindRecipients(batchID, limit, offset int) ([]models.BatchRecipient, int64, error) {
	var recipients []models.BatchRecipient
	var total int64

	countQuery := "SELECT COUNT(*) FROM batch_recipients WHERE batch_id = ?"
	err := r.db.Get(&total, countQuery, batchID)
	if err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM batch_recipients WHERE batch_id = ? ORDER BY `row_number`, id LIMIT ? OFFSET ?"
	err = r.db.Select(&recipients, query, batchID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return recipients, total, nil
}

// AllRecipients loads every row of a batch in input order for generation
func (r *NoticeRepository) AllRecipients(batchID int) ([]models.BatchRecipient, error) {
	var recipients []models.BatchRecipient
	query := "SELECT * FROM batch_recipients WHERE batch_id = ? ORDER BY `row_number`, id"
	err := r.db.Select(&recipients, query, batchID)
	return recipients, err
}

func (r *NoticeRepository) DeleteRecipientsByBatch(batchID int) error {
	query := "DELETE FROM batch_recipients WHERE batch_id = ?"
	_, err := r.db.Exec(query, batchID)
	return err
}

// Generated notices

func (r *NoticeRepository) CreateNotice(notice *models.GeneratedNotice) error {
	query := `INSERT INTO generated_notices (batch_id, routing_code, bank_name, filename,
	          record_count, status, error_message)
	          VALUES (:batch_id, :routing_code, :bank_name, :filename,
	          :record_count, :status, :error_message)`
	result, err := r.db.NamedExec(query, notice)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	notice.ID = int(id)
	return nil
}

func (r *NoticeRepository) FindNoticeByID(id int) (*models.GeneratedNotice, error) {
	var notice models.GeneratedNotice
	query := `SELECT id, batch_id, routing_code, bank_name, filename, record_count,
	          status, COALESCE(error_message, '') as error_message, created_at
	          FROM generated_notices WHERE id = ? LIMIT 1`
	err := r.db.Get(&notice, query, id)
	if err != nil {
		return nil, err
	}
	return &notice, nil
}

func (r *NoticeRepository) FindNoticesByBatch(batchID int) ([]models.GeneratedNotice, error) {
	var notices []models.GeneratedNotice
	query := `SELECT id, batch_id, routing_code, bank_name, filename, record_count,
	          status, COALESCE(error_message, '') as error_message, created_at
	          FROM generated_notices WHERE batch_id = ? ORDER BY id`
	err := r.db.Select(&notices, query, batchID)
	return notices, err
}

func (r *NoticeRepository) DeleteNoticesByBatch(batchID int) error {
	query := "DELETE FROM generated_notices WHERE batch_id = ?"
	_, err := r.db.Exec(query, batchID)
	return err
}
