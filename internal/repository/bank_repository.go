package repository

import (
	"noticegen-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type BankRepository struct {
	db *sqlx.DB
}

func NewBankRepository(db *sqlx.DB) *BankRepository {
	return &BankRepository{db: db}
}

func (r *BankRepository) FindAll() ([]models.BankOverride, error) {
	var overrides []models.BankOverride
	query := "SELECT * FROM bank_overrides ORDER BY prefix"
	err := r.db.Select(&overrides, query)
	return overrides, err
}

// FindActive returns only the overrides that should take effect at resolve time
func (r *BankRepository) FindActive() ([]models.BankOverride, error) {
	var overrides []models.BankOverride
	query := "SELECT * FROM bank_overrides WHERE is_active = 1 ORDER BY prefix"
	err := r.db.Select(&overrides, query)
	return overrides, err
}

func (r *BankRepository) FindByID(id int) (*models.BankOverride, error) {
	var override models.BankOverride
	query := "SELECT * FROM bank_overrides WHERE id = ? LIMIT 1"
	err := r.db.Get(&override, query, id)
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *BankRepository) FindByPrefix(prefix string) (*models.BankOverride, error) {
	var override models.BankOverride
	query := "SELECT * FROM bank_overrides WHERE prefix = ? LIMIT 1"
	err := r.db.Get(&override, query, prefix)
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *BankRepository) Create(override *models.BankOverride) error {
	query := `INSERT INTO bank_overrides (prefix, bank_name, is_active)
	          VALUES (:prefix, :bank_name, :is_active)`
	result, err := r.db.NamedExec(query, override)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	override.ID = int(id)
	return nil
}

// Upsert inserts or updates by prefix, used by the bulk import
func (r *BankRepository) Upsert(override *models.BankOverride) error {
	query := `INSERT INTO bank_overrides (prefix, bank_name, is_active)
	          VALUES (:prefix, :bank_name, :is_active)
	          ON DUPLICATE KEY UPDATE bank_name = VALUES(bank_name), is_active = VALUES(is_active)`
	_, err := r.db.NamedExec(query, override)
	return err
}

func (r *BankRepository) Update(override *models.BankOverride) error {
	query := `UPDATE bank_overrides SET prefix = :prefix, bank_name = :bank_name,
	          is_active = :is_active WHERE id = :id`
	_, err := r.db.NamedExec(query, override)
	return err
}

func (r *BankRepository) Delete(id int) error {
	query := "DELETE FROM bank_overrides WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}
