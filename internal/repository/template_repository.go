package repository

import (
	"noticegen-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type TemplateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) FindAll() ([]models.NoticeTemplate, error) {
	var templates []models.NoticeTemplate
	query := "SELECT * FROM notice_templates ORDER BY is_default DESC, created_at DESC"
	err := r.db.Select(&templates, query)
	return templates, err
}

func (r *TemplateRepository) FindByID(id int) (*models.NoticeTemplate, error) {
	var template models.NoticeTemplate
	query := "SELECT * FROM notice_templates WHERE id = ? LIMIT 1"
	err := r.db.Get(&template, query, id)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

// FindDefault returns the template flagged as default, or the most recent one
// when none is flagged.
func (r *TemplateRepository) FindDefault() (*models.NoticeTemplate, error) {
	var template models.NoticeTemplate
	query := "SELECT * FROM notice_templates ORDER BY is_default DESC, created_at DESC LIMIT 1"
	err := r.db.Get(&template, query)
	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *TemplateRepository) Create(template *models.NoticeTemplate) error {
	query := `INSERT INTO notice_templates (name, filename, stored_path, uploaded_by, is_default)
	          VALUES (:name, :filename, :stored_path, :uploaded_by, :is_default)`
	result, err := r.db.NamedExec(query, template)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	template.ID = int(id)
	return nil
}

// SetDefault flags one template as default and clears the flag on the rest
func (r *TemplateRepository) SetDefault(id int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE notice_templates SET is_default = 0"); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE notice_templates SET is_default = 1 WHERE id = ?", id); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *TemplateRepository) Delete(id int) error {
	query := "DELETE FROM notice_templates WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}
