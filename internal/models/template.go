package models

import "time"

type NoticeTemplate struct {
	ID         int       `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Filename   string    `db:"filename" json:"filename"`
	StoredPath string    `db:"stored_path" json:"stored_path"`
	UploadedBy int       `db:"uploaded_by" json:"uploaded_by"`
	IsDefault  bool      `db:"is_default" json:"is_default"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
