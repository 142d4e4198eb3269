package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements creates the tables the application needs. Statements are
// idempotent so startup can run them on every boot.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		username VARCHAR(100) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS notice_templates (
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		filename VARCHAR(255) NOT NULL,
		stored_path VARCHAR(500) NOT NULL,
		uploaded_by INT NOT NULL DEFAULT 0,
		is_default TINYINT(1) NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS notice_batches (
		id INT AUTO_INCREMENT PRIMARY KEY,
		batch_code VARCHAR(20) NOT NULL UNIQUE,
		user_id INT NOT NULL DEFAULT 0,
		template_id INT NOT NULL DEFAULT 0,
		filename VARCHAR(255) NOT NULL DEFAULT '',
		placeholder VARCHAR(255) NOT NULL DEFAULT '',
		tone VARCHAR(20) NOT NULL DEFAULT 'formal',
		font_name VARCHAR(100) NOT NULL DEFAULT '',
		font_size INT NOT NULL DEFAULT 0,
		total_rows INT NOT NULL DEFAULT 0,
		invalid_rows INT NOT NULL DEFAULT 0,
		total_groups INT NOT NULL DEFAULT 0,
		generated_count INT NOT NULL DEFAULT 0,
		failed_count INT NOT NULL DEFAULT 0,
		status VARCHAR(30) NOT NULL DEFAULT 'pending',
		error_message TEXT,
		output_dir VARCHAR(500) NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_batches_status (status),
		INDEX idx_batches_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	"CREATE TABLE IF NOT EXISTS batch_recipients (" +
		"id BIGINT AUTO_INCREMENT PRIMARY KEY, " +
		"batch_id INT NOT NULL, " +
		"`row_number` INT NOT NULL DEFAULT 0, " +
		"account_no VARCHAR(50) NOT NULL, " +
		"account_name VARCHAR(255) NOT NULL, " +
		"routing_code VARCHAR(20) NOT NULL, " +
		"bank_name VARCHAR(255) NOT NULL DEFAULT '', " +
		"INDEX idx_recipients_batch (batch_id), " +
		"INDEX idx_recipients_routing (routing_code)" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",

	`CREATE TABLE IF NOT EXISTS generated_notices (
		id INT AUTO_INCREMENT PRIMARY KEY,
		batch_id INT NOT NULL,
		routing_code VARCHAR(20) NOT NULL,
		bank_name VARCHAR(255) NOT NULL,
		filename VARCHAR(500) NOT NULL,
		record_count INT NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL DEFAULT 'generated',
		error_message TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_notices_batch (batch_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bank_overrides (
		id INT AUTO_INCREMENT PRIMARY KEY,
		prefix VARCHAR(4) NOT NULL UNIQUE,
		bank_name VARCHAR(255) NOT NULL,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables
func EnsureSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
