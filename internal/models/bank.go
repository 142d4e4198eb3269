package models

import "time"

// BankOverride is an operator-managed display name for a routing-code prefix.
// Overrides layer over the built-in prefix table; the built-in table itself is
// never modified.
type BankOverride struct {
	ID        int       `db:"id" json:"id"`
	Prefix    string    `db:"prefix" json:"prefix"`
	BankName  string    `db:"bank_name" json:"bank_name"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type BankOverrideRequest struct {
	Prefix   string `json:"prefix" validate:"required,len=4"`
	BankName string `json:"bank_name" validate:"required"`
	IsActive bool   `json:"is_active"`
}

// BankEntry is a merged view of the built-in table and active overrides
type BankEntry struct {
	Prefix     string `json:"prefix"`
	BankName   string `json:"bank_name"`
	Overridden bool   `json:"overridden"`
}
