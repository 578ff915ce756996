package models

// AccountType mirrors the account_type column.
type AccountType string

// Account is the accounts row. Totals are stored as integer minor units.
type Account struct {
	AccountID   string      `db:"account_id"`
	Name        string      `db:"name"`
	Description string      `db:"description"`
	AccountType AccountType `db:"account_type"`
	Closed      bool        `db:"closed"`
	Balance     int64       `db:"balance"`
	Commitment  int64       `db:"commitment"`
	AuditFields
}
