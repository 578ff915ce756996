package models

// TransactionType mirrors the transaction_type column (INCOME or EXPENSE).
type TransactionType string

// Transaction is the transactions row. CategoryID and CommitmentID are nullable.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	AccountID       string          `db:"account_id"`
	CategoryID      *string         `db:"category_id"`
	CommitmentID    *string         `db:"commitment_id"`
	Amount          int64           `db:"amount"`
	TransactionType TransactionType `db:"transaction_type"`
	OriginalValue   int64           `db:"original_value"`
	Description     string          `db:"description"`
	AuditFields
}
