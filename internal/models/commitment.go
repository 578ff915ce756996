package models

import "time"

// Commitment is the commitments row.
type Commitment struct {
	CommitmentID    string          `db:"commitment_id"`
	AccountID       string          `db:"account_id"`
	CategoryID      string          `db:"category_id"`
	Amount          int64           `db:"amount"`
	TransactionType TransactionType `db:"transaction_type"`
	OriginalValue   int64           `db:"original_value"`
	Description     string          `db:"description"`
	ExpectedDate    time.Time       `db:"expected_date"`
	Archived        bool            `db:"archived"`
	AuditFields
}
