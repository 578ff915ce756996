package domain

import (
	"fmt"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Transaction is an executed income or expense; it moves its account's Balance.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	AccountID       string          `json:"accountID"`
	CategoryID      *string         `json:"categoryID,omitempty"`   // Cleared when the category is deleted
	CommitmentID    *string         `json:"commitmentID,omitempty"` // Commitment this fulfils; cleared when it is deleted
	Amount          decimal.Decimal `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	OriginalValue   decimal.Decimal `json:"originalValue"`
	Description     string          `json:"description"`
	AuditFields
}

// Validate checks the fields a transaction must carry before it touches the ledger.
func (t *Transaction) Validate() error {
	if t.AccountID == "" {
		return fmt.Errorf("%w: transaction account is required", apperrors.ErrValidation)
	}
	if !t.TransactionType.IsValid() {
		return fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, t.TransactionType)
	}
	return ValidateAmount(t.Amount)
}

// ApplySign recomputes OriginalValue from Amount and TransactionType.
func (t *Transaction) ApplySign() error {
	v, err := SignedAmount(t.Amount, t.TransactionType)
	if err != nil {
		return err
	}
	t.OriginalValue = v
	return nil
}

// Posting returns where this transaction's signed value lands.
func (t *Transaction) Posting() *Posting {
	return &Posting{AccountID: t.AccountID, SignedValue: t.OriginalValue}
}
