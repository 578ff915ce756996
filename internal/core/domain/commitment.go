package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Commitment is a planned income or expense that has not settled yet.
// It contributes to its account's Commitment total, archived or not.
type Commitment struct {
	CommitmentID    string          `json:"commitmentID"`
	AccountID       string          `json:"accountID"`
	CategoryID      string          `json:"categoryID"`
	Amount          decimal.Decimal `json:"amount"` // Unsigned magnitude
	TransactionType TransactionType `json:"transactionType"`
	OriginalValue   decimal.Decimal `json:"originalValue"` // Amount signed by TransactionType
	Description     string          `json:"description"`
	ExpectedDate    time.Time       `json:"expectedDate"`
	Archived        bool            `json:"archived"`
	AuditFields
}

// Validate checks the fields a commitment must carry before it touches the ledger.
func (c *Commitment) Validate() error {
	if c.AccountID == "" {
		return fmt.Errorf("%w: commitment account is required", apperrors.ErrValidation)
	}
	if c.CategoryID == "" {
		return fmt.Errorf("%w: commitment category is required", apperrors.ErrValidation)
	}
	if c.ExpectedDate.IsZero() {
		return fmt.Errorf("%w: commitment expected date is required", apperrors.ErrValidation)
	}
	if !c.TransactionType.IsValid() {
		return fmt.Errorf("%w: unknown transaction type '%s'", apperrors.ErrValidation, c.TransactionType)
	}
	return ValidateAmount(c.Amount)
}

// ApplySign recomputes OriginalValue from Amount and TransactionType.
func (c *Commitment) ApplySign() error {
	v, err := SignedAmount(c.Amount, c.TransactionType)
	if err != nil {
		return err
	}
	c.OriginalValue = v
	return nil
}

// Posting returns where this commitment's signed value lands.
func (c *Commitment) Posting() *Posting {
	return &Posting{AccountID: c.AccountID, SignedValue: c.OriginalValue}
}
