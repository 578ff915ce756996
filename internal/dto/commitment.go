package dto

import (
	"time"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordCommitmentRequest creates a commitment when CommitmentID is nil and
// replaces the stored one otherwise.
type RecordCommitmentRequest struct {
	CommitmentID    *string                `json:"commitmentID" validate:"omitempty,uuid"`
	AccountID       string                 `json:"accountID" validate:"required,uuid"`
	CategoryID      string                 `json:"categoryID" validate:"required,uuid"`
	Amount          decimal.Decimal        `json:"amount" validate:"gte=0"`
	TransactionType domain.TransactionType `json:"transactionType" validate:"required,oneof=INCOME EXPENSE"`
	Description     string                 `json:"description" validate:"max=256"`
	ExpectedDate    time.Time              `json:"expectedDate" validate:"required"`
	Archived        bool                   `json:"archived"`
}

// ListCommitmentsParams filters commitment listings.
type ListCommitmentsParams struct {
	IncludeArchived bool `form:"includeArchived"`
}
