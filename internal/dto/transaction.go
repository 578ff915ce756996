package dto

import (
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest creates a transaction when TransactionID is nil and
// replaces the stored one otherwise.
type RecordTransactionRequest struct {
	TransactionID   *string                `json:"transactionID" validate:"omitempty,uuid"`
	AccountID       string                 `json:"accountID" validate:"required,uuid"`
	CategoryID      *string                `json:"categoryID" validate:"omitempty,uuid"`
	CommitmentID    *string                `json:"commitmentID" validate:"omitempty,uuid"`
	Amount          decimal.Decimal        `json:"amount" validate:"gte=0"`
	TransactionType domain.TransactionType `json:"transactionType" validate:"required,oneof=INCOME EXPENSE"`
	Description     string                 `json:"description" validate:"max=256"`
}

// ListTransactionsParams defines token-based paging for an account's transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit" validate:"gte=0,lte=500"`
	NextToken *string `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextToken    *string              `json:"nextToken,omitempty"`
}
