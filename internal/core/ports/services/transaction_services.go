package services

import (
	"context"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/SscSPs/finance_ledger/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByAccount returns one page of an account's transactions, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionRecorderSvc saves and deletes transactions together with their
// effect on the owning account's balance.
type TransactionRecorderSvc interface {
	// RecordTransaction creates a transaction, or replaces an existing one when
	// req.TransactionID is set.
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction reverses the transaction's signed value and removes it.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionRecorderSvc
}
