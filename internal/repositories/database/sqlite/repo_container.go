package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
)

// NewRepositoryProvider returns repositories that run each call on db.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return newRepositoryProvider(db)
}

// NewTransactionManager returns a TransactionManager whose units of work run on db.
func NewTransactionManager(db *sql.DB) *SQLiteTransactionManager {
	return &SQLiteTransactionManager{db: db}
}

func newRepositoryProvider(q querier) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     &accountRepository{db: q},
		CategoryRepo:    &categoryRepository{db: q},
		CommitmentRepo:  &commitmentRepository{db: q},
		TransactionRepo: &transactionRepository{db: q},
	}
}
