package pgsql

import (
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider returns repositories that run each call on the pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return newRepositoryProvider(dbPool)
}

// NewTransactionManager returns a TransactionManager whose units of work run on dbPool.
func NewTransactionManager(dbPool *pgxpool.Pool) *PgxTransactionManager {
	return &PgxTransactionManager{BaseRepository{Pool: dbPool}}
}

func newRepositoryProvider(q querier) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(q),
		CategoryRepo:    newPgxCategoryRepository(q),
		CommitmentRepo:  newPgxCommitmentRepository(q),
		TransactionRepo: newPgxTransactionRepository(q),
	}
}
