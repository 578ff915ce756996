package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by name.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's descriptive fields. Totals are left alone.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account together with its commitments and transactions.
	DeleteAccount(ctx context.Context, accountID string) error
}

// LedgerWriter applies atomic additions to account running totals.
type LedgerWriter interface {
	// IncrementBalance adds delta to the account's balance in a single UPDATE.
	IncrementBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error

	// IncrementCommitment adds delta to the account's commitment total in a single UPDATE.
	IncrementCommitment(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error
}

// LedgerAuditor supports recomputing and repairing running totals.
type LedgerAuditor interface {
	// SumLedgerByAccount recomputes balance and commitment from live records.
	SumLedgerByAccount(ctx context.Context, accountID string) (domain.LedgerTotals, error)

	// SetAccountTotals overwrites both running totals. Only reconciliation uses this.
	SetAccountTotals(ctx context.Context, totals domain.LedgerTotals, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	LedgerWriter
	LedgerAuditor
}
