package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// LedgerSvc adjusts account running totals directly. Recorders apply the same
// increments inside their own unit of work.
type LedgerSvc interface {
	// IncrementBalance atomically adds delta to the account's balance.
	IncrementBalance(ctx context.Context, accountID string, delta decimal.Decimal) error

	// IncrementCommitment atomically adds delta to the account's commitment total.
	IncrementCommitment(ctx context.Context, accountID string, delta decimal.Decimal) error
}
