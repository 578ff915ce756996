package services

import (
	"context"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
)

// ReconciliationSvc compares stored account totals with the records behind them.
type ReconciliationSvc interface {
	// Reconcile checks every account. With repair set, drifted totals are
	// overwritten with the recomputed values.
	Reconcile(ctx context.Context, repair bool) (*domain.ReconciliationReport, error)
}
