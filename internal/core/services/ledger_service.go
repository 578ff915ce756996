package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_ledger/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// applyDeltas pushes each delta to field through the storage's atomic
// increment. It must run inside the caller's unit of work; metrics are
// recorded separately by observeDeltas once that unit commits.
func (s *BaseService) applyDeltas(ctx context.Context, ledger portsrepo.LedgerWriter, field domain.LedgerField, deltas []domain.AccountDelta, now time.Time) error {
	for _, d := range deltas {
		for _, part := range domain.SplitDelta(d.Delta) {
			var err error
			switch field {
			case domain.BalanceField:
				err = ledger.IncrementBalance(ctx, d.AccountID, part, now)
			case domain.CommitmentField:
				err = ledger.IncrementCommitment(ctx, d.AccountID, part, now)
			default:
				err = fmt.Errorf("%w: unknown ledger field '%s'", apperrors.ErrValidation, field)
			}
			if err != nil {
				return fmt.Errorf("failed to increment %s of account %s: %w", field, d.AccountID, err)
			}
		}
		s.LogDebug(ctx, "Ledger increment applied",
			slog.String("account_id", d.AccountID),
			slog.String("field", string(field)),
			slog.String("delta", d.Delta.String()))
	}
	return nil
}

func (s *BaseService) observeDeltas(field domain.LedgerField, deltas []domain.AccountDelta) {
	for _, d := range deltas {
		s.metrics.ObserveMutation(string(field), d.Delta)
	}
}

// checkAccountOpen refuses to post to a closed account. An update that keeps
// the record on the same account with the same signed value is still allowed,
// so records on a closed account can be edited or archived.
func checkAccountOpen(account *domain.Account, prev, next *domain.Posting) error {
	if !account.Closed {
		return nil
	}
	if prev != nil && prev.AccountID == next.AccountID && prev.SignedValue.Equal(next.SignedValue) {
		return nil
	}
	return fmt.Errorf("%w: account %s is closed", apperrors.ErrValidation, account.AccountID)
}

type ledgerService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewLedgerService creates the direct ledger adjustment service.
func NewLedgerService(txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.LedgerSvc {
	return &ledgerService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
	}
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

func (s *ledgerService) IncrementBalance(ctx context.Context, accountID string, delta decimal.Decimal) error {
	return s.increment(ctx, domain.BalanceField, accountID, delta)
}

func (s *ledgerService) IncrementCommitment(ctx context.Context, accountID string, delta decimal.Decimal) error {
	return s.increment(ctx, domain.CommitmentField, accountID, delta)
}

func (s *ledgerService) increment(ctx context.Context, field domain.LedgerField, accountID string, delta decimal.Decimal) error {
	if accountID == "" {
		return fmt.Errorf("%w: account is required", apperrors.ErrValidation)
	}
	if err := domain.ValidateAmount(delta.Abs()); err != nil {
		return err
	}
	if delta.IsZero() {
		return nil
	}

	now := s.now()
	deltas := []domain.AccountDelta{{AccountID: accountID, Delta: delta}}
	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		return s.applyDeltas(ctx, repos.AccountRepo, field, deltas, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to increment ledger",
			slog.String("account_id", accountID),
			slog.String("field", string(field)))
		return err
	}
	s.observeDeltas(field, deltas)
	return nil
}
