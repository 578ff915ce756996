package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_ledger/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

const reconcilePageSize = 200

type reconciliationService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txManager   portsrepo.TransactionManager
	concurrency int
}

// NewReconciliationService creates the service that audits running totals.
// At most concurrency accounts are summed at once.
func NewReconciliationService(repo portsrepo.AccountRepositoryFacade, txManager portsrepo.TransactionManager, concurrency int, options ...ServiceOption) portssvc.ReconciliationSvc {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &reconciliationService{
		BaseService: newBaseService(options...),
		accountRepo: repo,
		txManager:   txManager,
		concurrency: concurrency,
	}
}

var _ portssvc.ReconciliationSvc = (*reconciliationService)(nil)

func (s *reconciliationService) Reconcile(ctx context.Context, repair bool) (*domain.ReconciliationReport, error) {
	report := &domain.ReconciliationReport{RanAt: s.now()}

	accounts, err := s.listAllAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for reconciliation")
		return nil, err
	}
	report.CheckedAccounts = len(accounts)

	var mu sync.Mutex
	drifts := []domain.AccountDrift{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, acc := range accounts {
		g.Go(func() error {
			totals, err := s.accountRepo.SumLedgerByAccount(gctx, acc.AccountID)
			if err != nil {
				return fmt.Errorf("failed to sum ledger of account %s: %w", acc.AccountID, err)
			}
			drift := domain.AccountDrift{
				AccountID:          acc.AccountID,
				AccountName:        acc.Name,
				StoredBalance:      acc.Balance,
				ExpectedBalance:    totals.Balance,
				StoredCommitment:   acc.Commitment,
				ExpectedCommitment: totals.Commitment,
			}
			if !drift.Drifted() {
				return nil
			}
			mu.Lock()
			drifts = append(drifts, drift)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Reconciliation aborted")
		return nil, err
	}

	sort.Slice(drifts, func(i, j int) bool { return drifts[i].AccountID < drifts[j].AccountID })
	report.Drifts = drifts

	for _, d := range drifts {
		s.LogInfo(ctx, "Account totals drifted",
			slog.String("account_id", d.AccountID),
			slog.String("stored_balance", d.StoredBalance.String()),
			slog.String("expected_balance", d.ExpectedBalance.String()),
			slog.String("stored_commitment", d.StoredCommitment.String()),
			slog.String("expected_commitment", d.ExpectedCommitment.String()))
	}

	if repair && len(drifts) > 0 {
		if err := s.repair(ctx, drifts); err != nil {
			s.LogError(ctx, err, "Failed to repair account totals")
			return nil, err
		}
		report.Repaired = true
	}

	s.metrics.SetDriftedAccounts(len(drifts))
	s.LogInfo(ctx, "Reconciliation finished",
		slog.Int("checked_accounts", report.CheckedAccounts),
		slog.Int("drifted_accounts", len(drifts)),
		slog.Bool("repaired", report.Repaired))
	return report, nil
}

// repair recomputes the totals of the drifted accounts inside one unit of
// work, so writes that landed since the scan are taken into account.
func (s *reconciliationService) repair(ctx context.Context, drifts []domain.AccountDrift) error {
	now := s.now()
	return s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		for _, d := range drifts {
			totals, err := repos.AccountRepo.SumLedgerByAccount(ctx, d.AccountID)
			if err != nil {
				return fmt.Errorf("failed to resum account %s: %w", d.AccountID, err)
			}
			if err := repos.AccountRepo.SetAccountTotals(ctx, totals, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *reconciliationService) listAllAccounts(ctx context.Context) ([]domain.Account, error) {
	var all []domain.Account
	for offset := 0; ; offset += reconcilePageSize {
		page, err := s.accountRepo.ListAccounts(ctx, reconcilePageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		all = append(all, page...)
		if len(page) < reconcilePageSize {
			return all, nil
		}
	}
}
