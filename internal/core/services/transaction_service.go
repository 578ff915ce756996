package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_ledger/internal/core/ports/services"
	"github.com/SscSPs/finance_ledger/internal/dto"
	"github.com/google/uuid"
)

type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	txManager       portsrepo.TransactionManager
	defaultPageSize int
}

// NewTransactionService creates the transaction recorder.
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, txManager portsrepo.TransactionManager, defaultPageSize int, options ...ServiceOption) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService:     newBaseService(options...),
		transactionRepo: repo,
		txManager:       txManager,
		defaultPageSize: defaultPageSize,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactionsByAccount(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if err := dto.Validate(params); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit == 0 {
		limit = s.defaultPageSize
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByAccount(ctx, accountID, limit, params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list transactions",
				slog.String("account_id", accountID),
				slog.Int("limit", limit))
		}
		return nil, err
	}
	if txns == nil {
		txns = []domain.Transaction{}
	}

	return &dto.ListTransactionsResponse{
		Transactions: txns,
		NextToken:    nextToken,
	}, nil
}

// RecordTransaction saves the transaction and moves the balances of the
// affected accounts by the change in its signed value, all in one unit of work.
func (s *transactionService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest) (*domain.Transaction, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	op := "create"
	if req.TransactionID != nil {
		op = "update"
	}

	var saved domain.Transaction
	var deltas []domain.AccountDelta
	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		var prev *domain.Transaction
		if req.TransactionID != nil {
			var err error
			prev, err = repos.TransactionRepo.FindTransactionByIDForUpdate(ctx, *req.TransactionID)
			if err != nil {
				return err
			}
		}

		account, err := repos.AccountRepo.FindAccountByID(ctx, req.AccountID)
		if err != nil {
			return err
		}
		if req.CategoryID != nil {
			if _, err := repos.CategoryRepo.FindCategoryByID(ctx, *req.CategoryID); err != nil {
				return err
			}
		}
		if req.CommitmentID != nil {
			if _, err := repos.CommitmentRepo.FindCommitmentByID(ctx, *req.CommitmentID); err != nil {
				return err
			}
		}

		next := domain.Transaction{
			TransactionID:   uuid.NewString(),
			AccountID:       req.AccountID,
			CategoryID:      req.CategoryID,
			CommitmentID:    req.CommitmentID,
			Amount:          req.Amount,
			TransactionType: req.TransactionType,
			Description:     req.Description,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if prev != nil {
			next.TransactionID = prev.TransactionID
			next.CreatedAt = prev.CreatedAt
		}
		if err := next.Validate(); err != nil {
			return err
		}
		if err := next.ApplySign(); err != nil {
			return err
		}

		var prevPosting *domain.Posting
		if prev != nil {
			prevPosting = prev.Posting()
		}
		if err := checkAccountOpen(account, prevPosting, next.Posting()); err != nil {
			return err
		}
		deltas = domain.LedgerDeltas(prevPosting, next.Posting())
		if err := s.applyDeltas(ctx, repos.AccountRepo, domain.BalanceField, deltas, now); err != nil {
			return err
		}

		if prev == nil {
			err = repos.TransactionRepo.SaveTransaction(ctx, next)
		} else {
			err = repos.TransactionRepo.UpdateTransaction(ctx, next)
		}
		if err != nil {
			return err
		}
		saved = next
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to record transaction",
				slog.String("account_id", req.AccountID),
				slog.String("op", op))
		}
		return nil, err
	}

	s.observeDeltas(domain.BalanceField, deltas)
	s.observeOperation("transaction", op)
	s.LogInfo(ctx, "Transaction recorded",
		slog.String("transaction_id", saved.TransactionID),
		slog.String("account_id", saved.AccountID),
		slog.String("original_value", saved.OriginalValue.String()),
		slog.String("op", op))
	return &saved, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	now := s.now()
	var deltas []domain.AccountDelta
	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		prev, err := repos.TransactionRepo.FindTransactionByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}
		deltas = domain.LedgerDeltas(prev.Posting(), nil)
		if err := s.applyDeltas(ctx, repos.AccountRepo, domain.BalanceField, deltas, now); err != nil {
			return err
		}
		return repos.TransactionRepo.DeleteTransaction(ctx, transactionID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}

	s.observeDeltas(domain.BalanceField, deltas)
	s.observeOperation("transaction", "delete")
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
