package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_ledger/internal/core/ports/services"
	"github.com/SscSPs/finance_ledger/internal/dto"
	"github.com/google/uuid"
)

type commitmentService struct {
	BaseService
	commitmentRepo portsrepo.CommitmentRepositoryFacade
	txManager      portsrepo.TransactionManager
}

// NewCommitmentService creates the commitment recorder.
func NewCommitmentService(repo portsrepo.CommitmentRepositoryFacade, txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.CommitmentSvcFacade {
	return &commitmentService{
		BaseService:    newBaseService(options...),
		commitmentRepo: repo,
		txManager:      txManager,
	}
}

var _ portssvc.CommitmentSvcFacade = (*commitmentService)(nil)

func (s *commitmentService) GetCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	commitment, err := s.commitmentRepo.FindCommitmentByID(ctx, commitmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find commitment", slog.String("commitment_id", commitmentID))
		}
		return nil, err
	}
	return commitment, nil
}

func (s *commitmentService) ListCommitmentsByAccount(ctx context.Context, accountID string, params dto.ListCommitmentsParams) ([]domain.Commitment, error) {
	commitments, err := s.commitmentRepo.ListCommitmentsByAccount(ctx, accountID, params.IncludeArchived)
	if err != nil {
		s.LogError(ctx, err, "Failed to list commitments", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list commitments: %w", err)
	}
	if commitments == nil {
		return []domain.Commitment{}, nil
	}
	return commitments, nil
}

// RecordCommitment saves the commitment and moves the commitment totals of the
// affected accounts by the change in its signed value, all in one unit of work.
func (s *commitmentService) RecordCommitment(ctx context.Context, req dto.RecordCommitmentRequest) (*domain.Commitment, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	op := "create"
	if req.CommitmentID != nil {
		op = "update"
	}

	var saved domain.Commitment
	var deltas []domain.AccountDelta
	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		var prev *domain.Commitment
		if req.CommitmentID != nil {
			var err error
			prev, err = repos.CommitmentRepo.FindCommitmentByIDForUpdate(ctx, *req.CommitmentID)
			if err != nil {
				return err
			}
		}

		account, err := repos.AccountRepo.FindAccountByID(ctx, req.AccountID)
		if err != nil {
			return err
		}
		if _, err := repos.CategoryRepo.FindCategoryByID(ctx, req.CategoryID); err != nil {
			return err
		}

		next := domain.Commitment{
			CommitmentID:    uuid.NewString(),
			AccountID:       req.AccountID,
			CategoryID:      req.CategoryID,
			Amount:          req.Amount,
			TransactionType: req.TransactionType,
			Description:     req.Description,
			ExpectedDate:    domain.DateOnly(req.ExpectedDate),
			Archived:        req.Archived,
			AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
		}
		if prev != nil {
			next.CommitmentID = prev.CommitmentID
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
		if err := s.applyDeltas(ctx, repos.AccountRepo, domain.CommitmentField, deltas, now); err != nil {
			return err
		}

		if prev == nil {
			err = repos.CommitmentRepo.SaveCommitment(ctx, next)
		} else {
			err = repos.CommitmentRepo.UpdateCommitment(ctx, next)
		}
		if err != nil {
			return err
		}
		saved = next
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to record commitment",
				slog.String("account_id", req.AccountID),
				slog.String("op", op))
		}
		return nil, err
	}

	s.observeDeltas(domain.CommitmentField, deltas)
	s.observeOperation("commitment", op)
	s.LogInfo(ctx, "Commitment recorded",
		slog.String("commitment_id", saved.CommitmentID),
		slog.String("account_id", saved.AccountID),
		slog.String("original_value", saved.OriginalValue.String()),
		slog.String("op", op))
	return &saved, nil
}

// DeleteCommitment reverses the commitment's signed value on its account and
// removes it. Transactions that fulfilled it keep a NULL reference.
func (s *commitmentService) DeleteCommitment(ctx context.Context, commitmentID string) error {
	now := s.now()
	var deltas []domain.AccountDelta
	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		prev, err := repos.CommitmentRepo.FindCommitmentByIDForUpdate(ctx, commitmentID)
		if err != nil {
			return err
		}
		deltas = domain.LedgerDeltas(prev.Posting(), nil)
		if err := s.applyDeltas(ctx, repos.AccountRepo, domain.CommitmentField, deltas, now); err != nil {
			return err
		}
		return repos.CommitmentRepo.DeleteCommitment(ctx, commitmentID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete commitment", slog.String("commitment_id", commitmentID))
		}
		return err
	}

	s.observeDeltas(domain.CommitmentField, deltas)
	s.observeOperation("commitment", "delete")
	s.LogInfo(ctx, "Commitment deleted", slog.String("commitment_id", commitmentID))
	return nil
}
