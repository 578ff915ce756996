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

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	txManager       portsrepo.TransactionManager
	defaultPageSize int
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, txManager portsrepo.TransactionManager, defaultPageSize int, options ...ServiceOption) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService:     newBaseService(options...),
		accountRepo:     repo,
		txManager:       txManager,
		defaultPageSize: defaultPageSize,
	}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	accountType := req.AccountType
	if accountType == "" {
		accountType = domain.DefaultAccountType
	}

	now := s.now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AccountType: accountType,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		return repos.AccountRepo.SaveAccount(ctx, account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.observeOperation("account", "create")
	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err // Propagate error (including NotFound)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.Account, error) {
	if err := dto.Validate(params); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit == 0 {
		limit = s.defaultPageSize
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.Int("limit", limit),
			slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	if accounts == nil {
		return []domain.Account{}, nil // Return empty slice if repo returns nil
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var updated domain.Account
	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		account, err := repos.AccountRepo.FindAccountByID(ctx, accountID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			account.Name = *req.Name
		}
		if req.Description != nil {
			account.Description = *req.Description
		}
		if req.AccountType != nil {
			account.AccountType = *req.AccountType
		}
		if req.Closed != nil {
			account.Closed = *req.Closed
		}
		account.LastUpdatedAt = s.now()

		if err := repos.AccountRepo.UpdateAccount(ctx, *account); err != nil {
			return err
		}
		updated = *account
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update account",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	s.observeOperation("account", "update")
	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", accountID),
		slog.Bool("closed", updated.Closed))
	return &updated, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		return repos.AccountRepo.DeleteAccount(ctx, accountID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete account",
				slog.String("account_id", accountID))
		}
		return err
	}

	s.observeOperation("account", "delete")
	s.LogInfo(ctx, "Account deleted with its commitments and transactions",
		slog.String("account_id", accountID))
	return nil
}
