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

type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
	txManager    portsrepo.TransactionManager
}

// NewCategoryService creates a new category service.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, txManager portsrepo.TransactionManager, options ...ServiceOption) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  newBaseService(options...),
		categoryRepo: repo,
		txManager:    txManager,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		return repos.CategoryRepo.SaveCategory(ctx, category)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.observeOperation("category", "create")
	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var updated domain.Category
	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		category, err := repos.CategoryRepo.FindCategoryByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			category.Name = *req.Name
		}
		if req.Description != nil {
			category.Description = *req.Description
		}
		category.LastUpdatedAt = s.now()
		if err := repos.CategoryRepo.UpdateCategory(ctx, *category); err != nil {
			return err
		}
		updated = *category
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		}
		return nil, err
	}

	s.observeOperation("category", "update")
	return &updated, nil
}

// DeleteCategory refuses while commitments reference the category; transactions
// that reference it lose the reference.
func (s *categoryService) DeleteCategory(ctx context.Context, categoryID string) error {
	err := s.txManager.WithinTx(ctx, func(repos portsrepo.RepositoryProvider) error {
		n, err := repos.CommitmentRepo.CountCommitmentsByCategory(ctx, categoryID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: category %s is referenced by %d commitment(s)", apperrors.ErrConflict, categoryID, n)
		}
		return repos.CategoryRepo.DeleteCategory(ctx, categoryID)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		}
		return err
	}

	s.observeOperation("category", "delete")
	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}
