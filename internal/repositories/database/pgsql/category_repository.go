package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finance_ledger/internal/models"
	"github.com/SscSPs/finance_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxCategoryRepository struct {
	db querier
}

func newPgxCategoryRepository(db querier) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{db: db}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (category_id, name, description, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	if _, err := r.db.Exec(ctx, query, m.CategoryID, m.Name, m.Description, m.CreatedAt, m.LastUpdatedAt); err != nil {
		return translateWriteError(err, "category "+m.CategoryID)
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, name, description, created_at, last_updated_at
		FROM categories
		WHERE category_id = $1;
	`
	var m models.Category
	err := r.db.QueryRow(ctx, query, categoryID).Scan(&m.CategoryID, &m.Name, &m.Description, &m.CreatedAt, &m.LastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find category by ID "+categoryID, err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT category_id, name, description, created_at, last_updated_at
		FROM categories
		ORDER BY name, category_id;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.Description, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}
	return mapping.ToDomainCategorySlice(categories), nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `UPDATE categories SET name = $2, description = $3, last_updated_at = $4 WHERE category_id = $1;`

	cmdTag, err := r.db.Exec(ctx, query, m.CategoryID, m.Name, m.Description, m.LastUpdatedAt)
	if err != nil {
		return translateWriteError(err, "category "+m.CategoryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, m.CategoryID)
	}
	return nil
}

// DeleteCategory removes a category. The schema refuses the delete while
// commitments reference it, which surfaces as ErrConflict.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return translateWriteError(err, "category "+categoryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	return nil
}
