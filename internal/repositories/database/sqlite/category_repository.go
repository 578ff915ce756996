package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finance_ledger/internal/models"
	"github.com/SscSPs/finance_ledger/internal/utils/mapping"
)

const categoryColumns = `category_id, name, description, created_at, last_updated_at`

type categoryRepository struct {
	db querier
}

var _ portsrepo.CategoryRepositoryFacade = (*categoryRepository)(nil)

func scanCategory(row scanner) (models.Category, error) {
	var m models.Category
	err := row.Scan(&m.CategoryID, &m.Name, &m.Description, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *categoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?)`,
		m.CategoryID, m.Name, m.Description, m.CreatedAt.UTC(), m.LastUpdatedAt.UTC(),
	)
	if err != nil {
		return translateWriteError(err, "category "+m.CategoryID)
	}
	return nil
}

func (r *categoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	m, err := scanCategory(r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE category_id = ?`, categoryID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %s", apperrors.ErrNotFound, categoryID)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to get category "+categoryID, err)
	}
	d := mapping.ToDomainCategory(m)
	return &d, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name, category_id`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list categories", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		m, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category", err)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate categories", err)
	}
	return mapping.ToDomainCategorySlice(categories), nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET name = ?, description = ?, last_updated_at = ? WHERE category_id = ?`,
		m.Name, m.Description, m.LastUpdatedAt.UTC(), m.CategoryID,
	)
	if err != nil {
		return translateWriteError(err, "category "+m.CategoryID)
	}
	return affectedOrNotFound(res, "category "+m.CategoryID)
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE category_id = ?`, categoryID)
	if err != nil {
		return translateWriteError(err, "category "+categoryID)
	}
	return affectedOrNotFound(res, "category "+categoryID)
}
