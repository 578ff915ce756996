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

const commitmentColumns = `commitment_id, account_id, category_id, amount, transaction_type, original_value,
	description, expected_date, archived, created_at, last_updated_at`

type commitmentRepository struct {
	db querier
}

var _ portsrepo.CommitmentRepositoryFacade = (*commitmentRepository)(nil)

func scanCommitment(row scanner) (models.Commitment, error) {
	var m models.Commitment
	err := row.Scan(&m.CommitmentID, &m.AccountID, &m.CategoryID, &m.Amount, &m.TransactionType,
		&m.OriginalValue, &m.Description, &m.ExpectedDate, &m.Archived, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *commitmentRepository) SaveCommitment(ctx context.Context, commitment domain.Commitment) error {
	m := mapping.ToModelCommitment(commitment)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO commitments (`+commitmentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.CommitmentID, m.AccountID, m.CategoryID, m.Amount, m.TransactionType, m.OriginalValue,
		m.Description, m.ExpectedDate, m.Archived, m.CreatedAt.UTC(), m.LastUpdatedAt.UTC(),
	)
	if err != nil {
		return translateWriteError(err, "commitment "+m.CommitmentID)
	}
	return nil
}

func (r *commitmentRepository) FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	m, err := scanCommitment(r.db.QueryRowContext(ctx,
		`SELECT `+commitmentColumns+` FROM commitments WHERE commitment_id = ?`, commitmentID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitmentID)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to get commitment "+commitmentID, err)
	}
	d := mapping.ToDomainCommitment(m)
	return &d, nil
}

// FindCommitmentByIDForUpdate is a plain read: the enclosing IMMEDIATE
// transaction already holds the database write lock.
func (r *commitmentRepository) FindCommitmentByIDForUpdate(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	return r.FindCommitmentByID(ctx, commitmentID)
}

func (r *commitmentRepository) ListCommitmentsByAccount(ctx context.Context, accountID string, includeArchived bool) ([]domain.Commitment, error) {
	query := `SELECT ` + commitmentColumns + ` FROM commitments WHERE account_id = ?`
	if !includeArchived {
		query += ` AND archived = 0`
	}
	query += ` ORDER BY expected_date, created_at, commitment_id`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list commitments for account "+accountID, err)
	}
	defer rows.Close()

	commitments := []models.Commitment{}
	for rows.Next() {
		m, err := scanCommitment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan commitment", err)
		}
		commitments = append(commitments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate commitments", err)
	}
	return mapping.ToDomainCommitmentSlice(commitments), nil
}

func (r *commitmentRepository) CountCommitmentsByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commitments WHERE category_id = ?`, categoryID).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count commitments for category "+categoryID, err)
	}
	return n, nil
}

func (r *commitmentRepository) UpdateCommitment(ctx context.Context, commitment domain.Commitment) error {
	m := mapping.ToModelCommitment(commitment)
	res, err := r.db.ExecContext(ctx,
		`UPDATE commitments
		 SET account_id = ?, category_id = ?, amount = ?, transaction_type = ?, original_value = ?,
		     description = ?, expected_date = ?, archived = ?, last_updated_at = ?
		 WHERE commitment_id = ?`,
		m.AccountID, m.CategoryID, m.Amount, m.TransactionType, m.OriginalValue,
		m.Description, m.ExpectedDate, m.Archived, m.LastUpdatedAt.UTC(), m.CommitmentID,
	)
	if err != nil {
		return translateWriteError(err, "commitment "+m.CommitmentID)
	}
	return affectedOrNotFound(res, "commitment "+m.CommitmentID)
}

func (r *commitmentRepository) DeleteCommitment(ctx context.Context, commitmentID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM commitments WHERE commitment_id = ?`, commitmentID)
	if err != nil {
		return translateWriteError(err, "commitment "+commitmentID)
	}
	return affectedOrNotFound(res, "commitment "+commitmentID)
}
