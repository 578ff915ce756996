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

const commitmentColumns = `commitment_id, account_id, category_id, amount, transaction_type, original_value,
	description, expected_date, archived, created_at, last_updated_at`

type PgxCommitmentRepository struct {
	db querier
}

func newPgxCommitmentRepository(db querier) portsrepo.CommitmentRepositoryFacade {
	return &PgxCommitmentRepository{db: db}
}

var _ portsrepo.CommitmentRepositoryFacade = (*PgxCommitmentRepository)(nil)

func scanCommitment(row pgx.Row) (models.Commitment, error) {
	var m models.Commitment
	err := row.Scan(
		&m.CommitmentID,
		&m.AccountID,
		&m.CategoryID,
		&m.Amount,
		&m.TransactionType,
		&m.OriginalValue,
		&m.Description,
		&m.ExpectedDate,
		&m.Archived,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveCommitment inserts a new commitment.
func (r *PgxCommitmentRepository) SaveCommitment(ctx context.Context, commitment domain.Commitment) error {
	m := mapping.ToModelCommitment(commitment)
	query := `
		INSERT INTO commitments (` + commitmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		m.CommitmentID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.TransactionType,
		m.OriginalValue,
		m.Description,
		m.ExpectedDate,
		m.Archived,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "commitment "+m.CommitmentID)
	}
	return nil
}

func (r *PgxCommitmentRepository) FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	return r.findCommitment(ctx, `SELECT `+commitmentColumns+` FROM commitments WHERE commitment_id = $1;`, commitmentID)
}

// FindCommitmentByIDForUpdate locks the row until the enclosing transaction ends.
func (r *PgxCommitmentRepository) FindCommitmentByIDForUpdate(ctx context.Context, commitmentID string) (*domain.Commitment, error) {
	return r.findCommitment(ctx, `SELECT `+commitmentColumns+` FROM commitments WHERE commitment_id = $1 FOR UPDATE;`, commitmentID)
}

func (r *PgxCommitmentRepository) findCommitment(ctx context.Context, query, commitmentID string) (*domain.Commitment, error) {
	m, err := scanCommitment(r.db.QueryRow(ctx, query, commitmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitmentID)
		}
		return nil, apperrors.NewAppError(500, "failed to find commitment by ID "+commitmentID, err)
	}
	d := mapping.ToDomainCommitment(m)
	return &d, nil
}

// ListCommitmentsByAccount lists an account's commitments by expected date.
func (r *PgxCommitmentRepository) ListCommitmentsByAccount(ctx context.Context, accountID string, includeArchived bool) ([]domain.Commitment, error) {
	query := `SELECT ` + commitmentColumns + ` FROM commitments WHERE account_id = $1`
	if !includeArchived {
		query += ` AND archived = FALSE`
	}
	query += ` ORDER BY expected_date, created_at, commitment_id;`

	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query commitments for account "+accountID, err)
	}
	defer rows.Close()

	commitments := []models.Commitment{}
	for rows.Next() {
		m, err := scanCommitment(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan commitment row", err)
		}
		commitments = append(commitments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating commitment rows", err)
	}
	return mapping.ToDomainCommitmentSlice(commitments), nil
}

func (r *PgxCommitmentRepository) CountCommitmentsByCategory(ctx context.Context, categoryID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM commitments WHERE category_id = $1;`, categoryID).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count commitments for category "+categoryID, err)
	}
	return n, nil
}

// UpdateCommitment overwrites every mutable column, including original_value.
func (r *PgxCommitmentRepository) UpdateCommitment(ctx context.Context, commitment domain.Commitment) error {
	m := mapping.ToModelCommitment(commitment)
	query := `
		UPDATE commitments
		SET account_id = $2, category_id = $3, amount = $4, transaction_type = $5, original_value = $6,
		    description = $7, expected_date = $8, archived = $9, last_updated_at = $10
		WHERE commitment_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		m.CommitmentID,
		m.AccountID,
		m.CategoryID,
		m.Amount,
		m.TransactionType,
		m.OriginalValue,
		m.Description,
		m.ExpectedDate,
		m.Archived,
		m.LastUpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "commitment "+m.CommitmentID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, m.CommitmentID)
	}
	return nil
}

func (r *PgxCommitmentRepository) DeleteCommitment(ctx context.Context, commitmentID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM commitments WHERE commitment_id = $1;`, commitmentID)
	if err != nil {
		return translateWriteError(err, "commitment "+commitmentID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: commitment %s", apperrors.ErrNotFound, commitmentID)
	}
	return nil
}
