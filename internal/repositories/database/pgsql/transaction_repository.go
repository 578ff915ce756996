package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finance_ledger/internal/models"
	"github.com/SscSPs/finance_ledger/internal/utils/mapping"
	"github.com/SscSPs/finance_ledger/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const transactionColumns = `transaction_id, account_id, category_id, commitment_id, amount, transaction_type,
	original_value, description, created_at, last_updated_at`

type PgxTransactionRepository struct {
	db querier
}

func newPgxTransactionRepository(db querier) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.CategoryID,
		&m.CommitmentID,
		&m.Amount,
		&m.TransactionType,
		&m.OriginalValue,
		&m.Description,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.db.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.CategoryID,
		m.CommitmentID,
		m.Amount,
		m.TransactionType,
		m.OriginalValue,
		m.Description,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "transaction "+m.TransactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findTransaction(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1;`, transactionID)
}

// FindTransactionByIDForUpdate locks the row until the enclosing transaction ends.
func (r *PgxTransactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.findTransaction(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID)
}

func (r *PgxTransactionRepository) findTransaction(ctx context.Context, query, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// ListTransactionsByAccount retrieves a paginated list of transactions for an account,
// newest first, using token-based pagination.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	args := []any{accountID}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = $1`

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		// Tuple comparison keeps the order stable across equal timestamps.
		query += ` AND (created_at, transaction_id) < ($2, $3)`
		args = append(args, cursor.CreatedAt, cursor.ID)
	}
	query += ` ORDER BY created_at DESC, transaction_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	fetched := len(results)
	if fetched > limit {
		results = results[:limit]
	}
	var next *string
	if len(results) > 0 {
		last := results[len(results)-1]
		next = pagination.NextToken(fetched, limit, pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.TransactionID})
	}

	return mapping.ToDomainTransactionSlice(results), next, nil
}

// UpdateTransaction overwrites every mutable column, including original_value.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET account_id = $2, category_id = $3, commitment_id = $4, amount = $5, transaction_type = $6,
		    original_value = $7, description = $8, last_updated_at = $9
		WHERE transaction_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		m.TransactionID,
		m.AccountID,
		m.CategoryID,
		m.CommitmentID,
		m.Amount,
		m.TransactionType,
		m.OriginalValue,
		m.Description,
		m.LastUpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "transaction "+m.TransactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, m.TransactionID)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return translateWriteError(err, "transaction "+transactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}
