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
	"github.com/SscSPs/finance_ledger/internal/utils/pagination"
)

const transactionColumns = `transaction_id, account_id, category_id, commitment_id, amount, transaction_type,
	original_value, description, created_at, last_updated_at`

type transactionRepository struct {
	db querier
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func scanTransaction(row scanner) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(&m.TransactionID, &m.AccountID, &m.CategoryID, &m.CommitmentID, &m.Amount,
		&m.TransactionType, &m.OriginalValue, &m.Description, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *transactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.TransactionID, m.AccountID, m.CategoryID, m.CommitmentID, m.Amount, m.TransactionType,
		m.OriginalValue, m.Description, m.CreatedAt.UTC(), m.LastUpdatedAt.UTC(),
	)
	if err != nil {
		return translateWriteError(err, "transaction "+m.TransactionID)
	}
	return nil
}

func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	m, err := scanTransaction(r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = ?`, transactionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to get transaction "+transactionID, err)
	}
	d := mapping.ToDomainTransaction(m)
	return &d, nil
}

// FindTransactionByIDForUpdate is a plain read: the enclosing IMMEDIATE
// transaction already holds the database write lock.
func (r *transactionRepository) FindTransactionByIDForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.FindTransactionByID(ctx, transactionID)
}

func (r *transactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	args := []any{accountID}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id = ?`
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		query += ` AND (created_at < ? OR (created_at = ? AND transaction_id < ?))`
		args = append(args, cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	query += ` ORDER BY created_at DESC, transaction_id DESC LIMIT ?`
	args = append(args, fetchLimit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list transactions for account "+accountID, err)
	}
	defer rows.Close()

	results := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to iterate transactions", err)
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

func (r *transactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET account_id = ?, category_id = ?, commitment_id = ?, amount = ?, transaction_type = ?,
		     original_value = ?, description = ?, last_updated_at = ?
		 WHERE transaction_id = ?`,
		m.AccountID, m.CategoryID, m.CommitmentID, m.Amount, m.TransactionType,
		m.OriginalValue, m.Description, m.LastUpdatedAt.UTC(), m.TransactionID,
	)
	if err != nil {
		return translateWriteError(err, "transaction "+m.TransactionID)
	}
	return affectedOrNotFound(res, "transaction "+m.TransactionID)
}

func (r *transactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = ?`, transactionID)
	if err != nil {
		return translateWriteError(err, "transaction "+transactionID)
	}
	return affectedOrNotFound(res, "transaction "+transactionID)
}
