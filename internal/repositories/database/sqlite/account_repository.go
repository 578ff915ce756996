package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finance_ledger/internal/models"
	"github.com/SscSPs/finance_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, description, account_type, closed, balance, commitment, created_at, last_updated_at`

type accountRepository struct {
	db querier
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func scanAccount(row scanner) (models.Account, error) {
	var m models.Account
	err := row.Scan(&m.AccountID, &m.Name, &m.Description, &m.AccountType, &m.Closed,
		&m.Balance, &m.Commitment, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, 0, 0, ?, ?)`,
		m.AccountID, m.Name, m.Description, m.AccountType, m.Closed, m.CreatedAt.UTC(), m.LastUpdatedAt.UTC(),
	)
	if err != nil {
		return translateWriteError(err, "account "+m.AccountID)
	}
	return nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	m, err := scanAccount(r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = ?`, accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to get account "+accountID, err)
	}
	d := mapping.ToDomainAccount(m)
	return &d, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY name, account_id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate accounts", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET name = ?, description = ?, account_type = ?, closed = ?, last_updated_at = ?
		 WHERE account_id = ?`,
		m.Name, m.Description, m.AccountType, m.Closed, m.LastUpdatedAt.UTC(), m.AccountID,
	)
	if err != nil {
		return translateWriteError(err, "account "+m.AccountID)
	}
	return affectedOrNotFound(res, "account "+m.AccountID)
}

func (r *accountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE account_id = ?`, accountID)
	if err != nil {
		return translateWriteError(err, "account "+accountID)
	}
	return affectedOrNotFound(res, "account "+accountID)
}

// The WHERE guards refuse a result outside the int64 range; SQLite would
// otherwise promote the column to REAL.
func (r *accountRepository) IncrementBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error {
	return r.increment(ctx, `
		UPDATE accounts SET balance = balance + ?1, last_updated_at = ?2
		WHERE account_id = ?3
		  AND (?1 <= 0 OR balance <= 9223372036854775807 - ?1)
		  AND (?1 >= 0 OR balance >= (-9223372036854775807 - 1) - ?1)`,
		domain.BalanceField, accountID, delta, now)
}

func (r *accountRepository) IncrementCommitment(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error {
	return r.increment(ctx, `
		UPDATE accounts SET commitment = commitment + ?1, last_updated_at = ?2
		WHERE account_id = ?3
		  AND (?1 <= 0 OR commitment <= 9223372036854775807 - ?1)
		  AND (?1 >= 0 OR commitment >= (-9223372036854775807 - 1) - ?1)`,
		domain.CommitmentField, accountID, delta, now)
}

func (r *accountRepository) increment(ctx context.Context, query string, field domain.LedgerField, accountID string, delta decimal.Decimal, now time.Time) error {
	if delta.Abs().GreaterThan(domain.MaxAmount) {
		return fmt.Errorf("%w: %s increment %s is out of range", apperrors.ErrValidation, field, delta.String())
	}
	res, err := r.db.ExecContext(ctx, query, domain.ToMinorUnits(delta), now.UTC(), accountID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to increment %s for account %s", field, accountID), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read rows affected for account "+accountID, err)
	}
	if n > 0 {
		return nil
	}

	var exists int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM accounts WHERE account_id = ?`, accountID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: account %s not found during %s update", apperrors.ErrNotFound, accountID, field)
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to check account "+accountID, err)
	}
	return fmt.Errorf("%w: %s of account %s would overflow", apperrors.ErrValidation, field, accountID)
}

func (r *accountRepository) SumLedgerByAccount(ctx context.Context, accountID string) (domain.LedgerTotals, error) {
	var id string
	var balance, committed int64
	err := r.db.QueryRowContext(ctx,
		`SELECT a.account_id,
		        (SELECT COALESCE(SUM(t.original_value), 0) FROM transactions t WHERE t.account_id = a.account_id),
		        (SELECT COALESCE(SUM(c.original_value), 0) FROM commitments c WHERE c.account_id = a.account_id)
		 FROM accounts a WHERE a.account_id = ?`, accountID,
	).Scan(&id, &balance, &committed)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LedgerTotals{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	if err != nil {
		return domain.LedgerTotals{}, apperrors.NewAppError(500, "failed to sum ledger for account "+accountID, err)
	}
	return domain.LedgerTotals{
		AccountID:  id,
		Balance:    domain.FromMinorUnits(balance),
		Commitment: domain.FromMinorUnits(committed),
	}, nil
}

func (r *accountRepository) SetAccountTotals(ctx context.Context, totals domain.LedgerTotals, now time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET balance = ?, commitment = ?, last_updated_at = ? WHERE account_id = ?`,
		domain.ToMinorUnits(totals.Balance), domain.ToMinorUnits(totals.Commitment), now.UTC(), totals.AccountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set totals for account "+totals.AccountID, err)
	}
	return affectedOrNotFound(res, "account "+totals.AccountID)
}
