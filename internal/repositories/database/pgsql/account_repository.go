package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/finance_ledger/internal/models"
	"github.com/SscSPs/finance_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, name, description, account_type, closed, balance, commitment, created_at, last_updated_at`

type PgxAccountRepository struct {
	db querier
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(db querier) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{db: db}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.Description,
		&m.AccountType,
		&m.Closed,
		&m.Balance,
		&m.Commitment,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveAccount inserts a new account. Totals always start at zero.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, name, description, account_type, closed, balance, commitment, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, 0, $6, $7);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.AccountType,
		m.Closed,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "account "+m.AccountID)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, apperrors.NewAppError(500, "failed to find account by ID "+accountID, err)
	}

	domainAcc := mapping.ToDomainAccount(m)
	return &domainAcc, nil
}

// ListAccounts retrieves a page of accounts ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	// Default limit if not specified or invalid
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY name, account_id LIMIT $1 OFFSET $2;`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account row", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}

	return mapping.ToDomainAccountSlice(accounts), nil
}

// UpdateAccount updates an existing account in the database.
// Balance and commitment are not touched here.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)

	query := `
		UPDATE accounts
		SET name = $2, description = $3, account_type = $4, closed = $5, last_updated_at = $6
		WHERE account_id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.Description,
		m.AccountType,
		m.Closed,
		m.LastUpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "account "+m.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, m.AccountID)
	}
	return nil
}

// DeleteAccount removes the account; commitments and transactions go with it.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return translateWriteError(err, "account "+accountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
	}
	return nil
}

// IncrementBalance adds delta to the stored balance in one statement.
func (r *PgxAccountRepository) IncrementBalance(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error {
	return r.increment(ctx, domain.BalanceField, accountID, delta, now)
}

// IncrementCommitment adds delta to the stored commitment total in one statement.
func (r *PgxAccountRepository) IncrementCommitment(ctx context.Context, accountID string, delta decimal.Decimal, now time.Time) error {
	return r.increment(ctx, domain.CommitmentField, accountID, delta, now)
}

func (r *PgxAccountRepository) increment(ctx context.Context, field domain.LedgerField, accountID string, delta decimal.Decimal, now time.Time) error {
	var query string
	switch field {
	case domain.BalanceField:
		query = `UPDATE accounts SET balance = balance + $2, last_updated_at = $3 WHERE account_id = $1;`
	case domain.CommitmentField:
		query = `UPDATE accounts SET commitment = commitment + $2, last_updated_at = $3 WHERE account_id = $1;`
	default:
		return fmt.Errorf("%w: unknown ledger field '%s'", apperrors.ErrValidation, field)
	}

	if delta.Abs().GreaterThan(domain.MaxAmount) {
		return fmt.Errorf("%w: %s increment %s is out of range", apperrors.ErrValidation, field, delta.String())
	}

	// BIGINT overflow of the running total surfaces as 22003.
	cmdTag, err := r.db.Exec(ctx, query, accountID, domain.ToMinorUnits(delta), now)
	if err != nil {
		return translateWriteError(err, fmt.Sprintf("%s of account %s", field, accountID))
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s not found during %s update", apperrors.ErrNotFound, accountID, field)
	}
	return nil
}

// SumLedgerByAccount recomputes both totals from the live records.
func (r *PgxAccountRepository) SumLedgerByAccount(ctx context.Context, accountID string) (domain.LedgerTotals, error) {
	query := `
		SELECT a.account_id,
		       (SELECT COALESCE(SUM(t.original_value), 0)::BIGINT FROM transactions t WHERE t.account_id = a.account_id),
		       (SELECT COALESCE(SUM(c.original_value), 0)::BIGINT FROM commitments c WHERE c.account_id = a.account_id)
		FROM accounts a
		WHERE a.account_id = $1;
	`
	var id string
	var balance, committed int64
	err := r.db.QueryRow(ctx, query, accountID).Scan(&id, &balance, &committed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LedgerTotals{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return domain.LedgerTotals{}, apperrors.NewAppError(500, "failed to sum ledger for account "+accountID, err)
	}

	return domain.LedgerTotals{
		AccountID:  id,
		Balance:    domain.FromMinorUnits(balance),
		Commitment: domain.FromMinorUnits(committed),
	}, nil
}

// SetAccountTotals overwrites both totals.
func (r *PgxAccountRepository) SetAccountTotals(ctx context.Context, totals domain.LedgerTotals, now time.Time) error {
	query := `UPDATE accounts SET balance = $2, commitment = $3, last_updated_at = $4 WHERE account_id = $1;`

	cmdTag, err := r.db.Exec(ctx, query,
		totals.AccountID,
		domain.ToMinorUnits(totals.Balance),
		domain.ToMinorUnits(totals.Commitment),
		now,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set totals for account "+totals.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, totals.AccountID)
	}
	return nil
}
