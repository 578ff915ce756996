package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so every repository
// can run standalone or inside a unit of work.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgreSQL error codes the repositories translate.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// PgxTransactionManager implements portsrepo.TransactionManager on a pgx pool.
type PgxTransactionManager struct {
	BaseRepository
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

// WithinTx runs fn with repositories bound to one pgx transaction.
func (m *PgxTransactionManager) WithinTx(ctx context.Context, fn func(repos portsrepo.RepositoryProvider) error) (err error) {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = m.Rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			if rbErr := m.Rollback(ctx, tx); rbErr != nil {
				slog.ErrorContext(ctx, "Rollback failed", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err = fn(newRepositoryProvider(tx)); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}

// translateWriteError maps constraint violations onto the apperrors sentinels.
func translateWriteError(err error, what string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, what)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrConflict, what, pgErr.ConstraintName)
		case pgCheckViolation:
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, what, pgErr.ConstraintName)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: %s is out of range", apperrors.ErrValidation, what)
		}
	}
	return apperrors.NewAppError(500, "failed to write "+what, err)
}
