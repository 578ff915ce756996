// Package sqlite implements the repository ports on an embedded SQLite
// database through the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/finance_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// SQLiteTransactionManager implements portsrepo.TransactionManager on a *sql.DB.
// Handles opened through database.OpenSQLite begin transactions IMMEDIATE, so a
// unit of work holds the write lock from its first read.
type SQLiteTransactionManager struct {
	db *sql.DB
}

var _ portsrepo.TransactionManager = (*SQLiteTransactionManager)(nil)

// WithinTx runs fn with repositories bound to one SQLite transaction.
func (m *SQLiteTransactionManager) WithinTx(ctx context.Context, fn func(repos portsrepo.RepositoryProvider) error) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				slog.ErrorContext(ctx, "Rollback failed", slog.String("error", rbErr.Error()))
			}
		}
	}()

	if err = fn(newRepositoryProvider(tx)); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// translateWriteError maps constraint violations onto the apperrors sentinels.
func translateWriteError(err error, what string) error {
	var sqlErr *sqlitedrv.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return fmt.Errorf("%w: %s already exists", apperrors.ErrDuplicate, what)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, sqlite3.SQLITE_CONSTRAINT_TRIGGER:
			// ON DELETE RESTRICT reports as a trigger constraint.
			return fmt.Errorf("%w: %s violates a foreign key", apperrors.ErrConflict, what)
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return fmt.Errorf("%w: %s violates a check constraint", apperrors.ErrValidation, what)
		}
	}
	return apperrors.NewAppError(500, "failed to write "+what, err)
}

// affectedOrNotFound turns a zero-row write into ErrNotFound.
func affectedOrNotFound(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewAppError(500, "failed to read rows affected for "+what, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, what)
	}
	return nil
}
