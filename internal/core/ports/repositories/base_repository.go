package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one database transaction.
type TransactionManager interface {
	// WithinTx calls fn with repositories bound to a single transaction.
	// The transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(repos RepositoryProvider) error) error
}
