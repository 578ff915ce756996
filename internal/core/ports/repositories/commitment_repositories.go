package repositories

import (
	"context"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
)

// CommitmentReader defines read operations for commitment data
type CommitmentReader interface {
	// FindCommitmentByID retrieves a commitment by its ID.
	FindCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error)

	// FindCommitmentByIDForUpdate retrieves a commitment and locks its row for the
	// rest of the enclosing transaction.
	FindCommitmentByIDForUpdate(ctx context.Context, commitmentID string) (*domain.Commitment, error)

	// ListCommitmentsByAccount retrieves the commitments of an account ordered by expected date.
	ListCommitmentsByAccount(ctx context.Context, accountID string, includeArchived bool) ([]domain.Commitment, error)

	// CountCommitmentsByCategory counts commitments referencing a category.
	CountCommitmentsByCategory(ctx context.Context, categoryID string) (int, error)
}

// CommitmentWriter defines write operations for commitment data
type CommitmentWriter interface {
	SaveCommitment(ctx context.Context, commitment domain.Commitment) error
	UpdateCommitment(ctx context.Context, commitment domain.Commitment) error

	// DeleteCommitment removes a commitment; transactions fulfilling it keep living with a NULL reference.
	DeleteCommitment(ctx context.Context, commitmentID string) error
}

// CommitmentRepositoryFacade combines all commitment-related repository interfaces
type CommitmentRepositoryFacade interface {
	CommitmentReader
	CommitmentWriter
}
