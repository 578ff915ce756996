package services

import (
	"context"

	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/SscSPs/finance_ledger/internal/dto"
)

// CommitmentReaderSvc defines read operations for commitments
type CommitmentReaderSvc interface {
	GetCommitmentByID(ctx context.Context, commitmentID string) (*domain.Commitment, error)
	ListCommitmentsByAccount(ctx context.Context, accountID string, params dto.ListCommitmentsParams) ([]domain.Commitment, error)
}

// CommitmentRecorderSvc saves and deletes commitments together with their
// effect on the owning account's commitment total.
type CommitmentRecorderSvc interface {
	// RecordCommitment creates a commitment, or replaces an existing one when
	// req.CommitmentID is set.
	RecordCommitment(ctx context.Context, req dto.RecordCommitmentRequest) (*domain.Commitment, error)

	// DeleteCommitment reverses the commitment's signed value and removes it.
	DeleteCommitment(ctx context.Context, commitmentID string) error
}

// CommitmentSvcFacade combines all commitment-related service interfaces
type CommitmentSvcFacade interface {
	CommitmentReaderSvc
	CommitmentRecorderSvc
}
