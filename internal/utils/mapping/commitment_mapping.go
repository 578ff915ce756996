package mapping

import (
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/SscSPs/finance_ledger/internal/models"
)

// ToModelCommitment converts a domain Commitment to its row form.
// ExpectedDate is reduced to a UTC calendar date.
func ToModelCommitment(d domain.Commitment) models.Commitment {
	return models.Commitment{
		CommitmentID:    d.CommitmentID,
		AccountID:       d.AccountID,
		CategoryID:      d.CategoryID,
		Amount:          domain.ToMinorUnits(d.Amount),
		TransactionType: models.TransactionType(d.TransactionType),
		OriginalValue:   domain.ToMinorUnits(d.OriginalValue),
		Description:     d.Description,
		ExpectedDate:    domain.DateOnly(d.ExpectedDate),
		Archived:        d.Archived,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCommitment converts a commitments row to a domain Commitment.
func ToDomainCommitment(m models.Commitment) domain.Commitment {
	return domain.Commitment{
		CommitmentID:    m.CommitmentID,
		AccountID:       m.AccountID,
		CategoryID:      m.CategoryID,
		Amount:          domain.FromMinorUnits(m.Amount),
		TransactionType: domain.TransactionType(m.TransactionType),
		OriginalValue:   domain.FromMinorUnits(m.OriginalValue),
		Description:     m.Description,
		ExpectedDate:    domain.DateOnly(m.ExpectedDate),
		Archived:        m.Archived,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCommitmentSlice(ms []models.Commitment) []domain.Commitment {
	ds := make([]domain.Commitment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCommitment(m)
	}
	return ds
}
