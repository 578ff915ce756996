package mapping

import (
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/SscSPs/finance_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to its row form.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		CategoryID:      d.CategoryID,
		CommitmentID:    d.CommitmentID,
		Amount:          domain.ToMinorUnits(d.Amount),
		TransactionType: models.TransactionType(d.TransactionType),
		OriginalValue:   domain.ToMinorUnits(d.OriginalValue),
		Description:     d.Description,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a transactions row to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		CategoryID:      m.CategoryID,
		CommitmentID:    m.CommitmentID,
		Amount:          domain.FromMinorUnits(m.Amount),
		TransactionType: domain.TransactionType(m.TransactionType),
		OriginalValue:   domain.FromMinorUnits(m.OriginalValue),
		Description:     m.Description,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
