package mapping

import (
	"github.com/SscSPs/finance_ledger/internal/core/domain"
	"github.com/SscSPs/finance_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Name:        d.Name,
		Description: d.Description,
		AccountType: models.AccountType(d.AccountType),
		Closed:      d.Closed,
		Balance:     domain.ToMinorUnits(d.Balance),
		Commitment:  domain.ToMinorUnits(d.Commitment),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Name:        m.Name,
		Description: m.Description,
		AccountType: domain.AccountType(m.AccountType),
		Closed:      m.Closed,
		Balance:     domain.FromMinorUnits(m.Balance),
		Commitment:  domain.FromMinorUnits(m.Commitment),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
