package services

import (
	portsrepo "github.com/SscSPs/finance_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finance_ledger/internal/core/ports/services"
	"github.com/SscSPs/finance_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// repos serve reads outside a unit of work; every mutation goes through txManager.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, txManager portsrepo.TransactionManager, options ...ServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:        NewAccountService(repos.AccountRepo, txManager, cfg.DefaultPageSize, options...),
		Category:       NewCategoryService(repos.CategoryRepo, txManager, options...),
		Ledger:         NewLedgerService(txManager, options...),
		Commitment:     NewCommitmentService(repos.CommitmentRepo, txManager, options...),
		Transaction:    NewTransactionService(repos.TransactionRepo, txManager, cfg.DefaultPageSize, options...),
		Reconciliation: NewReconciliationService(repos.AccountRepo, txManager, cfg.ReconcileConcurrency, options...),
	}
}
