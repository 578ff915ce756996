package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used by the command line tooling.
type ServiceContainer struct {
	Account        AccountSvcFacade
	Category       CategorySvcFacade
	Ledger         LedgerSvc
	Commitment     CommitmentSvcFacade
	Transaction    TransactionSvcFacade
	Reconciliation ReconciliationSvc
}
