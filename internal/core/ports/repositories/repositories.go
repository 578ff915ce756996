package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Inside TransactionManager.WithinTx every field is bound to the same transaction.
type RepositoryProvider struct {
	AccountRepo     AccountRepositoryFacade
	CategoryRepo    CategoryRepositoryFacade
	CommitmentRepo  CommitmentRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
}
