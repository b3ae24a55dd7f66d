package repositories

// Repositories is the set of repositories bound to one connection or transaction.
type Repositories struct {
	AccountRepo    AccountRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	PeriodLockRepo PeriodLockRepository
	ReportingRepo  ReportingRepository
}

// RepositoryProvider holds all repository interfaces needed by services.
// The embedded repositories run outside any transaction; TxManager opens
// units of work that receive transaction-bound copies.
type RepositoryProvider struct {
	Repositories
	TxManager TransactionManager
}
