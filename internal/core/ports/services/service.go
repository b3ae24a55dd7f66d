package services

// ServiceContainer holds instances of all the application services.
// Every host surface (actions, HTTP handlers, CLI) reaches the ledger through it.
type ServiceContainer struct {
	Account    AccountSvcFacade
	Journal    JournalSvcFacade
	PeriodLock PeriodLockSvcFacade
	Reporting  ReportingService
}
