package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// NewServiceContainer wires the ledger services over one storage adapter.
func NewServiceContainer(repos portsrepo.RepositoryProvider, opts ...Option) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:    NewAccountService(repos, opts...),
		Journal:    NewJournalService(repos, opts...),
		PeriodLock: NewPeriodLockService(repos, opts...),
		Reporting:  NewReportingService(repos, opts...),
	}
}
