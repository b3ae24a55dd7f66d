package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the SQLite storage adapter over an open,
// migrated database handle.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Repositories: newRepositories(db),
		TxManager:    &txManager{db: db},
	}
}
