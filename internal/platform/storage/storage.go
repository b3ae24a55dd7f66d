package storage

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/sqlite"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

// Open connects to the configured database, applies migrations and returns
// the repository provider with a function that releases the connection.
func Open(ctx context.Context, cfg *config.Config) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.DatabaseDriver {
	case config.DriverPostgres:
		if err := database.MigratePostgres(cfg.DatabaseURL); err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		if err := database.MigrateSQLite(db); err != nil {
			_ = db.Close()
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("migrate sqlite: %w", err)
		}
		slog.Info("Opened SQLite ledger", slog.String("path", cfg.SQLitePath))
		closer := func() {
			if err := db.Close(); err != nil {
				slog.Error("Error closing SQLite database", slog.String("error", err.Error()))
			}
		}
		return sqlite.NewRepositoryProvider(db), closer, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
}
