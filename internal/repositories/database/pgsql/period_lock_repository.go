package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxPeriodLockRepository struct {
	db dbtx
}

func newPeriodLockRepository(db dbtx) portsrepo.PeriodLockRepository {
	return &PgxPeriodLockRepository{db: db}
}

var _ portsrepo.PeriodLockRepository = (*PgxPeriodLockRepository)(nil)

func (r *PgxPeriodLockRepository) GetLock(ctx context.Context) (*domain.PeriodLock, error) {
	return r.get(ctx, `SELECT through_date, updated_at FROM period_locks WHERE id = 1`)
}

// periodLockKey identifies the transaction-scoped advisory lock that
// serializes period closes and journal writes.
const periodLockKey int64 = 0x4c45444745520001

// GetLockForUpdate takes the period advisory lock before reading, so callers
// serialize even before the first close has created the lock row. The lock
// is released when the caller's transaction ends.
func (r *PgxPeriodLockRepository) GetLockForUpdate(ctx context.Context) (*domain.PeriodLock, error) {
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, periodLockKey); err != nil {
		return nil, fmt.Errorf("failed to acquire period lock: %w", err)
	}
	return r.get(ctx, `SELECT through_date, updated_at FROM period_locks WHERE id = 1 FOR UPDATE`)
}

func (r *PgxPeriodLockRepository) get(ctx context.Context, query string) (*domain.PeriodLock, error) {
	var m models.PeriodLock
	if err := r.db.QueryRow(ctx, query).Scan(&m.ThroughDate, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read period lock: %w", err)
	}
	lock := mapping.ToDomainPeriodLock(m)
	return &lock, nil
}

func (r *PgxPeriodLockRepository) SaveLock(ctx context.Context, lock domain.PeriodLock) error {
	m := mapping.ToModelPeriodLock(lock)
	_, err := r.db.Exec(ctx,
		`INSERT INTO period_locks (id, through_date, updated_at) VALUES (1, $1, $2)
		 ON CONFLICT (id) DO UPDATE SET through_date = EXCLUDED.through_date, updated_at = EXCLUDED.updated_at
		 WHERE period_locks.through_date < EXCLUDED.through_date`,
		m.ThroughDate, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save period lock: %w", err)
	}
	return nil
}
