package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

type periodLockRepository struct {
	db dbtx
}

func newPeriodLockRepository(db dbtx) portsrepo.PeriodLockRepository {
	return &periodLockRepository{db: db}
}

var _ portsrepo.PeriodLockRepository = (*periodLockRepository)(nil)

func (r *periodLockRepository) GetLock(ctx context.Context) (*domain.PeriodLock, error) {
	var through, updated string
	err := r.db.QueryRowContext(ctx, `SELECT through_date, updated_at FROM period_locks WHERE id = 1`).Scan(&through, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read period lock: %w", err)
	}

	var m models.PeriodLock
	if m.ThroughDate, err = parseStoredDate(through); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTimestamp(updated); err != nil {
		return nil, err
	}
	lock := mapping.ToDomainPeriodLock(m)
	return &lock, nil
}

// GetLockForUpdate is GetLock: transactions begin IMMEDIATE, so the
// surrounding transaction already holds the database write lock.
func (r *periodLockRepository) GetLockForUpdate(ctx context.Context) (*domain.PeriodLock, error) {
	return r.GetLock(ctx)
}

func (r *periodLockRepository) SaveLock(ctx context.Context, lock domain.PeriodLock) error {
	m := mapping.ToModelPeriodLock(lock)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO period_locks (id, through_date, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET through_date = excluded.through_date, updated_at = excluded.updated_at`,
		lock.ThroughDate.String(), formatTimestamp(m.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save period lock: %w", err)
	}
	return nil
}
