package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// PeriodLockRepository persists the single ledger-wide lock row.
type PeriodLockRepository interface {
	// GetLock returns the current lock or nil when none was ever set.
	GetLock(ctx context.Context) (*domain.PeriodLock, error)

	// GetLockForUpdate is GetLock that also serializes concurrent journal
	// writers on the lock row where the engine supports it.
	GetLockForUpdate(ctx context.Context) (*domain.PeriodLock, error)

	// SaveLock inserts or replaces the lock row.
	SaveLock(ctx context.Context, lock domain.PeriodLock) error
}
