package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// PeriodLockSvcFacade manages the monotonic period close date.
type PeriodLockSvcFacade interface {
	// GetLock returns the current lock, or nil when the ledger was never closed.
	GetLock(ctx context.Context) (*domain.PeriodLock, error)

	// SetLock closes the ledger through the given date. The date must be
	// strictly later than any existing lock.
	SetLock(ctx context.Context, throughDate domain.Date) (*domain.PeriodLock, error)

	// AssertWritable fails when a journal write dated d would fall inside the closed period.
	AssertWritable(ctx context.Context, d domain.Date) error
}
