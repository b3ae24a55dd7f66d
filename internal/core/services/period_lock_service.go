package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

type periodLockService struct {
	BaseService
	lockRepo  portsrepo.PeriodLockRepository
	txManager portsrepo.TransactionManager
}

// NewPeriodLockService creates the period lock manager.
func NewPeriodLockService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.PeriodLockSvcFacade {
	return &periodLockService{
		BaseService: newBaseService(opts...),
		lockRepo:    repos.PeriodLockRepo,
		txManager:   repos.TxManager,
	}
}

var _ portssvc.PeriodLockSvcFacade = (*periodLockService)(nil)

func (s *periodLockService) GetLock(ctx context.Context) (*domain.PeriodLock, error) {
	lock, err := s.lockRepo.GetLock(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to read period lock")
		return nil, storageErr(err, "failed to read period lock")
	}
	return lock, nil
}

func (s *periodLockService) SetLock(ctx context.Context, throughDate domain.Date) (*domain.PeriodLock, error) {
	if throughDate.IsZero() {
		return nil, errInvalidDate("throughDate")
	}

	var saved *domain.PeriodLock
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		current, err := repos.PeriodLockRepo.GetLockForUpdate(ctx)
		if err != nil {
			return storageErr(err, "failed to read period lock")
		}
		if current != nil && !throughDate.After(current.ThroughDate) {
			return errLockAlreadyLater(current.ThroughDate, throughDate)
		}

		lock := domain.PeriodLock{ThroughDate: throughDate, UpdatedAt: s.Now()}
		if err := repos.PeriodLockRepo.SaveLock(ctx, lock); err != nil {
			return storageErr(err, "failed to save period lock")
		}
		saved = &lock
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to close period", slog.String("through_date", throughDate.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Period closed", slog.String("through_date", throughDate.String()))
	return saved, nil
}

func (s *periodLockService) AssertWritable(ctx context.Context, d domain.Date) error {
	return assertWritable(ctx, s.lockRepo, d, false)
}

// assertWritable checks d against the lock visible through repo. With
// forUpdate the lock row is read with GetLockForUpdate so the caller's
// transaction holds it until commit.
func assertWritable(ctx context.Context, repo portsrepo.PeriodLockRepository, d domain.Date, forUpdate bool) error {
	if d.IsZero() {
		return errInvalidDate("date")
	}

	read := repo.GetLock
	if forUpdate {
		read = repo.GetLockForUpdate
	}
	lock, err := read(ctx)
	if err != nil {
		return storageErr(err, "failed to read period lock")
	}
	if lock.Locks(d) {
		return errPeriodLocked(d, lock.ThroughDate)
	}
	return nil
}
