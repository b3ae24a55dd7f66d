package services_test

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindChildIDs(ctx context.Context, parentIDs []int64) ([]int64, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockAccountRepository) CountLinesForAccounts(ctx context.Context, accountIDs []int64) (int64, error) {
	args := m.Called(ctx, accountIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccounts(ctx context.Context, accountIDs []int64) error {
	args := m.Called(ctx, accountIDs)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) SearchEntries(ctx context.Context, search domain.JournalSearch) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveLine(ctx context.Context, line domain.JournalLine) (*domain.JournalLine, error) {
	args := m.Called(ctx, line)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, entryID int64) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// --- Mock PeriodLockRepository ---
type MockPeriodLockRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodLockRepository = (*MockPeriodLockRepository)(nil)

func (m *MockPeriodLockRepository) GetLock(ctx context.Context) (*domain.PeriodLock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodLock), args.Error(1)
}

func (m *MockPeriodLockRepository) GetLockForUpdate(ctx context.Context) (*domain.PeriodLock, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodLock), args.Error(1)
}

func (m *MockPeriodLockRepository) SaveLock(ctx context.Context, lock domain.PeriodLock) error {
	args := m.Called(ctx, lock)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) SumLinesByAccount(ctx context.Context, r domain.DateRange) (map[int64]domain.AccountTotals, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.AccountTotals), args.Error(1)
}

func (m *MockReportingRepository) ListLedgerLines(ctx context.Context, accountID int64, r domain.DateRange) ([]domain.LedgerRow, error) {
	args := m.Called(ctx, accountID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerRow), args.Error(1)
}

// passthroughTxManager runs units of work directly against the mocks and
// records how many ran and whether they failed.
type passthroughTxManager struct {
	repos     portsrepo.Repositories
	writes    int
	reads     int
	rollbacks int
}

var _ portsrepo.TransactionManager = (*passthroughTxManager)(nil)

func (t *passthroughTxManager) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	t.writes++
	return t.run(ctx, fn)
}

func (t *passthroughTxManager) WithinReadOnlyTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	t.reads++
	return t.run(ctx, fn)
}

func (t *passthroughTxManager) run(ctx context.Context, fn portsrepo.TxFunc) error {
	if err := fn(ctx, t.repos); err != nil {
		t.rollbacks++
		return err
	}
	return nil
}

// mockStore bundles one mock per repository behind a RepositoryProvider.
type mockStore struct {
	accounts *MockAccountRepository
	journal  *MockJournalRepository
	locks    *MockPeriodLockRepository
	reports  *MockReportingRepository
	tx       *passthroughTxManager
}

func newMockStore() *mockStore {
	s := &mockStore{
		accounts: new(MockAccountRepository),
		journal:  new(MockJournalRepository),
		locks:    new(MockPeriodLockRepository),
		reports:  new(MockReportingRepository),
	}
	repos := portsrepo.Repositories{
		AccountRepo:    s.accounts,
		JournalRepo:    s.journal,
		PeriodLockRepo: s.locks,
		ReportingRepo:  s.reports,
	}
	s.tx = &passthroughTxManager{repos: repos}
	return s
}

func (s *mockStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{Repositories: s.tx.repos, TxManager: s.tx}
}

func (s *mockStore) assertExpectations(t mock.TestingT) {
	s.accounts.AssertExpectations(t)
	s.journal.AssertExpectations(t)
	s.locks.AssertExpectations(t)
	s.reports.AssertExpectations(t)
}

func ptr[T any](v T) *T { return &v }
