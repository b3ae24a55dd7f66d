package pgsql_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// PgsqlRepositoryTestSuite runs against a live database named by
// PGSQL_TEST_URL. Every table is truncated before each test.
type PgsqlRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
}

func (s *PgsqlRepositoryTestSuite) SetupSuite() {
	url := os.Getenv("PGSQL_TEST_URL")
	if url == "" {
		s.T().Skip("PGSQL_TEST_URL not set")
	}
	s.ctx = context.Background()
	s.Require().NoError(database.MigratePostgres(url))
	pool, err := database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.pool = pool
	s.repos = pgsql.NewRepositoryProvider(pool)
}

func (s *PgsqlRepositoryTestSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
}

func (s *PgsqlRepositoryTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE journal_lines, journal_entries, accounts, period_locks RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *PgsqlRepositoryTestSuite) saveAccount(code string, t domain.AccountType, parent *int64) domain.Account {
	acc, err := s.repos.AccountRepo.SaveAccount(s.ctx, domain.Account{Code: code, Name: code, Type: t, ParentID: parent, CreatedAt: time.Now().UTC()})
	s.Require().NoError(err)
	return *acc
}

func (s *PgsqlRepositoryTestSuite) TestAccountsAndOrdering() {
	s.saveAccount("b", domain.Asset, nil)
	s.saveAccount("B", domain.Asset, nil)
	s.saveAccount("a", domain.Asset, nil)

	all, err := s.repos.AccountRepo.ListAccounts(s.ctx, domain.AccountFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal([]string{"B", "a", "b"}, []string{all[0].Code, all[1].Code, all[2].Code})

	_, err = s.repos.AccountRepo.SaveAccount(s.ctx, domain.Account{Code: "a", Name: "dup", Type: domain.Asset, CreatedAt: time.Now()})
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *PgsqlRepositoryTestSuite) TestJournalAndReporting() {
	cash := s.saveAccount("1000", domain.Asset, nil)
	sales := s.saveAccount("4000", domain.Income, nil)

	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		entry, err := repos.JournalRepo.SaveEntry(ctx, domain.JournalEntry{Date: domain.MustParseDate("2024-01-15"), CreatedAt: time.Now().UTC()})
		if err != nil {
			return err
		}
		if _, err := repos.JournalRepo.SaveLine(ctx, domain.JournalLine{JournalEntryID: entry.ID, AccountID: cash.ID, Debit: decimal.RequireFromString("12.34"), Credit: decimal.Zero}); err != nil {
			return err
		}
		_, err = repos.JournalRepo.SaveLine(ctx, domain.JournalLine{JournalEntryID: entry.ID, AccountID: sales.ID, Debit: decimal.Zero, Credit: decimal.RequireFromString("12.34")})
		return err
	})
	s.Require().NoError(err)

	err = s.repos.TxManager.WithinReadOnlyTransaction(s.ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		totals, err := repos.ReportingRepo.SumLinesByAccount(ctx, domain.DateRange{})
		s.Require().NoError(err)
		s.True(totals[cash.ID].TotalDebit.Equal(decimal.RequireFromString("12.34")))

		rows, err := repos.ReportingRepo.ListLedgerLines(ctx, sales.ID, domain.DateRange{From: domain.MustParseDate("2024-01-15")})
		s.Require().NoError(err)
		s.Require().Len(rows, 1)
		s.Equal("2024-01-15", rows[0].Entry.Date.String())
		return nil
	})
	s.Require().NoError(err)
}

func (s *PgsqlRepositoryTestSuite) TestPeriodLockUpsert() {
	err := s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		lock, err := repos.PeriodLockRepo.GetLockForUpdate(ctx)
		s.Require().NoError(err)
		s.Nil(lock)
		return repos.PeriodLockRepo.SaveLock(ctx, domain.PeriodLock{ThroughDate: domain.MustParseDate("2024-01-20"), UpdatedAt: time.Now().UTC()})
	})
	s.Require().NoError(err)

	lock, err := s.repos.PeriodLockRepo.GetLock(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(lock)
	s.Equal("2024-01-20", lock.ThroughDate.String())
}

func (s *PgsqlRepositoryTestSuite) TestSaveLockNeverMovesBackwards() {
	s.Require().NoError(s.repos.PeriodLockRepo.SaveLock(s.ctx, domain.PeriodLock{ThroughDate: domain.MustParseDate("2024-03-31"), UpdatedAt: time.Now().UTC()}))
	s.Require().NoError(s.repos.PeriodLockRepo.SaveLock(s.ctx, domain.PeriodLock{ThroughDate: domain.MustParseDate("2024-01-31"), UpdatedAt: time.Now().UTC()}))

	lock, err := s.repos.PeriodLockRepo.GetLock(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(lock)
	s.Equal("2024-03-31", lock.ThroughDate.String())
}

// A close started from the unset state holds the period lock until commit, so
// an earlier close issued meanwhile sees the committed date and is refused.
func (s *PgsqlRepositoryTestSuite) TestConcurrentClosesFromUnsetState() {
	lockSvc := services.NewPeriodLockService(s.repos)
	held := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	var firstErr, secondErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		firstErr = s.repos.TxManager.WithinTransaction(s.ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
			current, err := repos.PeriodLockRepo.GetLockForUpdate(ctx)
			if err != nil {
				return err
			}
			if current != nil {
				return apperrors.New(apperrors.ErrConflict, apperrors.ReasonLockAlreadyLater, "lock already set")
			}
			close(held)
			<-release
			return repos.PeriodLockRepo.SaveLock(ctx, domain.PeriodLock{ThroughDate: domain.MustParseDate("2024-03-31"), UpdatedAt: time.Now().UTC()})
		})
	}()

	<-held
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, secondErr = lockSvc.SetLock(s.ctx, domain.MustParseDate("2024-01-31"))
	}()
	time.Sleep(200 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Require().NoError(firstErr)
	s.Require().Error(secondErr)
	s.Equal(apperrors.ReasonLockAlreadyLater, apperrors.ReasonOf(secondErr))

	lock, err := s.repos.PeriodLockRepo.GetLock(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(lock)
	s.Equal("2024-03-31", lock.ThroughDate.String())
}

func TestPgsqlRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PgsqlRepositoryTestSuite))
}
