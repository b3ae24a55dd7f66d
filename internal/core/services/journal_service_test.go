package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	store   *mockStore
	service portssvc.JournalSvcFacade
	ctx     context.Context
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.store = newMockStore()
	s.service = services.NewJournalService(s.store.provider(), services.WithClock(func() time.Time { return fixedNow }))
	s.ctx = context.Background()
}

func (s *JournalServiceTestSuite) TearDownTest() {
	s.store.assertExpectations(s.T())
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

func debit(accountID int64, amount int64) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: decimal.NewFromInt(amount), Credit: decimal.Zero}
}

func credit(accountID int64, amount int64) domain.JournalLine {
	return domain.JournalLine{AccountID: accountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(amount)}
}

func (s *JournalServiceTestSuite) cashAndSales() map[int64]domain.Account {
	return map[int64]domain.Account{
		1: {ID: 1, Code: "1000", Name: "Cash", Type: domain.Asset},
		2: {ID: 2, Code: "4000", Name: "Sales", Type: domain.Income},
	}
}

func (s *JournalServiceTestSuite) TestCreateEntry_Success() {
	date := domain.MustParseDate("2024-01-15")
	desc := "Cash sale"
	s.store.locks.On("GetLockForUpdate", mock.Anything).Return(nil, nil).Once()
	s.store.accounts.On("FindAccountsByIDs", mock.Anything, []int64{1, 2}).Return(s.cashAndSales(), nil).Once()
	s.store.journal.On("SaveEntry", mock.Anything, domain.JournalEntry{
		Date:        date,
		Description: &desc,
		CreatedAt:   fixedNow,
	}).Return(&domain.JournalEntry{ID: 10, Date: date, Description: &desc, CreatedAt: fixedNow}, nil).Once()
	s.store.journal.On("SaveLine", mock.Anything, mock.MatchedBy(func(l domain.JournalLine) bool {
		return l.JournalEntryID == 10 && l.AccountID == 1 && l.Debit.Equal(decimal.NewFromInt(500))
	})).Return(&domain.JournalLine{ID: 100, JournalEntryID: 10, AccountID: 1, Debit: decimal.NewFromInt(500)}, nil).Once()
	s.store.journal.On("SaveLine", mock.Anything, mock.MatchedBy(func(l domain.JournalLine) bool {
		return l.JournalEntryID == 10 && l.AccountID == 2 && l.Credit.Equal(decimal.NewFromInt(500))
	})).Return(&domain.JournalLine{ID: 101, JournalEntryID: 10, AccountID: 2, Credit: decimal.NewFromInt(500)}, nil).Once()

	result, err := s.service.CreateEntry(s.ctx, domain.NewJournalEntry{
		Date:        date,
		Description: &desc,
		Lines:       []domain.JournalLine{debit(1, 500), credit(2, 500)},
	})

	s.Require().NoError(err)
	s.Equal(int64(10), result.Entry.ID)
	s.Require().Len(result.Lines, 2)
	s.Equal(int64(100), result.Lines[0].ID)
	s.Equal(int64(101), result.Lines[1].ID)
}

func (s *JournalServiceTestSuite) TestCreateEntry_LockedPeriod() {
	s.store.locks.On("GetLockForUpdate", mock.Anything).
		Return(&domain.PeriodLock{ThroughDate: domain.MustParseDate("2024-01-20")}, nil).Once()

	_, err := s.service.CreateEntry(s.ctx, domain.NewJournalEntry{
		Date:  domain.MustParseDate("2024-01-20"),
		Lines: []domain.JournalLine{debit(1, 10), credit(2, 10)},
	})

	s.True(errors.Is(err, apperrors.ErrConflict))
	s.Equal(apperrors.ReasonPeriodLocked, apperrors.ReasonOf(err))
	s.store.accounts.AssertNotCalled(s.T(), "FindAccountsByIDs", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateEntry_MissingDate() {
	_, err := s.service.CreateEntry(s.ctx, domain.NewJournalEntry{
		Lines: []domain.JournalLine{debit(1, 10), credit(2, 10)},
	})

	s.Equal(apperrors.ReasonInvalidDate, apperrors.ReasonOf(err))
}

func (s *JournalServiceTestSuite) TestCreateEntry_LineRules() {
	cases := []struct {
		name   string
		lines  []domain.JournalLine
		reason apperrors.Reason
	}{
		{"no lines", nil, apperrors.ReasonTooFewLines},
		{"single line", []domain.JournalLine{debit(1, 10)}, apperrors.ReasonTooFewLines},
		{"both sides", []domain.JournalLine{
			{AccountID: 1, Debit: decimal.NewFromInt(5), Credit: decimal.NewFromInt(5)},
			credit(2, 10),
		}, apperrors.ReasonInvalidLine},
		{"zero line", []domain.JournalLine{{AccountID: 1}, credit(2, 10)}, apperrors.ReasonInvalidLine},
		{"negative debit", []domain.JournalLine{debit(1, -10), credit(2, 10)}, apperrors.ReasonInvalidLine},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.store.locks.On("GetLockForUpdate", mock.Anything).Return(nil, nil).Once()

			_, err := s.service.CreateEntry(s.ctx, domain.NewJournalEntry{
				Date:  domain.MustParseDate("2024-02-01"),
				Lines: tc.lines,
			})

			s.True(errors.Is(err, apperrors.ErrValidation))
			s.Equal(tc.reason, apperrors.ReasonOf(err))
		})
	}
}

func (s *JournalServiceTestSuite) TestCreateEntry_UnknownAccounts() {
	s.store.locks.On("GetLockForUpdate", mock.Anything).Return(nil, nil).Once()
	s.store.accounts.On("FindAccountsByIDs", mock.Anything, []int64{1, 9}).
		Return(map[int64]domain.Account{1: {ID: 1}}, nil).Once()

	_, err := s.service.CreateEntry(s.ctx, domain.NewJournalEntry{
		Date:  domain.MustParseDate("2024-02-01"),
		Lines: []domain.JournalLine{debit(1, 10), credit(9, 10)},
	})

	s.Equal(apperrors.ReasonAccountsNotFound, apperrors.ReasonOf(err))
	var appErr *apperrors.AppError
	s.Require().True(errors.As(err, &appErr))
	s.Equal([]int64{9}, appErr.Details["missingAccountIds"])
}

func (s *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	s.store.locks.On("GetLockForUpdate", mock.Anything).Return(nil, nil).Once()
	s.store.accounts.On("FindAccountsByIDs", mock.Anything, []int64{1, 2}).Return(s.cashAndSales(), nil).Once()

	_, err := s.service.CreateEntry(s.ctx, domain.NewJournalEntry{
		Date:  domain.MustParseDate("2024-02-01"),
		Lines: []domain.JournalLine{debit(1, 100), credit(2, 90)},
	})

	s.Equal(apperrors.ReasonUnbalanced, apperrors.ReasonOf(err))
	s.store.journal.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateEntry_FractionalAmountsBalanceExactly() {
	s.store.locks.On("GetLockForUpdate", mock.Anything).Return(nil, nil).Once()
	s.store.accounts.On("FindAccountsByIDs", mock.Anything, []int64{1, 2}).Return(s.cashAndSales(), nil).Once()
	s.store.journal.On("SaveEntry", mock.Anything, mock.Anything).Return(&domain.JournalEntry{ID: 1}, nil).Once()
	s.store.journal.On("SaveLine", mock.Anything, mock.Anything).Return(&domain.JournalLine{ID: 1}, nil).Times(3)

	_, err := s.service.CreateEntry(s.ctx, domain.NewJournalEntry{
		Date: domain.MustParseDate("2024-02-01"),
		Lines: []domain.JournalLine{
			{AccountID: 1, Debit: decimal.RequireFromString("0.1"), Credit: decimal.Zero},
			{AccountID: 1, Debit: decimal.RequireFromString("0.2"), Credit: decimal.Zero},
			{AccountID: 2, Debit: decimal.Zero, Credit: decimal.RequireFromString("0.3")},
		},
	})

	s.NoError(err)
}

func (s *JournalServiceTestSuite) TestCreateEntry_LineWriteFailureRollsBack() {
	s.store.locks.On("GetLockForUpdate", mock.Anything).Return(nil, nil).Once()
	s.store.accounts.On("FindAccountsByIDs", mock.Anything, []int64{1, 2}).Return(s.cashAndSales(), nil).Once()
	s.store.journal.On("SaveEntry", mock.Anything, mock.Anything).Return(&domain.JournalEntry{ID: 1}, nil).Once()
	s.store.journal.On("SaveLine", mock.Anything, mock.Anything).Return(nil, errors.New("constraint failed")).Once()

	_, err := s.service.CreateEntry(s.ctx, domain.NewJournalEntry{
		Date:  domain.MustParseDate("2024-02-01"),
		Lines: []domain.JournalLine{debit(1, 10), credit(2, 10)},
	})

	s.True(errors.Is(err, apperrors.ErrInternal))
	s.Equal(1, s.store.tx.rollbacks)
}

func (s *JournalServiceTestSuite) TestDeleteEntry_Success() {
	s.store.journal.On("FindEntryByID", mock.Anything, int64(3)).
		Return(&domain.JournalEntry{ID: 3, Date: domain.MustParseDate("2024-01-25")}, nil).Once()
	s.store.locks.On("GetLockForUpdate", mock.Anything).
		Return(&domain.PeriodLock{ThroughDate: domain.MustParseDate("2024-01-20")}, nil).Once()
	s.store.journal.On("DeleteEntry", mock.Anything, int64(3)).Return(nil).Once()

	s.NoError(s.service.DeleteEntry(s.ctx, 3))
}

func (s *JournalServiceTestSuite) TestDeleteEntry_Locked() {
	s.store.journal.On("FindEntryByID", mock.Anything, int64(3)).
		Return(&domain.JournalEntry{ID: 3, Date: domain.MustParseDate("2024-01-10")}, nil).Once()
	s.store.locks.On("GetLockForUpdate", mock.Anything).
		Return(&domain.PeriodLock{ThroughDate: domain.MustParseDate("2024-01-20")}, nil).Once()

	err := s.service.DeleteEntry(s.ctx, 3)

	s.Equal(apperrors.ReasonPeriodLocked, apperrors.ReasonOf(err))
	s.store.journal.AssertNotCalled(s.T(), "DeleteEntry", mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestDeleteEntry_NotFound() {
	s.store.journal.On("FindEntryByID", mock.Anything, int64(3)).Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.DeleteEntry(s.ctx, 3)

	s.True(errors.Is(err, apperrors.ErrNotFound))
	s.store.locks.AssertNotCalled(s.T(), "GetLockForUpdate", mock.Anything)
}

func (s *JournalServiceTestSuite) TestGetEntryByID_ReturnsLines() {
	entry := &domain.JournalEntry{ID: 3, Date: domain.MustParseDate("2024-01-10")}
	lines := []domain.JournalLine{{ID: 1, JournalEntryID: 3}, {ID: 2, JournalEntryID: 3}}
	s.store.journal.On("FindEntryByID", mock.Anything, int64(3)).Return(entry, nil).Once()
	s.store.journal.On("FindLinesByEntryID", mock.Anything, int64(3)).Return(lines, nil).Once()

	result, err := s.service.GetEntryByID(s.ctx, 3)

	s.Require().NoError(err)
	s.Equal(*entry, result.Entry)
	s.Equal(lines, result.Lines)
	s.Equal(1, s.store.tx.reads)
}

func (s *JournalServiceTestSuite) TestSearchEntries_PassesSearch() {
	search := domain.JournalSearch{
		Range:     domain.DateRange{From: domain.MustParseDate("2024-01-01")},
		Reference: "INV",
	}
	s.store.journal.On("SearchEntries", mock.Anything, search).Return([]domain.JournalEntry{{ID: 2}, {ID: 1}}, nil).Once()

	entries, err := s.service.SearchEntries(s.ctx, search)

	s.Require().NoError(err)
	s.Len(entries, 2)
}
