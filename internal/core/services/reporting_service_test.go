package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	store   *mockStore
	service portssvc.ReportingService
	ctx     context.Context
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.store = newMockStore()
	s.service = services.NewReportingService(s.store.provider())
	s.ctx = context.Background()
}

func (s *ReportingServiceTestSuite) TearDownTest() {
	s.store.assertExpectations(s.T())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func totals(id int64, debit, credit string, lines int64) domain.AccountTotals {
	return domain.AccountTotals{AccountID: id, TotalDebit: dec(debit), TotalCredit: dec(credit), LineCount: lines}
}

// chart is ordered by code, as ListAccounts returns it.
func chart() []domain.Account {
	return []domain.Account{
		{ID: 1, Code: "1000", Name: "Current Assets", Type: domain.Asset},
		{ID: 2, Code: "1100", Name: "Cash", Type: domain.Asset, ParentID: ptr(int64(1))},
		{ID: 3, Code: "1200", Name: "Bank", Type: domain.Asset, ParentID: ptr(int64(1))},
		{ID: 4, Code: "1500", Name: "Fixed Assets", Type: domain.Asset},
		{ID: 5, Code: "1510", Name: "Vehicles", Type: domain.Asset, ParentID: ptr(int64(4))},
		{ID: 6, Code: "2000", Name: "Payables", Type: domain.Liability},
		{ID: 7, Code: "3000", Name: "Capital", Type: domain.Equity},
		{ID: 8, Code: "4000", Name: "Sales", Type: domain.Income},
		{ID: 9, Code: "5000", Name: "Rent", Type: domain.Expense},
	}
}

func (s *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	asOf := domain.MustParseDate("2024-01-31")
	s.store.accounts.On("ListAccounts", mock.Anything, domain.AccountFilter{}).Return(chart(), nil).Once()
	s.store.reports.On("SumLinesByAccount", mock.Anything, domain.DateRange{To: asOf}).Return(map[int64]domain.AccountTotals{
		2: totals(2, "500", "200", 2),
		8: totals(8, "0", "500", 1),
		9: totals(9, "200", "0", 1),
	}, nil).Once()

	tb, err := s.service.TrialBalance(s.ctx, asOf)

	s.Require().NoError(err)
	s.Len(tb.Rows, 9)
	s.Equal("1000", tb.Rows[0].Code)
	s.True(tb.Rows[0].TotalDebit.IsZero())
	s.True(tb.TotalDebit.Equal(dec("700")))
	s.True(tb.TotalCredit.Equal(dec("700")))
	s.True(tb.Difference.IsZero())
	s.True(tb.Rows[1].Net.Equal(dec("300")))
	s.Equal(1, s.store.tx.reads)
}

func (s *ReportingServiceTestSuite) TestTrialBalance_ReportsDifference() {
	s.store.accounts.On("ListAccounts", mock.Anything, domain.AccountFilter{}).Return(chart(), nil).Once()
	s.store.reports.On("SumLinesByAccount", mock.Anything, mock.Anything).Return(map[int64]domain.AccountTotals{
		2: totals(2, "100", "0", 1),
	}, nil).Once()

	tb, err := s.service.TrialBalance(s.ctx, domain.Date{})

	s.Require().NoError(err)
	s.True(tb.Difference.Equal(dec("100")))
}

func (s *ReportingServiceTestSuite) TestLedger_RunningBalanceFromOldest() {
	r := domain.DateRange{From: domain.MustParseDate("2024-01-01")}
	s.store.accounts.On("FindAccountByID", mock.Anything, int64(2)).Return(&chart()[1], nil).Once()
	s.store.reports.On("ListLedgerLines", mock.Anything, int64(2), r).Return([]domain.LedgerRow{
		{Line: domain.JournalLine{ID: 3, Credit: dec("30"), Debit: decimal.Zero}},
		{Line: domain.JournalLine{ID: 2, Debit: dec("50"), Credit: decimal.Zero}},
		{Line: domain.JournalLine{ID: 1, Debit: dec("100"), Credit: decimal.Zero}},
	}, nil).Once()

	ledger, err := s.service.Ledger(s.ctx, 2, r, true)

	s.Require().NoError(err)
	s.Require().Len(ledger.Rows, 3)
	s.True(ledger.Rows[2].RunningBalance.Equal(dec("100")))
	s.True(ledger.Rows[1].RunningBalance.Equal(dec("150")))
	s.True(ledger.Rows[0].RunningBalance.Equal(dec("120")))
	s.Equal("Cash", ledger.Account.Name)
}

func (s *ReportingServiceTestSuite) TestLedger_WithoutRunningBalance() {
	s.store.accounts.On("FindAccountByID", mock.Anything, int64(2)).Return(&chart()[1], nil).Once()
	s.store.reports.On("ListLedgerLines", mock.Anything, int64(2), domain.DateRange{}).Return(nil, nil).Once()

	ledger, err := s.service.Ledger(s.ctx, 2, domain.DateRange{}, false)

	s.Require().NoError(err)
	s.NotNil(ledger.Rows)
	s.Empty(ledger.Rows)
}

func (s *ReportingServiceTestSuite) TestLedger_UnknownAccount() {
	s.store.accounts.On("FindAccountByID", mock.Anything, int64(77)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.Ledger(s.ctx, 77, domain.DateRange{}, false)

	s.True(errors.Is(err, apperrors.ErrNotFound))
	s.Equal(apperrors.ReasonAccountNotFound, apperrors.ReasonOf(err))
}

func (s *ReportingServiceTestSuite) TestBalanceSheet_GroupsAndSubtotals() {
	asOf := domain.MustParseDate("2024-06-30")
	s.store.accounts.On("ListAccounts", mock.Anything, domain.AccountFilter{}).Return(chart(), nil).Once()
	s.store.reports.On("SumLinesByAccount", mock.Anything, domain.DateRange{To: asOf}).Return(map[int64]domain.AccountTotals{
		2: totals(2, "1000", "250", 3),
		6: totals(6, "0", "400", 1),
		7: totals(7, "0", "350", 1),
	}, nil).Once()

	bs, err := s.service.BalanceSheet(s.ctx, asOf)

	s.Require().NoError(err)
	s.Len(bs.Assets.Accounts, 5)
	s.True(bs.Assets.Total.Equal(dec("750")))
	s.Require().Len(bs.Assets.ParentSubtotals, 1, "Fixed Assets has no active child")
	sub := bs.Assets.ParentSubtotals[0]
	s.Equal(int64(1), sub.ParentID)
	s.Equal("Current Assets", sub.Name)
	s.True(sub.Net.Equal(dec("750")))

	s.True(bs.Liabilities.Total.Equal(dec("-400")))
	s.True(bs.Equity.Total.Equal(dec("-350")))
	s.Empty(bs.Liabilities.ParentSubtotals)
}

func (s *ReportingServiceTestSuite) TestProfitLoss_NaturalSides() {
	r := domain.DateRange{From: domain.MustParseDate("2024-01-01"), To: domain.MustParseDate("2024-12-31")}
	s.store.accounts.On("ListAccounts", mock.Anything, domain.AccountFilter{}).Return(chart(), nil).Once()
	s.store.reports.On("SumLinesByAccount", mock.Anything, r).Return(map[int64]domain.AccountTotals{
		8: totals(8, "20", "520", 3),
		9: totals(9, "200", "0", 1),
	}, nil).Once()

	pl, err := s.service.ProfitLoss(s.ctx, r)

	s.Require().NoError(err)
	s.Len(pl.Income.Accounts, 1)
	s.Len(pl.Expense.Accounts, 1)
	s.True(pl.Income.Total.Equal(dec("500")))
	s.True(pl.Expense.Total.Equal(dec("200")))
	s.True(pl.NetIncome.Equal(dec("300")))
}

func (s *ReportingServiceTestSuite) TestReports_StorageFailure() {
	s.store.accounts.On("ListAccounts", mock.Anything, domain.AccountFilter{}).Return(nil, errors.New("database is locked")).Once()

	_, err := s.service.ProfitLoss(s.ctx, domain.DateRange{})

	s.True(errors.Is(err, apperrors.ErrInternal))
}
