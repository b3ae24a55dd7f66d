package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService derives reports from committed journal lines. It never writes.
type reportingService struct {
	BaseService
	txManager portsrepo.TransactionManager
}

// NewReportingService creates the reporting engine.
func NewReportingService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.ReportingService {
	return &reportingService{
		BaseService: newBaseService(opts...),
		txManager:   repos.TxManager,
	}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) TrialBalance(ctx context.Context, asOf domain.Date) (*domain.TrialBalance, error) {
	var report *domain.TrialBalance
	err := s.txManager.WithinReadOnlyTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		accounts, totals, err := loadBalances(ctx, repos, domain.DateRange{To: asOf})
		if err != nil {
			return err
		}

		report = &domain.TrialBalance{
			AsOf:        asOf,
			Rows:        make([]domain.AccountBalance, 0, len(accounts)),
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
		}
		for _, acc := range accounts {
			row := balanceOf(acc, totals[acc.ID])
			report.Rows = append(report.Rows, row)
			report.TotalDebit = report.TotalDebit.Add(row.TotalDebit)
			report.TotalCredit = report.TotalCredit.Add(row.TotalCredit)
		}
		report.Difference = report.TotalDebit.Sub(report.TotalCredit)
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build trial balance")
		return nil, err
	}

	if !report.Difference.IsZero() {
		s.LogError(ctx, errUnbalanced(report.TotalDebit, report.TotalCredit), "Trial balance does not balance")
	}
	return report, nil
}

func (s *reportingService) Ledger(ctx context.Context, accountID int64, r domain.DateRange, includeRunningBalance bool) (*domain.Ledger, error) {
	var report *domain.Ledger
	err := s.txManager.WithinReadOnlyTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		acc, err := findAccount(ctx, repos.AccountRepo, accountID, errLedgerAccountNotFound)
		if err != nil {
			return err
		}
		rows, err := repos.ReportingRepo.ListLedgerLines(ctx, accountID, r)
		if err != nil {
			return storageErr(err, "failed to load ledger lines")
		}
		if rows == nil {
			rows = []domain.LedgerRow{}
		}
		if includeRunningBalance {
			applyRunningBalance(rows)
		}
		report = &domain.Ledger{Account: *acc, Range: r, Rows: rows}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to build ledger", slog.Int64("account_id", accountID))
		return nil, err
	}
	return report, nil
}

// applyRunningBalance accumulates debit minus credit from the oldest row,
// which is last in the newest-first slice, up to the newest.
func applyRunningBalance(rows []domain.LedgerRow) {
	running := decimal.Zero
	for i := len(rows) - 1; i >= 0; i-- {
		running = running.Add(rows[i].Line.Net())
		balance := running
		rows[i].RunningBalance = &balance
	}
}

func (s *reportingService) BalanceSheet(ctx context.Context, asOf domain.Date) (*domain.BalanceSheet, error) {
	var report *domain.BalanceSheet
	err := s.txManager.WithinReadOnlyTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		accounts, totals, err := loadBalances(ctx, repos, domain.DateRange{To: asOf})
		if err != nil {
			return err
		}
		report = &domain.BalanceSheet{
			AsOf:        asOf,
			Assets:      balanceSheetGroup(domain.Asset, accounts, totals),
			Liabilities: balanceSheetGroup(domain.Liability, accounts, totals),
			Equity:      balanceSheetGroup(domain.Equity, accounts, totals),
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build balance sheet")
		return nil, err
	}
	return report, nil
}

// balanceSheetGroup lists every account of the type and adds a subtotal for
// each parent with at least one active direct child in the group. The
// subtotal covers all of that parent's direct children in the group.
func balanceSheetGroup(t domain.AccountType, accounts []domain.Account, totals map[int64]domain.AccountTotals) domain.BalanceSheetGroup {
	group := domain.BalanceSheetGroup{
		Type:            t,
		Accounts:        []domain.AccountBalance{},
		ParentSubtotals: []domain.ParentSubtotal{},
		Total:           decimal.Zero,
	}

	byID := make(map[int64]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.ID] = acc
	}

	subtotals := map[int64]*domain.ParentSubtotal{}
	active := map[int64]bool{}
	var order []int64
	for _, acc := range accounts {
		if acc.Type != t {
			continue
		}
		row := balanceOf(acc, totals[acc.ID])
		group.Accounts = append(group.Accounts, row)
		group.Total = group.Total.Add(row.Net)

		if acc.ParentID == nil {
			continue
		}
		pid := *acc.ParentID
		sub, ok := subtotals[pid]
		if !ok {
			parent := byID[pid]
			sub = &domain.ParentSubtotal{
				ParentID:    pid,
				Code:        parent.Code,
				Name:        parent.Name,
				TotalDebit:  decimal.Zero,
				TotalCredit: decimal.Zero,
				Net:         decimal.Zero,
			}
			subtotals[pid] = sub
			order = append(order, pid)
		}
		sub.TotalDebit = sub.TotalDebit.Add(row.TotalDebit)
		sub.TotalCredit = sub.TotalCredit.Add(row.TotalCredit)
		sub.Net = sub.Net.Add(row.Net)
		if totals[acc.ID].HasActivity() {
			active[pid] = true
		}
	}

	for _, pid := range order {
		if active[pid] {
			group.ParentSubtotals = append(group.ParentSubtotals, *subtotals[pid])
		}
	}
	return group
}

func (s *reportingService) ProfitLoss(ctx context.Context, r domain.DateRange) (*domain.ProfitLoss, error) {
	var report *domain.ProfitLoss
	err := s.txManager.WithinReadOnlyTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		accounts, totals, err := loadBalances(ctx, repos, r)
		if err != nil {
			return err
		}

		income := profitLossGroup(domain.Income, accounts, totals)
		expense := profitLossGroup(domain.Expense, accounts, totals)
		report = &domain.ProfitLoss{
			Range:     r,
			Income:    income,
			Expense:   expense,
			NetIncome: income.Total.Sub(expense.Total),
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to build profit and loss")
		return nil, err
	}
	return report, nil
}

func profitLossGroup(t domain.AccountType, accounts []domain.Account, totals map[int64]domain.AccountTotals) domain.ProfitLossGroup {
	group := domain.ProfitLossGroup{Type: t, Accounts: []domain.AccountBalance{}, Total: decimal.Zero}
	for _, acc := range accounts {
		if acc.Type != t {
			continue
		}
		row := balanceOf(acc, totals[acc.ID])
		group.Accounts = append(group.Accounts, row)
		group.Total = group.Total.Add(accounting.NaturalBalance(t, row.TotalDebit, row.TotalCredit))
	}
	return group
}

// loadBalances reads the whole chart ordered by code together with the
// per-account totals over the range.
func loadBalances(ctx context.Context, repos portsrepo.Repositories, r domain.DateRange) ([]domain.Account, map[int64]domain.AccountTotals, error) {
	accounts, err := repos.AccountRepo.ListAccounts(ctx, domain.AccountFilter{})
	if err != nil {
		return nil, nil, storageErr(err, "failed to list accounts")
	}
	totals, err := repos.ReportingRepo.SumLinesByAccount(ctx, r)
	if err != nil {
		return nil, nil, storageErr(err, "failed to sum journal lines")
	}
	return accounts, totals, nil
}

func balanceOf(acc domain.Account, t domain.AccountTotals) domain.AccountBalance {
	debit, credit := t.TotalDebit, t.TotalCredit
	if !t.HasActivity() {
		debit, credit = decimal.Zero, decimal.Zero
	}
	return domain.AccountBalance{
		AccountID:   acc.ID,
		Code:        acc.Code,
		Name:        acc.Name,
		Type:        acc.Type,
		ParentID:    acc.ParentID,
		TotalDebit:  debit,
		TotalCredit: credit,
		Net:         debit.Sub(credit),
	}
}
