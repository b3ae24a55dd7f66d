package domain

import (
	"github.com/shopspring/decimal"
)

// AccountTotals are the summed postings of one account, as read from storage.
type AccountTotals struct {
	AccountID   int64
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	LineCount   int64
}

// HasActivity reports whether any journal line touched the account.
func (t AccountTotals) HasActivity() bool { return t.LineCount > 0 }

// AccountBalance is one account row of a report.
type AccountBalance struct {
	AccountID   int64           `json:"accountId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	ParentID    *int64          `json:"parentId"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Net         decimal.Decimal `json:"net"`
}

// TrialBalance lists every account with its totals, ordered by code.
type TrialBalance struct {
	AsOf        Date             `json:"asOf"`
	Rows        []AccountBalance `json:"rows"`
	TotalDebit  decimal.Decimal  `json:"totalDebit"`
	TotalCredit decimal.Decimal  `json:"totalCredit"`
	Difference  decimal.Decimal  `json:"difference"`
}

// LedgerRow is one posting in an account ledger. RunningBalance is only
// populated when requested.
type LedgerRow struct {
	Line           JournalLine      `json:"line"`
	Entry          JournalEntry     `json:"entry"`
	RunningBalance *decimal.Decimal `json:"runningBalance,omitempty"`
}

// Ledger is the posting history of one account, newest first.
type Ledger struct {
	Account Account     `json:"account"`
	Range   DateRange   `json:"range"`
	Rows    []LedgerRow `json:"rows"`
}

// ParentSubtotal aggregates the direct children of a parent account within a report group.
type ParentSubtotal struct {
	ParentID    int64           `json:"parentId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Net         decimal.Decimal `json:"net"`
}

// BalanceSheetGroup is one of the Asset, Liability or Equity sections.
// Total is the summed net (debit minus credit) of its accounts.
type BalanceSheetGroup struct {
	Type            AccountType      `json:"type"`
	Accounts        []AccountBalance `json:"accounts"`
	ParentSubtotals []ParentSubtotal `json:"parentSubtotals"`
	Total           decimal.Decimal  `json:"total"`
}

type BalanceSheet struct {
	AsOf        Date              `json:"asOf"`
	Assets      BalanceSheetGroup `json:"assets"`
	Liabilities BalanceSheetGroup `json:"liabilities"`
	Equity      BalanceSheetGroup `json:"equity"`
}

// ProfitLossGroup is the Income or Expense section. Total is stated on the
// natural side of the group: credit-debit for income, debit-credit for expense.
type ProfitLossGroup struct {
	Type     AccountType      `json:"type"`
	Accounts []AccountBalance `json:"accounts"`
	Total    decimal.Decimal  `json:"total"`
}

type ProfitLoss struct {
	Range     DateRange       `json:"range"`
	Income    ProfitLossGroup `json:"income"`
	Expense   ProfitLossGroup `json:"expense"`
	NetIncome decimal.Decimal `json:"netIncome"`
}
