package domain

import "github.com/shopspring/decimal"

// JournalLine is a single posting of a journal entry against one account.
// Exactly one of Debit and Credit is positive; the other is zero.
type JournalLine struct {
	ID             int64           `json:"id"`
	JournalEntryID int64           `json:"journalEntryId"`
	AccountID      int64           `json:"accountId"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
}

// IsSingleSided reports whether the line carries a positive amount on
// exactly one side and zero on the other.
func (l JournalLine) IsSingleSided() bool {
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return false
	}
	return l.Debit.IsPositive() != l.Credit.IsPositive()
}

// Net is debit minus credit.
func (l JournalLine) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}
