package accounting

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DebitNormal reports whether accounts of type t increase with debits.
// Asset and expense accounts are debit-normal; liability, equity and income
// accounts are credit-normal.
func DebitNormal(t domain.AccountType) bool {
	return t == domain.Asset || t == domain.Expense
}

// NaturalBalance states debit and credit totals on the account type's
// normal side, so a positive result means the account carries its usual balance.
//
//	Asset, Expense:            debit - credit
//	Liability, Equity, Income: credit - debit
func NaturalBalance(t domain.AccountType, debit, credit decimal.Decimal) decimal.Decimal {
	if DebitNormal(t) {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}
