package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// A zero date means "unbounded".
type ReportingService interface {
	// TrialBalance totals every account over entries dated on or before asOf.
	TrialBalance(ctx context.Context, asOf domain.Date) (*domain.TrialBalance, error)

	// Ledger lists the postings of one account, newest first.
	Ledger(ctx context.Context, accountID int64, r domain.DateRange, includeRunningBalance bool) (*domain.Ledger, error)

	// BalanceSheet groups asset, liability and equity accounts as of a date.
	BalanceSheet(ctx context.Context, asOf domain.Date) (*domain.BalanceSheet, error)

	// ProfitLoss groups income and expense accounts over a date range.
	ProfitLoss(ctx context.Context, r domain.DateRange) (*domain.ProfitLoss, error)
}
