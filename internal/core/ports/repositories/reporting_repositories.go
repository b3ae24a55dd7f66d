package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingRepository exposes the aggregate reads the reporting engine needs.
type ReportingRepository interface {
	// SumLinesByAccount totals debits and credits per account over entries
	// within the range. Accounts without lines in range are omitted.
	SumLinesByAccount(ctx context.Context, r domain.DateRange) (map[int64]domain.AccountTotals, error)

	// ListLedgerLines returns the lines of one account within the range joined
	// with their entries, ordered by date, entry id and line id, all descending.
	ListLedgerLines(ctx context.Context, accountID int64, r domain.DateRange) ([]domain.LedgerRow, error)
}
