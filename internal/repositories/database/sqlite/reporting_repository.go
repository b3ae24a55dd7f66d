package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

type reportingRepository struct {
	db dbtx
}

func newReportingRepository(db dbtx) portsrepo.ReportingRepository {
	return &reportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// SumLinesByAccount streams the lines in range and sums them with exact
// decimals, since amounts are stored as text.
func (r *reportingRepository) SumLinesByAccount(ctx context.Context, dr domain.DateRange) (map[int64]domain.AccountTotals, error) {
	where, args := dateRangeWhere("e.date", dr)
	query := `SELECT l.account_id, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines for totals: %w", err)
	}
	defer rows.Close()

	byAccount := map[int64]*models.AccountTotals{}
	var order []int64
	for rows.Next() {
		var l models.JournalLine
		if err := rows.Scan(&l.AccountID, &l.Debit, &l.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal line amounts: %w", err)
		}
		t, ok := byAccount[l.AccountID]
		if !ok {
			t = &models.AccountTotals{AccountID: l.AccountID}
			byAccount[l.AccountID] = t
			order = append(order, l.AccountID)
		}
		t.TotalDebit = t.TotalDebit.Add(l.Debit)
		t.TotalCredit = t.TotalCredit.Add(l.Credit)
		t.LineCount++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal lines for totals: %w", err)
	}

	totals := make([]models.AccountTotals, 0, len(order))
	for _, id := range order {
		totals = append(totals, *byAccount[id])
	}
	return mapping.ToDomainAccountTotals(totals), nil
}

func (r *reportingRepository) ListLedgerLines(ctx context.Context, accountID int64, dr domain.DateRange) ([]domain.LedgerRow, error) {
	where, args := dateRangeWhere("e.date", dr)
	where = append([]string{"l.account_id = ?"}, where...)
	args = append([]any{accountID}, args...)

	query := `SELECT l.id, l.journal_entry_id, l.account_id, l.debit, l.credit,
			e.id, e.date, e.description, e.reference, e.created_at
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY e.date DESC, e.id DESC, l.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines for account %d: %w", accountID, err)
	}
	defer rows.Close()

	ledger := []domain.LedgerRow{}
	for rows.Next() {
		var m models.LedgerLine
		entry, err := scanEntry(rows, &m.Line.ID, &m.Line.JournalEntryID, &m.Line.AccountID, &m.Line.Debit, &m.Line.Credit)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger line: %w", err)
		}
		m.Entry = entry
		ledger = append(ledger, mapping.ToDomainLedgerRow(m))
	}
	return ledger, rows.Err()
}
