package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	db dbtx
}

func newReportingRepository(db dbtx) portsrepo.ReportingRepository {
	return &reportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// SumLinesByAccount aggregates in the database; NUMERIC sums are exact.
func (r *reportingRepository) SumLinesByAccount(ctx context.Context, dr domain.DateRange) (map[int64]domain.AccountTotals, error) {
	where, args := dateRangeWhere("e.date", dr, nil)
	query := `
		SELECT l.account_id, SUM(l.debit) AS total_debit, SUM(l.credit) AS total_credit, COUNT(*) AS line_count
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` GROUP BY l.account_id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying account totals: %w", err)
	}
	defer rows.Close()

	var totals []models.AccountTotals
	for rows.Next() {
		var t models.AccountTotals
		if err := rows.Scan(&t.AccountID, &t.TotalDebit, &t.TotalCredit, &t.LineCount); err != nil {
			return nil, fmt.Errorf("error scanning account totals: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals: %w", err)
	}
	return mapping.ToDomainAccountTotals(totals), nil
}

func (r *reportingRepository) ListLedgerLines(ctx context.Context, accountID int64, dr domain.DateRange) ([]domain.LedgerRow, error) {
	where, args := dateRangeWhere("e.date", dr, []any{accountID})
	where = append([]string{"l.account_id = $1"}, where...)

	query := `
		SELECT l.id, l.journal_entry_id, l.account_id, l.debit, l.credit,
			e.id, e.date, e.description, e.reference, e.created_at
		FROM journal_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY e.date DESC, e.id DESC, l.id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger lines for account %d: %w", accountID, err)
	}
	defer rows.Close()

	ledger := []domain.LedgerRow{}
	for rows.Next() {
		var m models.LedgerLine
		if err := rows.Scan(
			&m.Line.ID, &m.Line.JournalEntryID, &m.Line.AccountID, &m.Line.Debit, &m.Line.Credit,
			&m.Entry.ID, &m.Entry.Date, &m.Entry.Description, &m.Entry.Reference, &m.Entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning ledger line: %w", err)
		}
		ledger = append(ledger, mapping.ToDomainLedgerRow(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines: %w", err)
	}
	return ledger, nil
}
