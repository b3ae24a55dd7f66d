package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
)

const entryColumns = `id, date, description, reference, created_at`

type journalRepository struct {
	db dbtx
}

func newJournalRepository(db dbtx) portsrepo.JournalRepositoryFacade {
	return &journalRepository{db: db}
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

// scanEntry reads the five entry columns in entryColumns order, optionally
// preceded by extra destinations.
func scanEntry(row rowScanner, extra ...any) (models.JournalEntry, error) {
	var m models.JournalEntry
	var date, createdAt string
	dest := append(extra, &m.ID, &date, &m.Description, &m.Reference, &createdAt)
	if err := row.Scan(dest...); err != nil {
		return models.JournalEntry{}, err
	}
	var err error
	if m.Date, err = parseStoredDate(date); err != nil {
		return models.JournalEntry{}, err
	}
	if m.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return models.JournalEntry{}, err
	}
	return m, nil
}

func (r *journalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	m, err := scanEntry(r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id = ?`, entryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %d: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func (r *journalRepository) FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, journal_entry_id, account_id, debit, credit FROM journal_lines WHERE journal_entry_id = ? ORDER BY id ASC`,
		entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines for entry %d: %w", entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.ID, &m.JournalEntryID, &m.AccountID, &m.Debit, &m.Credit); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		lines = append(lines, mapping.ToDomainJournalLine(m))
	}
	return lines, rows.Err()
}

func (r *journalRepository) SearchEntries(ctx context.Context, search domain.JournalSearch) ([]domain.JournalEntry, error) {
	where, args := dateRangeWhere("date", search.Range)
	if search.Reference != "" {
		where = append(where, "instr(reference, ?) > 0")
		args = append(args, search.Reference)
	}
	if search.Description != "" {
		where = append(where, "instr(description, ?) > 0")
		args = append(args, search.Description)
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	return entries, rows.Err()
}

func (r *journalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	m := mapping.ToModelJournalEntry(entry)
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO journal_entries (date, description, reference, created_at) VALUES (?, ?, ?, ?) RETURNING id`,
		entry.Date.String(), m.Description, m.Reference, formatTimestamp(m.CreatedAt),
	).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	saved := mapping.ToDomainJournalEntry(m)
	return &saved, nil
}

func (r *journalRepository) SaveLine(ctx context.Context, line domain.JournalLine) (*domain.JournalLine, error) {
	m := mapping.ToModelJournalLine(line)
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO journal_lines (journal_entry_id, account_id, debit, credit) VALUES (?, ?, ?, ?) RETURNING id`,
		m.JournalEntryID, m.AccountID, m.Debit.String(), m.Credit.String(),
	).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save journal line: %w", err)
	}
	saved := mapping.ToDomainJournalLine(m)
	return &saved, nil
}

func (r *journalRepository) DeleteEntry(ctx context.Context, entryID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM journal_lines WHERE journal_entry_id = ?`, entryID); err != nil {
		return fmt.Errorf("failed to delete journal lines for entry %d: %w", entryID, err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %d: %w", entryID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// dateRangeWhere builds inclusive bounds on an ISO date column. ISO dates
// order correctly as text.
func dateRangeWhere(column string, r domain.DateRange) ([]string, []any) {
	var where []string
	var args []any
	if !r.From.IsZero() {
		where = append(where, column+" >= ?")
		args = append(args, r.From.String())
	}
	if !r.To.IsZero() {
		where = append(where, column+" <= ?")
		args = append(args, r.To.String())
	}
	return where, args
}
