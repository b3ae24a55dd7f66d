package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const entryColumns = `id, date, description, reference, created_at`

type PgxJournalRepository struct {
	db dbtx
}

func newJournalRepository(db dbtx) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{db: db}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := r.db.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE id = $1`, entryID).
		Scan(&m.ID, &m.Date, &m.Description, &m.Reference, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %d: %w", entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, journal_entry_id, account_id, debit, credit FROM journal_lines WHERE journal_entry_id = $1 ORDER BY id ASC`,
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal lines: %w", err)
	}
	return lines, nil
}

func (r *PgxJournalRepository) SearchEntries(ctx context.Context, search domain.JournalSearch) ([]domain.JournalEntry, error) {
	where, args := dateRangeWhere("date", search.Range, nil)
	if search.Reference != "" {
		args = append(args, search.Reference)
		where = append(where, fmt.Sprintf("strpos(reference, $%d) > 0", len(args)))
	}
	if search.Description != "" {
		args = append(args, search.Description)
		where = append(where, fmt.Sprintf("strpos(description, $%d) > 0", len(args)))
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		var m models.JournalEntry
		if err := rows.Scan(&m.ID, &m.Date, &m.Description, &m.Reference, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entries: %w", err)
	}
	return entries, nil
}

func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	m := mapping.ToModelJournalEntry(entry)
	err := r.db.QueryRow(ctx,
		`INSERT INTO journal_entries (date, description, reference, created_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		m.Date, m.Description, m.Reference, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	saved := mapping.ToDomainJournalEntry(m)
	return &saved, nil
}

func (r *PgxJournalRepository) SaveLine(ctx context.Context, line domain.JournalLine) (*domain.JournalLine, error) {
	m := mapping.ToModelJournalLine(line)
	err := r.db.QueryRow(ctx,
		`INSERT INTO journal_lines (journal_entry_id, account_id, debit, credit) VALUES ($1, $2, $3, $4) RETURNING id`,
		m.JournalEntryID, m.AccountID, m.Debit, m.Credit,
	).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to save journal line: %w", err)
	}
	saved := mapping.ToDomainJournalLine(m)
	return &saved, nil
}

// DeleteEntry relies on ON DELETE CASCADE to remove the lines.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, entryID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM journal_entries WHERE id = $1`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %d: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// dateRangeWhere appends inclusive bounds on a DATE column, numbering
// placeholders after the existing args.
func dateRangeWhere(column string, r domain.DateRange, args []any) ([]string, []any) {
	var where []string
	if !r.From.IsZero() {
		args = append(args, r.From.Time())
		where = append(where, fmt.Sprintf("%s >= $%d", column, len(args)))
	}
	if !r.To.IsZero() {
		args = append(args, r.To.Time())
		where = append(where, fmt.Sprintf("%s <= $%d", column, len(args)))
	}
	return where, args
}
