package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// timestampFormat is how created_at and updated_at are stored.
const timestampFormat = time.RFC3339Nano

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// txManager runs units of work on a single sql.DB.
type txManager struct {
	db *sql.DB
}

var _ portsrepo.TransactionManager = (*txManager)(nil)

func (m *txManager) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	return m.run(ctx, false, fn)
}

// WithinReadOnlyTransaction runs fn in a transaction that is always rolled back.
func (m *txManager) WithinReadOnlyTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	return m.run(ctx, true, fn)
}

func (m *txManager) run(ctx context.Context, readOnly bool, fn portsrepo.TxFunc) (err error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		rollback(ctx, tx)
		return err
	}
	if readOnly {
		rollback(ctx, tx)
		return nil
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to rollback transaction", slog.String("error", err.Error()))
	}
}

func newRepositories(db dbtx) portsrepo.Repositories {
	return portsrepo.Repositories{
		AccountRepo:    newAccountRepository(db),
		JournalRepo:    newJournalRepository(db),
		PeriodLockRepo: newPeriodLockRepository(db),
		ReportingRepo:  newReportingRepository(db),
	}
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

// inList returns "?,?,?" and the matching arguments for an IN clause.
func inList(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(ids)), ","), args
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func parseStoredDate(s string) (time.Time, error) {
	d, err := domain.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored date: %w", err)
	}
	return d.Time(), nil
}
