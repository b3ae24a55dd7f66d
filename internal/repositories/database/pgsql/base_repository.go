package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dbtx is satisfied by *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txManager runs units of work on pooled connections.
type txManager struct {
	pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*txManager)(nil)

func (m *txManager) WithinTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// WithinReadOnlyTransaction gives every report a single snapshot.
func (m *txManager) WithinReadOnlyTransaction(ctx context.Context, fn portsrepo.TxFunc) error {
	return m.run(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}, fn)
}

func (m *txManager) run(ctx context.Context, opts pgx.TxOptions, fn portsrepo.TxFunc) error {
	tx, err := m.pool.BeginTx(ctx, opts)
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
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
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

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// mapWriteErr turns a unique violation into apperrors.ErrDuplicate.
func mapWriteErr(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, pgErr.Detail)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
