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

// Codes are ordered bytewise so both storage engines list the chart identically.
const accountColumns = `id, code, name, type, parent_id, created_at`

type PgxAccountRepository struct {
	db dbtx
}

func newAccountRepository(db dbtx) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{db: db}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(&m.ID, &m.Code, &m.Name, &m.Type, &m.ParentID, &m.CreatedAt)
	return m, err
}

func (r *PgxAccountRepository) findOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	m, err := scanAccount(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	acc, err := r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, accountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account %d: %w", accountID, err)
	}
	return acc, err
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	acc, err := r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1`, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account by code %q: %w", code, err)
	}
	return acc, err
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	found := make(map[int64]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return found, nil
	}
	accounts, err := r.query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ANY($1)`, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find accounts by ids: %w", err)
	}
	for _, acc := range accounts {
		found[acc.ID] = acc
	}
	return found, nil
}

// ListAccounts uses strpos so filters match case-sensitively and treat
// LIKE wildcards literally.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var where []string
	var args []any
	if filter.CodeContains != "" {
		args = append(args, filter.CodeContains)
		where = append(where, fmt.Sprintf("strpos(code, $%d) > 0", len(args)))
	}
	if filter.NameContains != "" {
		args = append(args, filter.NameContains)
		where = append(where, fmt.Sprintf("strpos(name, $%d) > 0", len(args)))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY code COLLATE "C" ASC`

	accounts, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) query(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	return accounts, rows.Err()
}

func (r *PgxAccountRepository) FindChildIDs(ctx context.Context, parentIDs []int64) ([]int64, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT id FROM accounts WHERE parent_id = ANY($1) ORDER BY id`, parentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to find child accounts: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("failed to scan child account ids: %w", err)
	}
	return ids, nil
}

func (r *PgxAccountRepository) CountLinesForAccounts(ctx context.Context, accountIDs []int64) (int64, error) {
	if len(accountIDs) == 0 {
		return 0, nil
	}
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM journal_lines WHERE account_id = ANY($1)`, accountIDs).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count journal lines: %w", err)
	}
	return n, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	err := r.db.QueryRow(ctx,
		`INSERT INTO accounts (code, name, type, parent_id, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		m.Code, m.Name, m.Type, m.ParentID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return nil, mapWriteErr(err, fmt.Sprintf("failed to save account %s", m.Code))
	}
	saved := mapping.ToDomainAccount(m)
	return &saved, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	tag, err := r.db.Exec(ctx,
		`UPDATE accounts SET code = $1, name = $2, type = $3, parent_id = $4 WHERE id = $5`,
		m.Code, m.Name, m.Type, m.ParentID, m.ID,
	)
	if err != nil {
		return mapWriteErr(err, fmt.Sprintf("failed to update account %d", m.ID))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccounts(ctx context.Context, accountIDs []int64) error {
	if len(accountIDs) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = ANY($1)`, accountIDs); err != nil {
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	return nil
}
