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

const accountColumns = `id, code, name, type, parent_id, created_at`

type accountRepository struct {
	db dbtx
}

func newAccountRepository(db dbtx) portsrepo.AccountRepositoryFacade {
	return &accountRepository{db: db}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (models.Account, error) {
	var m models.Account
	var createdAt string
	if err := row.Scan(&m.ID, &m.Code, &m.Name, &m.Type, &m.ParentID, &createdAt); err != nil {
		return models.Account{}, err
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return models.Account{}, err
	}
	m.CreatedAt = t
	return m, nil
}

func (r *accountRepository) findOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	m, err := scanAccount(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	acc, err := r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, accountID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account by ID %d: %w", accountID, err)
	}
	return acc, err
}

func (r *accountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	acc, err := r.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = ?`, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find account by code %q: %w", code, err)
	}
	return acc, err
}

func (r *accountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error) {
	out := make(map[int64]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return out, nil
	}
	in, args := inList(accountIDs)
	accounts, err := r.query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id IN (`+in+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	for _, acc := range accounts {
		out[acc.ID] = acc
	}
	return out, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	var where []string
	var args []any
	if filter.CodeContains != "" {
		where = append(where, "instr(code, ?) > 0")
		args = append(args, filter.CodeContains)
	}
	if filter.NameContains != "" {
		where = append(where, "instr(name, ?) > 0")
		args = append(args, filter.NameContains)
	}
	if filter.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(filter.Type))
	}

	query := `SELECT ` + accountColumns + ` FROM accounts`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY code ASC`

	accounts, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (r *accountRepository) query(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *accountRepository) FindChildIDs(ctx context.Context, parentIDs []int64) ([]int64, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	in, args := inList(parentIDs)
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM accounts WHERE parent_id IN (`+in+`) ORDER BY id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query child accounts: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan child account id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *accountRepository) CountLinesForAccounts(ctx context.Context, accountIDs []int64) (int64, error) {
	if len(accountIDs) == 0 {
		return 0, nil
	}
	in, args := inList(accountIDs)
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM journal_lines WHERE account_id IN (`+in+`)`, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count journal lines: %w", err)
	}
	return n, nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO accounts (code, name, type, parent_id, created_at) VALUES (?, ?, ?, ?, ?) RETURNING id`,
		m.Code, m.Name, m.Type, m.ParentID, formatTimestamp(m.CreatedAt),
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return nil, fmt.Errorf("failed to save account %s: %w", m.Code, err)
	}
	saved := mapping.ToDomainAccount(m)
	return &saved, nil
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET code = ?, name = ?, type = ?, parent_id = ? WHERE id = ?`,
		m.Code, m.Name, m.Type, m.ParentID, m.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to update account %d: %w", m.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update account %d: %w", m.ID, err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *accountRepository) DeleteAccounts(ctx context.Context, accountIDs []int64) error {
	if len(accountIDs) == 0 {
		return nil
	}
	in, args := inList(accountIDs)
	if _, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id IN (`+in+`)`, args...); err != nil {
		return fmt.Errorf("failed to delete accounts: %w", err)
	}
	return nil
}
