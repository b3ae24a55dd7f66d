package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the subset of the given ids that exist, keyed by id.
	FindAccountsByIDs(ctx context.Context, accountIDs []int64) (map[int64]domain.Account, error)

	// ListAccounts retrieves accounts matching the filter ordered by code.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)

	// FindChildIDs returns the ids of the direct children of any of the given parents.
	FindChildIDs(ctx context.Context, parentIDs []int64) ([]int64, error)

	// CountLinesForAccounts counts journal lines posted against any of the accounts.
	CountLinesForAccounts(ctx context.Context, accountIDs []int64) (int64, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount inserts a new account and returns it with its assigned id.
	// A code collision yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// UpdateAccount overwrites code, name, type and parent of an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccounts removes all of the given accounts.
	DeleteAccounts(ctx context.Context, accountIDs []int64) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
