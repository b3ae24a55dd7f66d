package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// ListAccounts retrieves accounts matching the filter ordered by code.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount adds a new account to the chart.
	CreateAccount(ctx context.Context, code, name string, accountType domain.AccountType, parentID *int64) (*domain.Account, error)

	// UpdateAccount applies the patch to an existing account.
	UpdateAccount(ctx context.Context, accountID int64, patch domain.AccountPatch) (*domain.Account, error)

	// DeleteAccount removes the account and all of its descendants and
	// returns the removed ids, the requested id first.
	DeleteAccount(ctx context.Context, accountID int64) ([]int64, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
