package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// accountService owns the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	txManager   portsrepo.TransactionManager
}

// NewAccountService creates the account hierarchy manager.
func NewAccountService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.AccountSvcFacade {
	return &accountService{
		BaseService: newBaseService(opts...),
		accountRepo: repos.AccountRepo,
		txManager:   repos.TxManager,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, code, name string, accountType domain.AccountType, parentID *int64) (*domain.Account, error) {
	if err := validateAccountFields(&code, &name, &accountType); err != nil {
		return nil, err
	}

	var created *domain.Account
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if parentID != nil {
			if _, err := findAccount(ctx, repos.AccountRepo, *parentID, errParentNotFound); err != nil {
				return err
			}
		}
		if err := ensureCodeFree(ctx, repos.AccountRepo, code, 0); err != nil {
			return err
		}

		acc, err := repos.AccountRepo.SaveAccount(ctx, domain.Account{
			Code:      code,
			Name:      name,
			Type:      accountType,
			ParentID:  parentID,
			CreatedAt: s.Now(),
		})
		if err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return errDuplicateCode(code)
			}
			return storageErr(err, "failed to save account")
		}
		created = acc
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create account", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.Int64("account_id", created.ID), slog.String("code", created.Code))
	return created, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID int64, patch domain.AccountPatch) (*domain.Account, error) {
	if err := validateAccountFields(patch.Code, patch.Name, patch.Type); err != nil {
		return nil, err
	}

	var updated *domain.Account
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		current, err := findAccount(ctx, repos.AccountRepo, accountID, errAccountNotFound)
		if err != nil {
			return err
		}
		if patch.IsEmpty() {
			updated = current
			return nil
		}

		if patch.Code != nil && *patch.Code != current.Code {
			if err := ensureCodeFree(ctx, repos.AccountRepo, *patch.Code, accountID); err != nil {
				return err
			}
		}
		if patch.ParentSet && patch.ParentID != nil {
			if err := s.checkParent(ctx, repos.AccountRepo, accountID, *patch.ParentID); err != nil {
				return err
			}
		}

		next := patch.Apply(*current)
		if err := repos.AccountRepo.UpdateAccount(ctx, next); err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				return errDuplicateCode(next.Code)
			}
			return storageErr(err, "failed to update account")
		}
		updated = &next
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to update account", slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.Int64("account_id", accountID))
	return updated, nil
}

// checkParent rejects a new parent that is missing, the account itself, or
// one of the account's descendants.
func (s *accountService) checkParent(ctx context.Context, repo portsrepo.AccountReader, accountID, parentID int64) error {
	if parentID == accountID {
		return errSelfParent(accountID)
	}
	parent, err := findAccount(ctx, repo, parentID, errParentNotFound)
	if err != nil {
		return err
	}

	seen := map[int64]bool{parent.ID: true}
	for cur := parent; cur.ParentID != nil; {
		ancestorID := *cur.ParentID
		if ancestorID == accountID {
			return errParentCycle(accountID, parentID)
		}
		if seen[ancestorID] {
			// The stored hierarchy already loops; refuse to add to it.
			return errParentCycle(accountID, parentID)
		}
		seen[ancestorID] = true

		next, err := repo.FindAccountByID(ctx, ancestorID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return storageErr(err, "failed to walk account ancestors")
		}
		cur = next
	}
	return nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	acc, err := findAccount(ctx, s.accountRepo, accountID, errAccountNotFound)
	if err != nil {
		s.logFailure(ctx, err, "Failed to get account", slog.Int64("account_id", accountID))
		return nil, err
	}
	return acc, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, errValidation("type must be one of Asset, Liability, Equity, Income, Expense")
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, storageErr(err, "failed to list accounts")
	}
	s.LogDebug(ctx, "Accounts listed", slog.Int("count", len(accounts)))
	return accounts, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID int64) ([]int64, error) {
	var deleted []int64
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := findAccount(ctx, repos.AccountRepo, accountID, errAccountNotFound); err != nil {
			return err
		}

		ids, err := descendantClosure(ctx, repos.AccountRepo, accountID)
		if err != nil {
			return err
		}

		lines, err := repos.AccountRepo.CountLinesForAccounts(ctx, ids)
		if err != nil {
			return storageErr(err, "failed to count journal lines")
		}
		if lines > 0 {
			return errHasJournalLines(ids, lines)
		}

		if err := repos.AccountRepo.DeleteAccounts(ctx, ids); err != nil {
			return storageErr(err, "failed to delete accounts")
		}
		deleted = ids
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete account", slog.Int64("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Accounts deleted", slog.Int64("account_id", accountID), slog.Int("count", len(deleted)))
	return deleted, nil
}

// descendantClosure returns rootID followed by every transitive descendant in
// breadth-first order.
func descendantClosure(ctx context.Context, repo portsrepo.AccountReader, rootID int64) ([]int64, error) {
	ids := []int64{rootID}
	visited := map[int64]bool{rootID: true}
	frontier := []int64{rootID}
	for len(frontier) > 0 {
		children, err := repo.FindChildIDs(ctx, frontier)
		if err != nil {
			return nil, storageErr(err, "failed to load child accounts")
		}
		var next []int64
		for _, id := range children {
			if visited[id] {
				continue
			}
			visited[id] = true
			ids = append(ids, id)
			next = append(next, id)
		}
		frontier = next
	}
	return ids, nil
}

func findAccount(ctx context.Context, repo portsrepo.AccountReader, id int64, notFound func(int64) error) (*domain.Account, error) {
	acc, err := repo.FindAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, notFound(id)
		}
		return nil, storageErr(err, "failed to find account")
	}
	return acc, nil
}

// ensureCodeFree fails when code belongs to an account other than selfID.
func ensureCodeFree(ctx context.Context, repo portsrepo.AccountReader, code string, selfID int64) error {
	existing, err := repo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return storageErr(err, "failed to look up account code")
	}
	if existing.ID != selfID {
		return errDuplicateCode(code)
	}
	return nil
}

func validateAccountFields(code, name *string, accountType *domain.AccountType) error {
	if code != nil {
		if strings.TrimSpace(*code) == "" {
			return errValidation("code must not be empty")
		}
	}
	if name != nil {
		if strings.TrimSpace(*name) == "" {
			return errValidation("name must not be empty")
		}
	}
	if accountType != nil && !accountType.Valid() {
		return errValidation("type must be one of Asset, Liability, Equity, Income, Expense")
	}
	return nil
}
