package actions

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// The typed operations below validate their request and call one service.
// HTTP handlers use them directly; Execute reaches them by name.

func (d *Dispatcher) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Account.CreateAccount(ctx, req.Code, req.Name, domain.AccountType(req.Type), req.ParentID)
}

func (d *Dispatcher) UpdateAccount(ctx context.Context, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Account.UpdateAccount(ctx, req.ID, req.ToPatch())
}

func (d *Dispatcher) GetAccountByID(ctx context.Context, req dto.IDRequest) (*domain.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Account.GetAccountByID(ctx, req.ID)
}

func (d *Dispatcher) ListAccounts(ctx context.Context, req dto.ListAccountsRequest) ([]domain.Account, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Account.ListAccounts(ctx, req.ToFilter())
}

func (d *Dispatcher) DeleteAccount(ctx context.Context, req dto.IDRequest) (*dto.DeleteAccountResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	ids, err := d.services.Account.DeleteAccount(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteAccountResponse{DeletedAccountIDs: ids}, nil
}

func (d *Dispatcher) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntryWithLines, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Journal.CreateEntry(ctx, req.ToDomain())
}

func (d *Dispatcher) DeleteJournalEntry(ctx context.Context, req dto.IDRequest) (*dto.DeleteJournalEntryResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if err := d.services.Journal.DeleteEntry(ctx, req.ID); err != nil {
		return nil, err
	}
	return &dto.DeleteJournalEntryResponse{Deleted: true}, nil
}

func (d *Dispatcher) GetJournalEntryByID(ctx context.Context, req dto.IDRequest) (*domain.JournalEntryWithLines, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Journal.GetEntryByID(ctx, req.ID)
}

func (d *Dispatcher) SearchJournalEntries(ctx context.Context, req dto.SearchJournalEntriesRequest) ([]domain.JournalEntry, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Journal.SearchEntries(ctx, req.ToDomain())
}

func (d *Dispatcher) ClosePeriod(ctx context.Context, req dto.ClosePeriodRequest) (*dto.ClosePeriodResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	lock, err := d.services.PeriodLock.SetLock(ctx, req.Date())
	if err != nil {
		return nil, err
	}
	return &dto.ClosePeriodResponse{LockedThrough: lock.ThroughDate}, nil
}

// GetPeriodLock returns nil when the ledger was never closed.
func (d *Dispatcher) GetPeriodLock(ctx context.Context) (*domain.PeriodLock, error) {
	return d.services.PeriodLock.GetLock(ctx)
}

func (d *Dispatcher) GetTrialBalance(ctx context.Context, req dto.AsOfRequest) (*domain.TrialBalance, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Reporting.TrialBalance(ctx, req.Date())
}

func (d *Dispatcher) GetLedger(ctx context.Context, req dto.LedgerRequest) (*domain.Ledger, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Reporting.Ledger(ctx, req.AccountID, req.Range(), req.IncludeRunningBalance)
}

func (d *Dispatcher) GetBalanceSheet(ctx context.Context, req dto.AsOfRequest) (*domain.BalanceSheet, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Reporting.BalanceSheet(ctx, req.Date())
}

func (d *Dispatcher) GetProfitLoss(ctx context.Context, req dto.DateRangeRequest) (*domain.ProfitLoss, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return d.services.Reporting.ProfitLoss(ctx, req.Range())
}

func (d *Dispatcher) GetSettings(_ context.Context) (domain.Settings, error) {
	return d.settings, nil
}
