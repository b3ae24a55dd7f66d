package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

// journalService records and removes balanced journal entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	txManager   portsrepo.TransactionManager
}

// NewJournalService creates the journal engine.
func NewJournalService(repos portsrepo.RepositoryProvider, opts ...Option) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(opts...),
		journalRepo: repos.JournalRepo,
		txManager:   repos.TxManager,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateEntry(ctx context.Context, input domain.NewJournalEntry) (*domain.JournalEntryWithLines, error) {
	var result *domain.JournalEntryWithLines
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if err := assertWritable(ctx, repos.PeriodLockRepo, input.Date, true); err != nil {
			return err
		}
		if err := validateJournalLines(ctx, repos.AccountRepo, input.Lines); err != nil {
			return err
		}

		entry, err := repos.JournalRepo.SaveEntry(ctx, domain.JournalEntry{
			Date:        input.Date,
			Description: input.Description,
			Reference:   input.Reference,
			CreatedAt:   s.Now(),
		})
		if err != nil {
			return storageErr(err, "failed to save journal entry")
		}

		lines := make([]domain.JournalLine, 0, len(input.Lines))
		for _, l := range input.Lines {
			saved, err := repos.JournalRepo.SaveLine(ctx, domain.JournalLine{
				JournalEntryID: entry.ID,
				AccountID:      l.AccountID,
				Debit:          l.Debit,
				Credit:         l.Credit,
			})
			if err != nil {
				return storageErr(err, "failed to save journal line")
			}
			lines = append(lines, *saved)
		}

		result = &domain.JournalEntryWithLines{Entry: *entry, Lines: lines}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to create journal entry", slog.String("date", input.Date.String()))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.Int64("journal_entry_id", result.Entry.ID),
		slog.String("date", result.Entry.Date.String()),
		slog.Int("line_count", len(result.Lines)))
	return result, nil
}

// validateJournalLines enforces line count, single-sided lines, account
// existence and exact balance, in that order.
func validateJournalLines(ctx context.Context, accounts portsrepo.AccountReader, lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return errTooFewLines(len(lines))
	}
	for i, l := range lines {
		if !l.IsSingleSided() {
			return errInvalidLine(i)
		}
	}

	ids := uniqueAccountIDs(lines)
	found, err := accounts.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return storageErr(err, "failed to load journal accounts")
	}
	var missing []int64
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return errAccountsNotFound(missing)
	}

	debit, credit := domain.Totals(lines)
	if !debit.Equal(credit) || !debit.IsPositive() {
		return errUnbalanced(debit, credit)
	}
	return nil
}

// uniqueAccountIDs returns the distinct account ids in first-seen order.
func uniqueAccountIDs(lines []domain.JournalLine) []int64 {
	seen := make(map[int64]bool, len(lines))
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		if !seen[l.AccountID] {
			seen[l.AccountID] = true
			ids = append(ids, l.AccountID)
		}
	}
	return ids
}

func (s *journalService) DeleteEntry(ctx context.Context, entryID int64) error {
	err := s.txManager.WithinTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		entry, err := findEntry(ctx, repos.JournalRepo, entryID)
		if err != nil {
			return err
		}
		if err := assertWritable(ctx, repos.PeriodLockRepo, entry.Date, true); err != nil {
			return err
		}
		if err := repos.JournalRepo.DeleteEntry(ctx, entryID); err != nil {
			return storageErr(err, "failed to delete journal entry")
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to delete journal entry", slog.Int64("journal_entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted", slog.Int64("journal_entry_id", entryID))
	return nil
}

func (s *journalService) GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntryWithLines, error) {
	var result *domain.JournalEntryWithLines
	err := s.txManager.WithinReadOnlyTransaction(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		entry, err := findEntry(ctx, repos.JournalRepo, entryID)
		if err != nil {
			return err
		}
		lines, err := repos.JournalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return storageErr(err, "failed to load journal lines")
		}
		result = &domain.JournalEntryWithLines{Entry: *entry, Lines: lines}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, err, "Failed to get journal entry", slog.Int64("journal_entry_id", entryID))
		return nil, err
	}
	return result, nil
}

func (s *journalService) SearchEntries(ctx context.Context, search domain.JournalSearch) ([]domain.JournalEntry, error) {
	entries, err := s.journalRepo.SearchEntries(ctx, search)
	if err != nil {
		s.LogError(ctx, err, "Failed to search journal entries")
		return nil, storageErr(err, "failed to search journal entries")
	}
	s.LogDebug(ctx, "Journal entries searched", slog.Int("count", len(entries)))
	return entries, nil
}

func findEntry(ctx context.Context, repo portsrepo.JournalReader, id int64) (*domain.JournalEntry, error) {
	entry, err := repo.FindEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, errEntryNotFound(id)
		}
		return nil, storageErr(err, "failed to find journal entry")
	}
	return entry, nil
}
