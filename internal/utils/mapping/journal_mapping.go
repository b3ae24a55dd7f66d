package mapping

import (
	"database/sql"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		ID:          d.ID,
		Date:        d.Date.Time(),
		Description: toNullString(d.Description),
		Reference:   toNullString(d.Reference),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		ID:          m.ID,
		Date:        domain.DateOf(m.Date),
		Description: fromNullString(m.Description),
		Reference:   fromNullString(m.Reference),
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		ID:             d.ID,
		JournalEntryID: d.JournalEntryID,
		AccountID:      d.AccountID,
		Debit:          d.Debit,
		Credit:         d.Credit,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		ID:             m.ID,
		JournalEntryID: m.JournalEntryID,
		AccountID:      m.AccountID,
		Debit:          m.Debit,
		Credit:         m.Credit,
	}
}

// ToDomainLedgerRow converts a joined ledger line into a report row without a running balance.
func ToDomainLedgerRow(m models.LedgerLine) domain.LedgerRow {
	return domain.LedgerRow{
		Line:  ToDomainJournalLine(m.Line),
		Entry: ToDomainJournalEntry(m.Entry),
	}
}

// ToDomainPeriodLock converts a model PeriodLock to a domain PeriodLock
func ToDomainPeriodLock(m models.PeriodLock) domain.PeriodLock {
	return domain.PeriodLock{
		ThroughDate: domain.DateOf(m.ThroughDate),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// ToModelPeriodLock converts a domain PeriodLock to a model PeriodLock
func ToModelPeriodLock(d domain.PeriodLock) models.PeriodLock {
	return models.PeriodLock{
		ThroughDate: d.ThroughDate.Time(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// ToDomainAccountTotals converts aggregated rows keyed by account id.
func ToDomainAccountTotals(ms []models.AccountTotals) map[int64]domain.AccountTotals {
	out := make(map[int64]domain.AccountTotals, len(ms))
	for _, m := range ms {
		out[m.AccountID] = domain.AccountTotals{
			AccountID:   m.AccountID,
			TotalDebit:  m.TotalDebit,
			TotalCredit: m.TotalCredit,
			LineCount:   m.LineCount,
		}
	}
	return out
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
