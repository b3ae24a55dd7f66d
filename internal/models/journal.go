package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the row shape of the journal_entries table. Date holds
// midnight UTC of the entry day.
type JournalEntry struct {
	ID          int64          `db:"id"`
	Date        time.Time      `db:"date"`
	Description sql.NullString `db:"description"`
	Reference   sql.NullString `db:"reference"`
	CreatedAt   time.Time      `db:"created_at"`
}

// JournalLine is the row shape of the journal_lines table.
type JournalLine struct {
	ID             int64           `db:"id"`
	JournalEntryID int64           `db:"journal_entry_id"`
	AccountID      int64           `db:"account_id"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
}

// LedgerLine is a journal line joined with its entry header.
type LedgerLine struct {
	Line  JournalLine
	Entry JournalEntry
}

// PeriodLock is the row shape of the single-row period_locks table.
type PeriodLock struct {
	ThroughDate time.Time `db:"through_date"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// AccountTotals is one row of a per-account aggregation over journal_lines.
type AccountTotals struct {
	AccountID   int64           `db:"account_id"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
	LineCount   int64           `db:"line_count"`
}
