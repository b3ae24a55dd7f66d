package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the header of one balanced transaction.
// Entries are never updated, only created and deleted with their lines.
type JournalEntry struct {
	ID          int64     `json:"id"`
	Date        Date      `json:"date"`
	Description *string   `json:"description"`
	Reference   *string   `json:"reference"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewJournalEntry is the input for creating an entry.
type NewJournalEntry struct {
	Date        Date
	Description *string
	Reference   *string
	Lines       []JournalLine
}

// JournalEntryWithLines is an entry together with its lines ordered by line id.
type JournalEntryWithLines struct {
	Entry JournalEntry  `json:"entry"`
	Lines []JournalLine `json:"lines"`
}

// JournalSearch filters SearchEntries. Zero values impose no condition;
// the date range is inclusive and text fields are case-sensitive substrings.
type JournalSearch struct {
	Range       DateRange
	Reference   string
	Description string
}

// Totals returns the summed debit and credit sides of the lines.
func Totals(lines []JournalLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}
