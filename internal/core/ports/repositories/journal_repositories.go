package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal entries and lines
type JournalReader interface {
	// FindEntryByID retrieves an entry header.
	FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry ordered by line id.
	FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.JournalLine, error)

	// SearchEntries lists entries matching the search, newest date first then id descending.
	SearchEntries(ctx context.Context, search domain.JournalSearch) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries and lines
type JournalWriter interface {
	// SaveEntry inserts the entry header and returns it with id and createdAt set.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// SaveLine inserts one line and returns it with its id set.
	SaveLine(ctx context.Context, line domain.JournalLine) (*domain.JournalLine, error)

	// DeleteEntry removes the entry and, through the cascade, its lines.
	DeleteEntry(ctx context.Context, entryID int64) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
