package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines ordered by line id.
	GetEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntryWithLines, error)

	// SearchEntries lists entries matching every given predicate, most recent first.
	SearchEntries(ctx context.Context, search domain.JournalSearch) ([]domain.JournalEntry, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateEntry validates and persists a balanced entry atomically.
	CreateEntry(ctx context.Context, entry domain.NewJournalEntry) (*domain.JournalEntryWithLines, error)

	// DeleteEntry removes an entry and its lines unless its date is locked.
	DeleteEntry(ctx context.Context, entryID int64) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
