package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one posting. Amounts accept JSON numbers or
// strings; an omitted side is zero.
type JournalLineRequest struct {
	AccountID int64           `json:"accountId" binding:"required,gt=0"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// CreateJournalEntryRequest defines a new balanced entry. Line count and
// balance are business rules checked by the journal engine.
type CreateJournalEntryRequest struct {
	Date        string               `json:"date" binding:"required,isodate"`
	Description *string              `json:"description"`
	Reference   *string              `json:"reference"`
	Lines       []JournalLineRequest `json:"lines" binding:"dive"`
}

// ToDomain assumes the request has been validated.
func (r CreateJournalEntryRequest) ToDomain() domain.NewJournalEntry {
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}
	return domain.NewJournalEntry{
		Date:        parseOptionalDate(r.Date),
		Description: r.Description,
		Reference:   r.Reference,
		Lines:       lines,
	}
}

// SearchJournalEntriesRequest holds the optional search predicates.
type SearchJournalEntriesRequest struct {
	StartDate   string `json:"startDate" form:"startDate" binding:"omitempty,isodate"`
	EndDate     string `json:"endDate" form:"endDate" binding:"omitempty,isodate"`
	Reference   string `json:"reference" form:"reference"`
	Description string `json:"description" form:"description"`
}

func (r SearchJournalEntriesRequest) ToDomain() domain.JournalSearch {
	return domain.JournalSearch{
		Range:       dateRange(r.StartDate, r.EndDate),
		Reference:   r.Reference,
		Description: r.Description,
	}
}

// DeleteJournalEntryResponse is returned by a successful delete.
type DeleteJournalEntryResponse struct {
	Deleted bool `json:"deleted"`
}
