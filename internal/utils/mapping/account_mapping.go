package mapping

import (
	"database/sql"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		ID:        d.ID,
		Code:      d.Code,
		Name:      d.Name,
		Type:      string(d.Type),
		CreatedAt: d.CreatedAt.UTC(),
	}
	if d.ParentID != nil {
		m.ParentID = sql.NullInt64{Int64: *d.ParentID, Valid: true}
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		ID:        m.ID,
		Code:      m.Code,
		Name:      m.Name,
		Type:      domain.AccountType(m.Type),
		CreatedAt: m.CreatedAt.UTC(),
	}
	if m.ParentID.Valid {
		parentID := m.ParentID.Int64
		d.ParentID = &parentID
	}
	return d
}

// ToDomainAccounts converts a slice of model Accounts.
func ToDomainAccounts(ms []models.Account) []domain.Account {
	out := make([]domain.Account, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToDomainAccount(m))
	}
	return out
}
