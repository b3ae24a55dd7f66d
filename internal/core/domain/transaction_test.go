package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalLine_IsSingleSided(t *testing.T) {
	tests := []struct {
		name string
		line domain.JournalLine
		want bool
	}{
		{
			name: "debit only",
			line: domain.JournalLine{Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
			want: true,
		},
		{
			name: "credit only",
			line: domain.JournalLine{Debit: decimal.Zero, Credit: decimal.RequireFromString("0.01")},
			want: true,
		},
		{
			name: "both sides positive",
			line: domain.JournalLine{Debit: decimal.NewFromInt(1), Credit: decimal.NewFromInt(1)},
			want: false,
		},
		{
			name: "both sides zero",
			line: domain.JournalLine{Debit: decimal.Zero, Credit: decimal.Zero},
			want: false,
		},
		{
			name: "negative debit",
			line: domain.JournalLine{Debit: decimal.NewFromInt(-5), Credit: decimal.Zero},
			want: false,
		},
		{
			name: "negative credit with positive debit",
			line: domain.JournalLine{Debit: decimal.NewFromInt(5), Credit: decimal.NewFromInt(-5)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.line.IsSingleSided())
		})
	}
}

func TestTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{AccountID: 1, Debit: decimal.RequireFromString("10.10"), Credit: decimal.Zero},
		{AccountID: 2, Debit: decimal.RequireFromString("20.20"), Credit: decimal.Zero},
		{AccountID: 3, Debit: decimal.Zero, Credit: decimal.RequireFromString("30.30")},
	}

	debit, credit := domain.Totals(lines)

	assert.True(t, debit.Equal(decimal.RequireFromString("30.30")))
	assert.True(t, credit.Equal(decimal.RequireFromString("30.30")))
	assert.True(t, lines[0].Net().Equal(decimal.RequireFromString("10.10")))
	assert.True(t, lines[2].Net().Equal(decimal.RequireFromString("-30.30")))
}

func TestAccountPatch(t *testing.T) {
	parent := int64(7)
	acc := domain.Account{ID: 3, Code: "1000", Name: "Cash", Type: domain.Asset, ParentID: &parent}

	assert.True(t, domain.AccountPatch{}.IsEmpty())

	name := "Petty cash"
	patched := domain.AccountPatch{Name: &name}.Apply(acc)
	assert.Equal(t, "Petty cash", patched.Name)
	assert.Equal(t, &parent, patched.ParentID)

	cleared := domain.AccountPatch{ParentSet: true}.Apply(acc)
	assert.Nil(t, cleared.ParentID)
	assert.Equal(t, "Cash", cleared.Name)
}

func TestPeriodLock_Locks(t *testing.T) {
	var unset *domain.PeriodLock
	assert.False(t, unset.Locks(domain.MustParseDate("1999-01-01")))

	lock := &domain.PeriodLock{ThroughDate: domain.MustParseDate("2024-01-20")}
	assert.True(t, lock.Locks(domain.MustParseDate("2024-01-10")))
	assert.True(t, lock.Locks(domain.MustParseDate("2024-01-20")))
	assert.False(t, lock.Locks(domain.MustParseDate("2024-01-21")))
}
