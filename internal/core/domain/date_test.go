package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "2024-01-15"},
		{in: "2024-02-29"},
		{in: "2023-02-29", wantErr: true},
		{in: "2024-1-5", wantErr: true},
		{in: "2024-01-15T00:00:00Z", wantErr: true},
		{in: "", wantErr: true},
		{in: "15/01/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := domain.ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, d.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.in, d.String())
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	a := domain.NewDate(2024, time.January, 31)
	b := domain.NewDate(2024, time.February, 1)

	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.Equal(t, 0, a.Compare(domain.MustParseDate("2024-01-31")))
	assert.Equal(t, b, domain.NewDate(2024, time.January, 32))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date domain.Date `json:"date"`
	}

	out, err := json.Marshal(payload{Date: domain.MustParseDate("2024-03-09")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-09"}`, string(out))

	out, err = json.Marshal(payload{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":null}`, string(out))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-12-31"}`), &p))
	assert.Equal(t, domain.NewDate(2024, time.December, 31), p.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"2024-13-01"}`), &p))
}

func TestDateRange_Contains(t *testing.T) {
	r := domain.DateRange{From: domain.MustParseDate("2024-01-01"), To: domain.MustParseDate("2024-01-31")}

	assert.True(t, r.Contains(domain.MustParseDate("2024-01-01")))
	assert.True(t, r.Contains(domain.MustParseDate("2024-01-31")))
	assert.False(t, r.Contains(domain.MustParseDate("2024-02-01")))
	assert.True(t, domain.DateRange{}.Contains(domain.MustParseDate("1900-01-01")))
}
