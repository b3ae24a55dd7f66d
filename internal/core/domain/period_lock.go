package domain

import "time"

// PeriodLock is the single ledger-wide close date. Journal writes dated on or
// before ThroughDate are rejected.
type PeriodLock struct {
	ThroughDate Date      `json:"throughDate"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Locks reports whether a write dated d falls inside the closed period.
func (l *PeriodLock) Locks(d Date) bool {
	if l == nil || l.ThroughDate.IsZero() {
		return false
	}
	return !d.After(l.ThroughDate)
}

// Settings are display preferences handed to hosts alongside ledger data.
type Settings struct {
	DisplayDateFormat string `json:"displayDateFormat"`
	CurrencySymbol    string `json:"currencySymbol"`
	Timezone          string `json:"timezone"`
}
