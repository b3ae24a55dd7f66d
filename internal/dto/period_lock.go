package dto

import "github.com/SscSPs/ledger_engine/internal/core/domain"

type ClosePeriodRequest struct {
	ThroughDate string `json:"throughDate" binding:"required,isodate"`
}

func (r ClosePeriodRequest) Date() domain.Date {
	return parseOptionalDate(r.ThroughDate)
}

type ClosePeriodResponse struct {
	LockedThrough domain.Date `json:"lockedThrough"`
}
