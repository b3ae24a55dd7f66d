package dto

import "github.com/SscSPs/ledger_engine/internal/core/domain"

// AsOfRequest bounds trial balance and balance sheet reports.
type AsOfRequest struct {
	AsOf string `json:"asOf" form:"asOf" binding:"omitempty,isodate"`
}

func (r AsOfRequest) Date() domain.Date {
	return parseOptionalDate(r.AsOf)
}

type LedgerRequest struct {
	AccountID             int64  `json:"accountId" uri:"id" binding:"required,gt=0"`
	StartDate             string `json:"startDate" form:"startDate" binding:"omitempty,isodate"`
	EndDate               string `json:"endDate" form:"endDate" binding:"omitempty,isodate"`
	IncludeRunningBalance bool   `json:"includeRunningBalance" form:"includeRunningBalance"`
}

func (r LedgerRequest) Range() domain.DateRange {
	return dateRange(r.StartDate, r.EndDate)
}

// DateRangeRequest bounds the profit and loss report; both ends are optional.
type DateRangeRequest struct {
	StartDate string `json:"startDate" form:"startDate" binding:"omitempty,isodate"`
	EndDate   string `json:"endDate" form:"endDate" binding:"omitempty,isodate"`
}

func (r DateRangeRequest) Range() domain.DateRange {
	return dateRange(r.StartDate, r.EndDate)
}

func dateRange(start, end string) domain.DateRange {
	return domain.DateRange{From: parseOptionalDate(start), To: parseOptionalDate(end)}
}

// parseOptionalDate returns the zero Date for empty or malformed input;
// validation has already rejected the latter.
func parseOptionalDate(s string) domain.Date {
	if s == "" {
		return domain.Date{}
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return domain.Date{}
	}
	return d
}
