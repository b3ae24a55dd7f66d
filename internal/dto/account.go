package dto

import (
	"strings"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required,oneof=Asset Liability Equity Income Expense"`
	ParentID *int64 `json:"parentId" binding:"omitempty,gt=0"`
}

// UpdateAccountRequest carries optional fields; parentId may be null to
// detach the account from its parent.
type UpdateAccountRequest struct {
	ID       int64      `json:"id" binding:"required,gt=0"`
	Code     *string    `json:"code" binding:"omitempty,min=1"`
	Name     *string    `json:"name" binding:"omitempty,min=1"`
	Type     *string    `json:"type" binding:"omitempty,oneof=Asset Liability Equity Income Expense"`
	ParentID NullableID `json:"parentId" binding:"omitempty,gt=0"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateAccountRequest) ToPatch() domain.AccountPatch {
	patch := domain.AccountPatch{
		Code:      r.Code,
		Name:      r.Name,
		ParentSet: r.ParentID.Set,
		ParentID:  r.ParentID.Value,
	}
	if r.Type != nil {
		t := domain.AccountType(*r.Type)
		patch.Type = &t
	}
	return patch
}

// IDRequest addresses a single account or journal entry.
type IDRequest struct {
	ID int64 `json:"id" uri:"id" binding:"required,gt=0"`
}

// ListAccountsRequest holds the optional account filters.
type ListAccountsRequest struct {
	Code string `json:"code" form:"code"`
	Name string `json:"name" form:"name"`
	Type string `json:"type" form:"type" binding:"omitempty,oneof=Asset Liability Equity Income Expense"`
}

func (r ListAccountsRequest) ToFilter() domain.AccountFilter {
	return domain.AccountFilter{
		CodeContains: r.Code,
		NameContains: r.Name,
		Type:         domain.AccountType(strings.TrimSpace(r.Type)),
	}
}

// DeleteAccountResponse lists every removed account, the requested one first.
type DeleteAccountResponse struct {
	DeletedAccountIDs []int64 `json:"deletedAccountIds"`
}
