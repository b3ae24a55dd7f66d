package domain

import (
	"time"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "Asset"
	Liability AccountType = "Liability"
	Equity    AccountType = "Equity"
	Income    AccountType = "Income"
	Expense   AccountType = "Expense"
)

// AccountTypes lists every valid account type in chart order.
func AccountTypes() []AccountType {
	return []AccountType{Asset, Liability, Equity, Income, Expense}
}

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account is a node in the chart of accounts. ParentID is nil for roots.
type Account struct {
	ID        int64       `json:"id"`
	Code      string      `json:"code"`
	Name      string      `json:"name"`
	Type      AccountType `json:"type"`
	ParentID  *int64      `json:"parentId"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AccountFilter narrows ListAccounts. Empty fields impose no condition.
// Code and name are case-sensitive substring matches; type is exact.
type AccountFilter struct {
	CodeContains string
	NameContains string
	Type         AccountType
}

// AccountPatch carries the fields of an account update. Nil fields are left
// unchanged. ParentSet distinguishes "clear the parent" (ParentSet with a nil
// ParentID) from "leave the parent alone".
type AccountPatch struct {
	Code      *string
	Name      *string
	Type      *AccountType
	ParentSet bool
	ParentID  *int64
}

// IsEmpty reports whether the patch changes nothing.
func (p AccountPatch) IsEmpty() bool {
	return p.Code == nil && p.Name == nil && p.Type == nil && !p.ParentSet
}

// Apply returns a copy of a with the patch applied.
func (p AccountPatch) Apply(a Account) Account {
	if p.Code != nil {
		a.Code = *p.Code
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.ParentSet {
		a.ParentID = p.ParentID
	}
	return a
}
