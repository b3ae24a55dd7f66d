package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

func errAccountNotFound(id int64) error {
	return apperrors.New(apperrors.ErrNotFound, apperrors.ReasonNotFound,
		fmt.Sprintf("Account %d not found", id)).WithDetail("accountId", id)
}

func errLedgerAccountNotFound(id int64) error {
	return apperrors.New(apperrors.ErrNotFound, apperrors.ReasonAccountNotFound,
		fmt.Sprintf("Account %d not found", id)).WithDetail("accountId", id)
}

func errEntryNotFound(id int64) error {
	return apperrors.New(apperrors.ErrNotFound, apperrors.ReasonNotFound,
		fmt.Sprintf("Journal entry %d not found", id)).WithDetail("journalEntryId", id)
}

func errDuplicateCode(code string) error {
	return apperrors.New(apperrors.ErrConflict, apperrors.ReasonDuplicateCode,
		fmt.Sprintf("Account code %q already exists", code)).WithDetail("code", code)
}

func errParentNotFound(id int64) error {
	return apperrors.New(apperrors.ErrNotFound, apperrors.ReasonParentNotFound,
		fmt.Sprintf("Parent account %d not found", id)).WithDetail("parentId", id)
}

func errSelfParent(id int64) error {
	return apperrors.New(apperrors.ErrConflict, apperrors.ReasonSelfParent,
		"An account cannot be its own parent").WithDetail("accountId", id)
}

func errParentCycle(id, parentID int64) error {
	return apperrors.New(apperrors.ErrConflict, apperrors.ReasonParentCycle,
		fmt.Sprintf("Account %d is an ancestor of account %d", id, parentID)).
		WithDetail("accountId", id).
		WithDetail("parentId", parentID)
}

func errHasJournalLines(ids []int64, lines int64) error {
	return apperrors.New(apperrors.ErrReferentialBlock, apperrors.ReasonHasJournalLines,
		"Cannot delete account: it or a descendant has journal lines").
		WithDetail("accountIds", ids).
		WithDetail("lineCount", lines)
}

func errPeriodLocked(d, through domain.Date) error {
	return apperrors.New(apperrors.ErrConflict, apperrors.ReasonPeriodLocked,
		fmt.Sprintf("Write operations are locked through %s", through)).
		WithDetail("date", d.String()).
		WithDetail("throughDate", through.String())
}

func errLockAlreadyLater(current, requested domain.Date) error {
	return apperrors.New(apperrors.ErrConflict, apperrors.ReasonLockAlreadyLater,
		fmt.Sprintf("Period is already locked through %s", current)).
		WithDetail("throughDate", current.String()).
		WithDetail("requested", requested.String())
}

func errInvalidDate(field string) error {
	return apperrors.New(apperrors.ErrValidation, apperrors.ReasonInvalidDate,
		fmt.Sprintf("%s must be a YYYY-MM-DD date", field)).WithDetail("field", field)
}

func errValidation(msg string) error {
	return apperrors.New(apperrors.ErrValidation, apperrors.ReasonValidation, msg)
}

func errTooFewLines(n int) error {
	return apperrors.New(apperrors.ErrValidation, apperrors.ReasonTooFewLines,
		"A journal entry needs at least two lines").WithDetail("lineCount", n)
}

func errInvalidLine(index int) error {
	return apperrors.New(apperrors.ErrValidation, apperrors.ReasonInvalidLine,
		fmt.Sprintf("Line %d must have exactly one positive debit or credit", index+1)).
		WithDetail("lineIndex", index)
}

func errAccountsNotFound(missing []int64) error {
	return apperrors.New(apperrors.ErrConflict, apperrors.ReasonAccountsNotFound,
		fmt.Sprintf("Accounts not found: %v", missing)).WithDetail("missingAccountIds", missing)
}

func errUnbalanced(debit, credit decimal.Decimal) error {
	return apperrors.New(apperrors.ErrConflict, apperrors.ReasonUnbalanced,
		fmt.Sprintf("Debits (%s) must equal credits (%s) and be greater than zero", debit, credit)).
		WithDetail("totalDebit", debit.String()).
		WithDetail("totalCredit", credit.String())
}

// storageErr wraps an unclassified repository failure as internal. Errors that
// already carry a kind pass through untouched.
func storageErr(err error, msg string) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(err, msg)
}
