package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request contradicts current ledger state.
var ErrConflict = errors.New("conflict")

// ErrReferentialBlock indicates that a delete is blocked by rows referencing the target.
var ErrReferentialBlock = errors.New("referenced by existing rows")

// ErrInternal indicates a storage or otherwise unexpected failure.
var ErrInternal = errors.New("internal error")

// Reason is a machine readable code for a business rule failure.
type Reason string

const (
	ReasonValidation       Reason = "VALIDATION_ERROR"
	ReasonNotFound         Reason = "NOT_FOUND"
	ReasonAccountNotFound  Reason = "ACCOUNT_NOT_FOUND"
	ReasonDuplicateCode    Reason = "DUPLICATE_CODE"
	ReasonParentNotFound   Reason = "PARENT_NOT_FOUND"
	ReasonSelfParent       Reason = "SELF_PARENT"
	ReasonParentCycle      Reason = "PARENT_CYCLE"
	ReasonHasJournalLines  Reason = "HAS_JOURNAL_LINES"
	ReasonPeriodLocked     Reason = "PERIOD_LOCKED"
	ReasonLockAlreadyLater Reason = "LOCK_ALREADY_LATER"
	ReasonInvalidDate      Reason = "INVALID_DATE"
	ReasonAccountsNotFound Reason = "ACCOUNTS_NOT_FOUND"
	ReasonUnbalanced       Reason = "UNBALANCED"
	ReasonTooFewLines      Reason = "TOO_FEW_LINES"
	ReasonInvalidLine      Reason = "INVALID_LINE"
	ReasonUnknownAction    Reason = "UNKNOWN_ACTION"
	ReasonInternal         Reason = "INTERNAL"
)

// AppError is a classified business failure. Kind is one of the sentinel
// errors above so callers can match with errors.Is.
type AppError struct {
	Kind    error
	Reason  Reason
	Message string
	Details map[string]any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Is matches the error kind, so errors.Is(err, ErrConflict) works on any AppError of that kind.
func (e *AppError) Is(target error) bool {
	return e.Kind == target
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError of the given kind.
func New(kind error, reason Reason, message string) *AppError {
	return &AppError{Kind: kind, Reason: reason, Message: message}
}

// WithDetail returns the error with an extra detail attached.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Wrap classifies an underlying error as internal.
func Wrap(err error, message string) *AppError {
	return &AppError{Kind: ErrInternal, Reason: ReasonInternal, Message: message, Err: err}
}

// KindName returns the public name of an error kind.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrNotFound):
		return "NotFound"
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return "Conflict"
	case errors.Is(err, ErrReferentialBlock):
		return "ReferentialBlock"
	default:
		return "Internal"
	}
}

// HTTPStatus maps an error to the status code used by the HTTP surface.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrReferentialBlock):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ReasonOf extracts the reason code, falling back to a code derived from the kind.
func ReasonOf(err error) Reason {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason
	}
	switch {
	case errors.Is(err, ErrValidation):
		return ReasonValidation
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrDuplicate):
		return ReasonDuplicateCode
	default:
		return ReasonInternal
	}
}
