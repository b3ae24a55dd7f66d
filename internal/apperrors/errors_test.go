package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestAppErrorMatchesKind(t *testing.T) {
	err := apperrors.New(apperrors.ErrConflict, apperrors.ReasonPeriodLocked, "locked").WithDetail("date", "2024-01-01")
	wrapped := fmt.Errorf("closing: %w", err)

	assert.True(t, errors.Is(wrapped, apperrors.ErrConflict))
	assert.False(t, errors.Is(wrapped, apperrors.ErrNotFound))
	assert.Equal(t, apperrors.ReasonPeriodLocked, apperrors.ReasonOf(wrapped))
	assert.Equal(t, "2024-01-01", err.Details["date"])
}

func TestWrapIsInternal(t *testing.T) {
	cause := errors.New("database is locked")
	err := apperrors.Wrap(cause, "failed to save")

	assert.True(t, errors.Is(err, apperrors.ErrInternal))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "failed to save: database is locked", err.Error())
}

func TestClassification(t *testing.T) {
	tests := []struct {
		err    error
		kind   string
		status int
		reason apperrors.Reason
	}{
		{apperrors.ErrValidation, "ValidationError", http.StatusBadRequest, apperrors.ReasonValidation},
		{apperrors.ErrNotFound, "NotFound", http.StatusNotFound, apperrors.ReasonNotFound},
		{apperrors.ErrDuplicate, "Conflict", http.StatusConflict, apperrors.ReasonDuplicateCode},
		{apperrors.New(apperrors.ErrConflict, apperrors.ReasonUnbalanced, "x"), "Conflict", http.StatusConflict, apperrors.ReasonUnbalanced},
		{apperrors.New(apperrors.ErrReferentialBlock, apperrors.ReasonHasJournalLines, "x"), "ReferentialBlock", http.StatusUnprocessableEntity, apperrors.ReasonHasJournalLines},
		{errors.New("boom"), "Internal", http.StatusInternalServerError, apperrors.ReasonInternal},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"/"+string(tt.reason), func(t *testing.T) {
			assert.Equal(t, tt.kind, apperrors.KindName(tt.err))
			assert.Equal(t, tt.status, apperrors.HTTPStatus(tt.err))
			assert.Equal(t, tt.reason, apperrors.ReasonOf(tt.err))
		})
	}
}
