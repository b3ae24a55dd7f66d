package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
)

// Action names accepted by Execute.
const (
	CreateAccount        = "createAccount"
	UpdateAccount        = "updateAccount"
	GetAccountByID       = "getAccountById"
	ListAccounts         = "listAccounts"
	DeleteAccount        = "deleteAccount"
	CreateJournalEntry   = "createJournalEntry"
	DeleteJournalEntry   = "deleteJournalEntry"
	GetJournalEntryByID  = "getJournalEntryById"
	SearchJournalEntries = "searchJournalEntries"
	ClosePeriod          = "closePeriod"
	GetPeriodLock        = "getPeriodLock"
	GetTrialBalance      = "getTrialBalance"
	GetLedger            = "getLedger"
	GetBalanceSheet      = "getBalanceSheet"
	GetProfitLoss        = "getProfitLoss"
	GetSettings          = "getSettings"

	// GetJournalEntryDetails is an older name for GetJournalEntryByID kept for existing hosts.
	GetJournalEntryDetails = "getJournalEntryDetails"
)

type handlerFunc func(ctx context.Context, payload json.RawMessage) (any, error)

// Dispatcher exposes every ledger operation as a named action taking a
// JSON object and returning a Result. It never panics.
type Dispatcher struct {
	services *portssvc.ServiceContainer
	settings domain.Settings
	handlers map[string]handlerFunc
}

func NewDispatcher(services *portssvc.ServiceContainer, settings domain.Settings) *Dispatcher {
	d := &Dispatcher{services: services, settings: settings}
	d.handlers = map[string]handlerFunc{
		CreateAccount:        bind(d.CreateAccount),
		UpdateAccount:        bind(d.UpdateAccount),
		GetAccountByID:       bind(d.GetAccountByID),
		ListAccounts:         bind(d.ListAccounts),
		DeleteAccount:        bind(d.DeleteAccount),
		CreateJournalEntry:   bind(d.CreateJournalEntry),
		DeleteJournalEntry:   bind(d.DeleteJournalEntry),
		GetJournalEntryByID:  bind(d.GetJournalEntryByID),
		SearchJournalEntries: bind(d.SearchJournalEntries),
		ClosePeriod:          bind(d.ClosePeriod),
		GetPeriodLock:        noPayload(d.GetPeriodLock),
		GetTrialBalance:      bind(d.GetTrialBalance),
		GetLedger:            bind(d.GetLedger),
		GetBalanceSheet:      bind(d.GetBalanceSheet),
		GetProfitLoss:        bind(d.GetProfitLoss),
		GetSettings:          noPayload(d.GetSettings),

		GetJournalEntryDetails: bind(d.GetJournalEntryByID),
	}
	return d
}

// Actions lists the supported action names in sorted order.
func (d *Dispatcher) Actions() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs the named action. A nil, empty or null payload is treated
// as an empty object.
func (d *Dispatcher) Execute(ctx context.Context, action string, payload json.RawMessage) (res Result) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("action", action))
	defer func() {
		if p := recover(); p != nil {
			logger.Error("Action panicked", slog.Any("panic", p), slog.String("stack", string(debug.Stack())))
			res = Fail(apperrors.Wrap(fmt.Errorf("panic: %v", p), "Internal error"))
		}
	}()

	h, ok := d.handlers[action]
	if !ok {
		return Fail(apperrors.New(apperrors.ErrValidation, apperrors.ReasonUnknownAction,
			fmt.Sprintf("Unknown action %q", action)).WithDetail("action", action))
	}

	data, err := h(middleware.WithLogger(ctx, logger), payload)
	if err != nil {
		return Fail(err)
	}
	return Succeed(data)
}

// bind decodes and validates the payload into Req before calling fn.
func bind[Req any, Resp any](fn func(context.Context, Req) (Resp, error)) handlerFunc {
	return func(ctx context.Context, payload json.RawMessage) (any, error) {
		var req Req
		if err := decode(payload, &req); err != nil {
			return nil, err
		}
		return fn(ctx, req)
	}
}

func noPayload[Resp any](fn func(context.Context) (Resp, error)) handlerFunc {
	return func(ctx context.Context, _ json.RawMessage) (any, error) {
		return fn(ctx)
	}
}

func decode(payload json.RawMessage, dst any) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(trimmed, dst); err != nil {
		return apperrors.New(apperrors.ErrValidation, apperrors.ReasonValidation,
			fmt.Sprintf("Invalid request payload: %v", err))
	}
	return nil
}
