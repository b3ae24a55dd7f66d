package actions

import (
	"encoding/json"
	"errors"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// Result is the envelope every action returns. A success carries Data; a
// failure carries Message and Details with the machine reason under "code"
// and the error kind under "kind".
type Result struct {
	Success bool
	Data    any
	Message string
	Details map[string]any
	err     error
}

// Succeed wraps data in a success envelope.
func Succeed(data any) Result {
	return Result{Success: true, Data: data}
}

// Fail converts err into a failure envelope. Unclassified errors get a
// generic message; the cause stays on the Result for logging.
func Fail(err error) Result {
	details := map[string]any{}
	msg := err.Error()

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		for k, v := range appErr.Details {
			details[k] = v
		}
		msg = appErr.Message
	} else if apperrors.KindName(err) == "Internal" {
		msg = "Internal error"
	}

	details["code"] = string(apperrors.ReasonOf(err))
	details["kind"] = apperrors.KindName(err)
	return Result{Success: false, Message: msg, Details: details, err: err}
}

// Err returns the error a failed Result was built from.
func (r Result) Err() error { return r.err }

// Status is the HTTP status matching the result.
func (r Result) Status() int {
	if r.Success {
		return 200
	}
	return apperrors.HTTPStatus(r.err)
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success bool `json:"success"`
			Data    any  `json:"data"`
		}{true, r.Data})
	}
	return json.Marshal(struct {
		Success bool           `json:"success"`
		Message string         `json:"message"`
		Details map[string]any `json:"details,omitempty"`
	}{false, r.Message, r.Details})
}
