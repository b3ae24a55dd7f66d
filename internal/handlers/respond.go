package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/actions"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respond writes data or err as an envelope. Failures take their status from
// the error kind.
func respond(c *gin.Context, status int, data any, err error) {
	if err != nil {
		writeResult(c, actions.Fail(err))
		return
	}
	c.JSON(status, actions.Succeed(data))
}

func writeResult(c *gin.Context, res actions.Result) {
	if !res.Success {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		status := res.Status()
		if status >= http.StatusInternalServerError {
			logger.Error("Request failed", slog.String("error", res.Err().Error()))
		} else {
			logger.Warn("Request rejected", slog.String("message", res.Message), slog.Any("code", res.Details["code"]))
		}
		c.JSON(status, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// bindFailed reports a request that could not be bound or validated.
func bindFailed(c *gin.Context, err error) {
	writeResult(c, actions.Fail(dto.ValidationError(err)))
}
