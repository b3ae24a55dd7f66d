package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/actions"
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxActionPayload bounds the request body of the generic action endpoint.
const maxActionPayload = 1 << 20

func registerActionRoutes(rg *gin.RouterGroup, dispatcher *actions.Dispatcher) {
	rg.GET("/actions", func(c *gin.Context) {
		c.JSON(http.StatusOK, actions.Succeed(dispatcher.Actions()))
	})
	rg.POST("/actions/:action", executeAction(dispatcher))
}

// executeAction godoc
// @Summary Run a named ledger action
// @Description Plugin-host entry point. The body is the action's JSON payload; the response is always an envelope.
// @Tags actions
// @Accept  json
// @Produce  json
// @Param   action path string true "Action name, e.g. createAccount"
// @Param   payload body object false "Action payload"
// @Success 200 {object} actions.Result
// @Failure 400 {object} actions.Result "Validation error or unknown action"
// @Security BearerAuth
// @Router /actions/{action} [post]
func executeAction(dispatcher *actions.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		if subject, ok := middleware.GetUserIDFromContext(c); ok {
			logger = logger.With(slog.String("subject", subject))
		}
		logger.Debug("Executing action", slog.String("action", c.Param("action")))

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxActionPayload))
		if err != nil {
			writeResult(c, actions.Fail(apperrors.New(apperrors.ErrValidation, apperrors.ReasonValidation,
				"Failed to read request body")))
			return
		}
		writeResult(c, dispatcher.Execute(c.Request.Context(), c.Param("action"), json.RawMessage(body)))
	}
}
