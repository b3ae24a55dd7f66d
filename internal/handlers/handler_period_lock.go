package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/actions"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

type periodLockHandler struct {
	dispatcher *actions.Dispatcher
}

func registerPeriodLockRoutes(rg *gin.RouterGroup, dispatcher *actions.Dispatcher) {
	h := &periodLockHandler{dispatcher: dispatcher}
	rg.GET("/period-lock", h.getLock)
	rg.POST("/period-lock", h.closePeriod)
	rg.GET("/settings", h.getSettings)
}

// getLock godoc
// @Summary Get the period lock
// @Description Returns the close date, or null data when the ledger was never closed
// @Tags period
// @Produce  json
// @Success 200 {object} actions.Result
// @Security BearerAuth
// @Router /period-lock [get]
func (h *periodLockHandler) getLock(c *gin.Context) {
	lock, err := h.dispatcher.GetPeriodLock(c.Request.Context())
	respond(c, http.StatusOK, lock, err)
}

// closePeriod godoc
// @Summary Close the ledger through a date
// @Tags period
// @Accept  json
// @Produce  json
// @Param   lock body dto.ClosePeriodRequest true "Close date"
// @Success 200 {object} actions.Result
// @Failure 400 {object} actions.Result "Invalid date"
// @Failure 409 {object} actions.Result "Already locked through a later date"
// @Security BearerAuth
// @Router /period-lock [post]
func (h *periodLockHandler) closePeriod(c *gin.Context) {
	var req dto.ClosePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res, err := h.dispatcher.ClosePeriod(c.Request.Context(), req)
	respond(c, http.StatusOK, res, err)
}

// getSettings godoc
// @Summary Display settings
// @Tags settings
// @Produce  json
// @Success 200 {object} actions.Result
// @Security BearerAuth
// @Router /settings [get]
func (h *periodLockHandler) getSettings(c *gin.Context) {
	settings, err := h.dispatcher.GetSettings(c.Request.Context())
	respond(c, http.StatusOK, settings, err)
}
