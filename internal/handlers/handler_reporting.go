package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/actions"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the read-only financial reports.
type reportingHandler struct {
	dispatcher *actions.Dispatcher
}

func registerReportingRoutes(rg *gin.RouterGroup, dispatcher *actions.Dispatcher) {
	h := &reportingHandler{dispatcher: dispatcher}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/ledger/:id", h.getLedger)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/profit-loss", h.getProfitLoss)
	}
}

// getTrialBalance godoc
// @Summary Trial balance
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Include entries dated on or before (YYYY-MM-DD)"
// @Success 200 {object} actions.Result
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	var req dto.AsOfRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	report, err := h.dispatcher.GetTrialBalance(c.Request.Context(), req)
	respond(c, http.StatusOK, report, err)
}

// getLedger godoc
// @Summary Account ledger
// @Tags reports
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   includeRunningBalance query bool false "Add a running balance to each row"
// @Success 200 {object} actions.Result
// @Failure 404 {object} actions.Result "Account not found"
// @Security BearerAuth
// @Router /reports/ledger/{id} [get]
func (h *reportingHandler) getLedger(c *gin.Context) {
	var req dto.LedgerRequest
	if err := c.ShouldBindUri(&req); err != nil {
		bindFailed(c, err)
		return
	}
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	report, err := h.dispatcher.GetLedger(c.Request.Context(), req)
	respond(c, http.StatusOK, report, err)
}

// getBalanceSheet godoc
// @Summary Balance sheet
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Include entries dated on or before (YYYY-MM-DD)"
// @Success 200 {object} actions.Result
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	var req dto.AsOfRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	report, err := h.dispatcher.GetBalanceSheet(c.Request.Context(), req)
	respond(c, http.StatusOK, report, err)
}

// getProfitLoss godoc
// @Summary Profit and loss
// @Tags reports
// @Produce  json
// @Param   startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Success 200 {object} actions.Result
// @Security BearerAuth
// @Router /reports/profit-loss [get]
func (h *reportingHandler) getProfitLoss(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	report, err := h.dispatcher.GetProfitLoss(c.Request.Context(), req)
	respond(c, http.StatusOK, report, err)
}
