package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/actions"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	dispatcher *actions.Dispatcher
}

func registerAccountRoutes(rg *gin.RouterGroup, dispatcher *actions.Dispatcher) {
	h := &accountHandler{dispatcher: dispatcher}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.PATCH("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// createAccount godoc
// @Summary Create a new account
// @Description Adds an account to the chart, optionally under a parent
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} actions.Result
// @Failure 400 {object} actions.Result "Validation error"
// @Failure 404 {object} actions.Result "Parent not found"
// @Failure 409 {object} actions.Result "Duplicate code"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	acc, err := h.dispatcher.CreateAccount(c.Request.Context(), req)
	respond(c, http.StatusCreated, acc, err)
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists accounts ordered by code. Code and name are case-sensitive substring filters.
// @Tags accounts
// @Produce  json
// @Param   code query string false "Code contains"
// @Param   name query string false "Name contains"
// @Param   type query string false "Account type"
// @Success 200 {object} actions.Result
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	var req dto.ListAccountsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	accounts, err := h.dispatcher.ListAccounts(c.Request.Context(), req)
	respond(c, http.StatusOK, accounts, err)
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} actions.Result
// @Failure 404 {object} actions.Result "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		bindFailed(c, err)
		return
	}
	acc, err := h.dispatcher.GetAccountByID(c.Request.Context(), req)
	respond(c, http.StatusOK, acc, err)
}

// updateAccount godoc
// @Summary Update an account
// @Description Changes code, name, type or parent. A null parentId detaches the account.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to change"
// @Success 200 {object} actions.Result
// @Failure 404 {object} actions.Result "Account or parent not found"
// @Failure 409 {object} actions.Result "Duplicate code or parent cycle"
// @Security BearerAuth
// @Router /accounts/{id} [patch]
func (h *accountHandler) updateAccount(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		bindFailed(c, err)
		return
	}
	req := dto.UpdateAccountRequest{ID: uri.ID}
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	req.ID = uri.ID

	acc, err := h.dispatcher.UpdateAccount(c.Request.Context(), req)
	respond(c, http.StatusOK, acc, err)
}

// deleteAccount godoc
// @Summary Delete an account and its descendants
// @Tags accounts
// @Produce  json
// @Param   id path int true "Account ID"
// @Success 200 {object} actions.Result
// @Failure 404 {object} actions.Result "Account not found"
// @Failure 422 {object} actions.Result "Account or a descendant has journal lines"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res, err := h.dispatcher.DeleteAccount(c.Request.Context(), req)
	respond(c, http.StatusOK, res, err)
}
