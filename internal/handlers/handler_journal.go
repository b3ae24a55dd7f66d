package handlers

import (
	"net/http"

	"github.com/SscSPs/ledger_engine/internal/actions"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/gin-gonic/gin"
)

type journalHandler struct {
	dispatcher *actions.Dispatcher
}

func registerJournalRoutes(rg *gin.RouterGroup, dispatcher *actions.Dispatcher) {
	h := &journalHandler{dispatcher: dispatcher}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.searchEntries)
		entries.GET("/:id", h.getEntry)
		entries.DELETE("/:id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Records a balanced entry with at least two single-sided lines
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Entry and lines"
// @Success 201 {object} actions.Result
// @Failure 400 {object} actions.Result "Validation error"
// @Failure 409 {object} actions.Result "Unbalanced, missing accounts or locked period"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	entry, err := h.dispatcher.CreateJournalEntry(c.Request.Context(), req)
	respond(c, http.StatusCreated, entry, err)
}

// searchEntries godoc
// @Summary Search journal entries
// @Description Most recent first. Reference and description are case-sensitive substring filters.
// @Tags journal
// @Produce  json
// @Param   startDate query string false "Inclusive start date (YYYY-MM-DD)"
// @Param   endDate query string false "Inclusive end date (YYYY-MM-DD)"
// @Param   reference query string false "Reference contains"
// @Param   description query string false "Description contains"
// @Success 200 {object} actions.Result
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalHandler) searchEntries(c *gin.Context) {
	var req dto.SearchJournalEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c, err)
		return
	}
	entries, err := h.dispatcher.SearchJournalEntries(c.Request.Context(), req)
	respond(c, http.StatusOK, entries, err)
}

// getEntry godoc
// @Summary Get a journal entry with its lines
// @Tags journal
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Success 200 {object} actions.Result
// @Failure 404 {object} actions.Result "Entry not found"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		bindFailed(c, err)
		return
	}
	entry, err := h.dispatcher.GetJournalEntryByID(c.Request.Context(), req)
	respond(c, http.StatusOK, entry, err)
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Tags journal
// @Produce  json
// @Param   id path int true "Journal entry ID"
// @Success 200 {object} actions.Result
// @Failure 404 {object} actions.Result "Entry not found"
// @Failure 409 {object} actions.Result "Entry date is in a locked period"
// @Security BearerAuth
// @Router /journal-entries/{id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		bindFailed(c, err)
		return
	}
	res, err := h.dispatcher.DeleteJournalEntry(c.Request.Context(), req)
	respond(c, http.StatusOK, res, err)
}
