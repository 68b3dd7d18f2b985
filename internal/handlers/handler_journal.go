package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/middleware"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

func newJournalHandler(js portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal routes under a company group.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createEntry)
		journals.GET("", h.listEntries)
		journals.GET("/:entryID", h.getEntry)
		journals.DELETE("/:entryID", h.deleteEntry)
	}
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), userID, companyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	entry, err := h.journalService.GetEntryByID(c.Request.Context(), userID, companyID, entryID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, nextToken, err := h.journalService.ListEntries(c.Request.Context(), userID, companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list journal entries")
		return
	}

	resp := dto.ListEntriesResponse{
		Entries:   make([]dto.JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *journalHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	entryID := c.Param("entryID")

	if err := h.journalService.DeleteEntry(c.Request.Context(), userID, companyID, entryID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}
