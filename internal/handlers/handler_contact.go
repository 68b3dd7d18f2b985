package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/middleware"
)

// contactHandler handles HTTP requests related to contacts.
type contactHandler struct {
	contactService portssvc.ContactSvcFacade
}

func newContactHandler(cs portssvc.ContactSvcFacade) *contactHandler {
	return &contactHandler{contactService: cs}
}

// registerContactRoutes registers contact routes under a company group.
func registerContactRoutes(rg *gin.RouterGroup, contactService portssvc.ContactSvcFacade) {
	h := newContactHandler(contactService)

	contacts := rg.Group("/contacts")
	{
		contacts.POST("", h.createContact)
		contacts.GET("", h.listContacts)
		contacts.GET("/:contactID", h.getContact)
		contacts.PUT("/:contactID", h.updateContact)
	}
}

func (h *contactHandler) createContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	contact, err := h.contactService.CreateContact(c.Request.Context(), userID, companyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create contact")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContactResponse(contact))
}

func (h *contactHandler) getContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	contactID := c.Param("contactID")

	contact, err := h.contactService.GetContactByID(c.Request.Context(), userID, companyID, contactID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}

func (h *contactHandler) listContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListContactsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListContacts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	contacts, err := h.contactService.ListContacts(c.Request.Context(), userID, companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list contacts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": dto.ToContactResponses(contacts)})
}

func (h *contactHandler) updateContact(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	contactID := c.Param("contactID")

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateContact", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	contact, err := h.contactService.UpdateContact(c.Request.Context(), userID, companyID, contactID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update contact")
		return
	}
	c.JSON(http.StatusOK, dto.ToContactResponse(contact))
}
