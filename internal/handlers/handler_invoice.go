package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{invoiceService: is}
}

// registerInvoiceRoutes registers invoice routes under a company group.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoiceID", h.getInvoice)
		invoices.PUT("/:invoiceID", h.updateInvoice)
		invoices.DELETE("/:invoiceID", h.deleteInvoice)
		invoices.POST("/:invoiceID/status", h.transitionStatus)
	}
}

func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), userID, companyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create invoice")
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice, time.Now()))
}

func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	invoiceID := c.Param("invoiceID")

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), userID, companyID, invoiceID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, time.Now()))
}

func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	invoices, nextToken, err := h.invoiceService.ListInvoices(c.Request.Context(), userID, companyID, params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list invoices")
		return
	}

	now := time.Now()
	resp := dto.ListInvoicesResponse{
		Invoices:  make([]dto.InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i], now)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	invoiceID := c.Param("invoiceID")

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), userID, companyID, invoiceID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update invoice")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, time.Now()))
}

func (h *invoiceHandler) transitionStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	invoiceID := c.Param("invoiceID")

	var req dto.TransitionInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.TransitionStatus(c.Request.Context(), userID, companyID, invoiceID, req.Status)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update invoice status")
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice, time.Now()))
}

func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	invoiceID := c.Param("invoiceID")

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), userID, companyID, invoiceID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}
