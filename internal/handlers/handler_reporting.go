package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers report routes under a company group.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/profit-loss", h.getProfitAndLoss)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/aged-receivables", h.getAgedReceivables)
		reports.GET("/aged-payables", h.getAgedPayables)
	}
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingService.GetTrialBalance(c.Request.Context(), userID, companyID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate trial balance")
		return
	}
	c.JSON(200, report)
}

func (h *reportingHandler) getProfitAndLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	from, ok := parseDateParam(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateParam(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingService.GetProfitAndLoss(c.Request.Context(), userID, companyID, from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate profit and loss report")
		return
	}
	c.JSON(200, report)
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	asOf, ok := parseDateParamDefault(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.GetBalanceSheet(c.Request.Context(), userID, companyID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate balance sheet")
		return
	}
	c.JSON(200, report)
}

func (h *reportingHandler) getAgedReceivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	asOf, ok := parseDateParamDefault(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.GetAgedReceivables(c.Request.Context(), userID, companyID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate aged receivables report")
		return
	}
	c.JSON(200, report)
}

func (h *reportingHandler) getAgedPayables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	asOf, ok := parseDateParamDefault(c, "asOf", time.Now())
	if !ok {
		return
	}

	report, err := h.reportingService.GetAgedPayables(c.Request.Context(), userID, companyID, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to generate aged payables report")
		return
	}
	c.JSON(200, report)
}
