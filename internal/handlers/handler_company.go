package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/middleware"
)

// companyHandler handles HTTP requests related to companies.
type companyHandler struct {
	companyService portssvc.CompanySvcFacade
}

func newCompanyHandler(cs portssvc.CompanySvcFacade) *companyHandler {
	return &companyHandler{companyService: cs}
}

func (h *companyHandler) createCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCompany", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	company, err := h.companyService.CreateCompany(c.Request.Context(), userID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create company")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCompanyResponse(company))
}

func (h *companyHandler) listCompanies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	companies, err := h.companyService.ListCompaniesForUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list companies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": dto.ToCompanyResponses(companies)})
}

func (h *companyHandler) getCompany(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetCompanyByID(c.Request.Context(), userID, companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve company")
		return
	}
	c.JSON(http.StatusOK, dto.ToCompanyResponse(company))
}
