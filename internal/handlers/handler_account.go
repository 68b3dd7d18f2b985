package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers account routes under a company group.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/hierarchy", h.getHierarchy)
		accounts.GET("/:accountID", h.getAccount)
		accounts.PUT("/:accountID", h.updateAccount)
		accounts.DELETE("/:accountID", h.deleteAccount)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, companyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID, companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToListAccountResponse(accounts)})
}

func (h *accountHandler) getHierarchy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	roots, err := h.accountService.GetAccountHierarchy(c.Request.Context(), userID, companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build account hierarchy")
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": roots})
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, companyID, accountID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), userID, companyID, accountID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	if err := h.accountService.DeleteAccount(c.Request.Context(), userID, companyID, accountID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete account")
		return
	}
	c.Status(http.StatusNoContent)
}
