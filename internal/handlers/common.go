package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/middleware"
)

// requestIdentity extracts the authenticated user and the company route
// parameter. On failure it writes the response and returns ok=false.
func requestIdentity(c *gin.Context) (userID, companyID string, ok bool) {
	userID, found := middleware.GetUserIDFromContext(c)
	if !found {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	companyID = c.Param("companyID")
	if companyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID is required"})
		return "", "", false
	}
	return userID, companyID, true
}

// respondServiceError maps service-layer errors to HTTP responses. The
// fallback message keeps internal details out of 500 responses.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrImmutable):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// parseDateParam parses a required YYYY-MM-DD query parameter.
func parseDateParam(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter '" + name + "' is required (YYYY-MM-DD)"})
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date for '" + name + "', expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}

// parseDateParamDefault parses an optional YYYY-MM-DD query parameter,
// falling back to def when absent.
func parseDateParamDefault(c *gin.Context, name string, def time.Time) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date for '" + name + "', expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
