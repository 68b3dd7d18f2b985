package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/middleware"
)

// dashboardHandler handles HTTP requests for the dashboard summary.
type dashboardHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newDashboardHandler(ds portssvc.DashboardSvcFacade) *dashboardHandler {
	return &dashboardHandler{dashboardService: ds}
}

// registerDashboardRoutes registers the dashboard route under a company group.
func registerDashboardRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newDashboardHandler(dashboardService)
	rg.GET("/dashboard", h.getSummary)
}

func (h *dashboardHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, companyID, ok := requestIdentity(c)
	if !ok {
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), userID, companyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
