package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/middleware"
	"github.com/tidybooks/tidybooks_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	rateLimiter *limiter.Limiter,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1",
		middleware.RateLimit(rateLimiter),
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	)

	registerCompanyRoutes(v1, services)
}

// registerCompanyRoutes wires the company collection and everything scoped
// below a single company.
func registerCompanyRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	ch := newCompanyHandler(services.CompanySvc)

	companies := rg.Group("/companies")
	{
		companies.POST("", ch.createCompany)
		companies.GET("", ch.listCompanies)
		companies.GET("/:companyID", ch.getCompany)
	}

	scoped := companies.Group("/:companyID")
	registerAccountRoutes(scoped, services.AccountSvc)
	registerJournalRoutes(scoped, services.JournalSvc)
	registerInvoiceRoutes(scoped, services.InvoiceSvc)
	registerContactRoutes(scoped, services.ContactSvc)
	registerReportingRoutes(scoped, services.ReportingSvc)
	registerDashboardRoutes(scoped, services.DashboardSvc)
}
