package services

import (
	"context"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// ServiceContainer holds all service facades for dependency injection
// into the HTTP handlers.
type ServiceContainer struct {
	CompanySvc   CompanySvcFacade
	AccountSvc   AccountSvcFacade
	JournalSvc   JournalSvcFacade
	InvoiceSvc   InvoiceSvcFacade
	ContactSvc   ContactSvcFacade
	ReportingSvc ReportingSvcFacade
	DashboardSvc DashboardSvcFacade
}

// CompanyAuthorizerSvc checks whether a user may act within a company.
type CompanyAuthorizerSvc interface {
	// AuthorizeUserAction returns nil if the user holds at least minRole in
	// the company, apperrors.ErrForbidden otherwise.
	AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error
}
