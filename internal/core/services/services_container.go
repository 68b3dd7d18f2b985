package services

import (
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first: it is the authorizer everything else uses.
	container.CompanySvc = NewCompanyService(repos.CompanyRepo)
	authorizer := container.CompanySvc.(portssvc.CompanyAuthorizerSvc)

	container.AccountSvc = NewAccountService(
		repos.AccountRepo,
		WithAccountCompanyAuthorizer(authorizer),
	)
	container.ContactSvc = NewContactService(
		repos.ContactRepo,
		WithContactCompanyAuthorizer(authorizer),
	)
	container.JournalSvc = NewJournalService(
		repos.JournalRepo,
		container.AccountSvc,
		WithJournalCompanyAuthorizer(authorizer),
	)
	container.InvoiceSvc = NewInvoiceService(
		repos.InvoiceRepo,
		container.ContactSvc,
		WithInvoiceCompanyAuthorizer(authorizer),
	)
	container.ReportingSvc = NewReportingService(
		repos.ReportingRepo,
		repos.InvoiceRepo,
		WithReportingCompanyAuthorizer(authorizer),
	)
	container.DashboardSvc = NewDashboardService(
		repos.ReportingRepo,
		repos.InvoiceRepo,
		WithDashboardCompanyAuthorizer(authorizer),
	)

	return container
}
