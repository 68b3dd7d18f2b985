package repositories

// RepositoryProvider bundles all repositories for dependency injection.
type RepositoryProvider struct {
	CompanyRepo   CompanyRepositoryFacade
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	InvoiceRepo   InvoiceRepositoryFacade
	ContactRepo   ContactRepositoryFacade
	ReportingRepo ReportingRepository
}
