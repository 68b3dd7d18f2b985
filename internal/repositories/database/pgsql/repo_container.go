package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgsql repositories backed by one pool.
func NewRepositoryProvider(pool *pgxpool.Pool, search SearchCapabilities) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:   newPgxCompanyRepository(pool),
		AccountRepo:   newPgxAccountRepository(pool),
		JournalRepo:   newPgxJournalRepository(pool),
		InvoiceRepo:   newPgxInvoiceRepository(pool),
		ContactRepo:   newPgxContactRepository(pool, search),
		ReportingRepo: newPgxReportingRepository(pool),
	}
}
