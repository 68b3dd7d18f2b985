package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// ListInvoicesFilter restricts an invoice listing.
type ListInvoicesFilter struct {
	Status    *domain.InvoiceStatus
	ContactID *string
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	NextToken *string
}

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice header by its unique identifier.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindLinesByInvoiceID retrieves all lines of a single invoice.
	FindLinesByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceLine, error)

	// ListInvoices retrieves invoices of a company ordered by date descending
	// with token pagination.
	ListInvoices(ctx context.Context, companyID string, filter ListInvoicesFilter) ([]domain.Invoice, *string, error)

	// ListOpenInvoices retrieves every invoice that is neither PAID nor
	// CANCELLED, joined with the contact name, restricted to contacts of the
	// given types. This is the aging calculator's input.
	ListOpenInvoices(ctx context.Context, companyID string, contactTypes []domain.ContactType) ([]domain.OpenInvoice, error)

	// CountOpenInvoices counts invoices that are neither PAID nor CANCELLED.
	CountOpenInvoices(ctx context.Context, companyID string) (int, error)

	// SumPaidInvoiceTotals sums the totals of PAID invoices dated within the
	// half-open window [from, to).
	SumPaidInvoiceTotals(ctx context.Context, companyID string, from, to time.Time) (decimal.Decimal, error)

	// MonthlyPaidInvoiceTotals sums PAID invoice totals per calendar month
	// over [start, end), keyed by "YYYY-MM".
	MonthlyPaidInvoiceTotals(ctx context.Context, companyID string, start, end time.Time) (map[string]decimal.Decimal, error)
}

// InvoiceWriter defines write operations for invoice data.
type InvoiceWriter interface {
	// SaveInvoice reserves the next per-company-per-year invoice number and
	// persists the invoice with all its lines in a single transaction. The
	// returned invoice carries the assigned InvoiceNo.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) (*domain.Invoice, error)

	// UpdateInvoice persists header changes and replaces all lines in a
	// single transaction.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.InvoiceLine) error

	// UpdateInvoiceStatus updates only the stored status of an invoice.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedByUserID string, updatedAt time.Time) error

	// DeleteInvoice removes the invoice and all its lines in one transaction.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
