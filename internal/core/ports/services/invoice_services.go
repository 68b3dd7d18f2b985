package services

import (
	"context"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
)

// InvoiceSvcFacade defines operations on invoices.
type InvoiceSvcFacade interface {
	CreateInvoice(ctx context.Context, userID string, companyID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoiceByID(ctx context.Context, userID string, companyID string, invoiceID string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, userID string, companyID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error)
	// UpdateInvoice replaces the editable fields of a DRAFT or CANCELLED
	// invoice, recomputing all amounts.
	UpdateInvoice(ctx context.Context, userID string, companyID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error)
	// TransitionStatus moves the stored status along the allowed edges
	// (DRAFT->SENT, DRAFT/SENT->PAID, non-terminal->CANCELLED).
	TransitionStatus(ctx context.Context, userID string, companyID string, invoiceID string, target domain.InvoiceStatus) (*domain.Invoice, error)
	// DeleteInvoice removes a DRAFT or CANCELLED invoice and its lines.
	DeleteInvoice(ctx context.Context, userID string, companyID string, invoiceID string) error
}
