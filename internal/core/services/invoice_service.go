package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/utils/accounting"
)

var (
	ErrEmptyInvoice       = errors.New("invoice must have at least one line with an item name")
	ErrContactNotBillable = errors.New("contact cannot be billed; must be CUSTOMER or BOTH")
	ErrInvalidTransition  = errors.New("invalid invoice status transition")
)

const (
	defaultInvoicePageSize = 50
	maxInvoicePageSize     = 100
)

var hundred = decimal.NewFromInt(100)

// invoiceService implements the InvoiceSvcFacade interface.
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
	contactSvc  portssvc.ContactSvcFacade
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceCompanyAuthorizer adds the company authorizer dependency
func WithInvoiceCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(invoiceRepo portsrepo.InvoiceRepositoryFacade, contactSvc portssvc.ContactSvcFacade, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo: invoiceRepo,
		contactSvc:  contactSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// validateLines checks line-level business rules. Amounts are not part of
// the request; they are recomputed afterwards.
func (s *invoiceService) validateLines(reqLines []dto.InvoiceLineRequest) error {
	hasItem := false
	for i, l := range reqLines {
		if strings.TrimSpace(l.ItemName) != "" {
			hasItem = true
		}
		if l.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line %d: quantity must be positive", i+1)
		}
		if l.UnitPrice.IsNegative() {
			return fmt.Errorf("line %d: unit price cannot be negative", i+1)
		}
		if l.Discount.IsNegative() || l.Discount.GreaterThan(hundred) {
			return fmt.Errorf("line %d: discount must be between 0 and 100", i+1)
		}
		if l.TaxRate.IsNegative() || l.TaxRate.GreaterThan(hundred) {
			return fmt.Errorf("line %d: tax rate must be between 0 and 100", i+1)
		}
	}
	if !hasItem {
		return ErrEmptyInvoice
	}
	return nil
}

// buildLines converts request lines to domain lines with fresh IDs.
func (s *invoiceService) buildLines(invoiceID string, reqLines []dto.InvoiceLineRequest, audit domain.AuditFields) []domain.InvoiceLine {
	lines := make([]domain.InvoiceLine, len(reqLines))
	for i, l := range reqLines {
		lines[i] = domain.InvoiceLine{
			LineID:      uuid.NewString(),
			InvoiceID:   invoiceID,
			ItemName:    l.ItemName,
			ItemCode:    l.ItemCode,
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			TaxRate:     l.TaxRate,
			AuditFields: audit,
		}
	}
	return lines
}

// resolveBillableContact ensures the contact exists in the company and can
// receive invoices.
func (s *invoiceService) resolveBillableContact(ctx context.Context, userID, companyID, contactID string) error {
	contact, err := s.contactSvc.GetContactByID(ctx, userID, companyID, contactID)
	if err != nil {
		return err
	}
	if !contact.ContactType.CanBeBilled() {
		return fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrContactNotBillable)
	}
	return nil
}

// CreateInvoice validates, numbers and persists a new DRAFT invoice.
func (s *invoiceService) CreateInvoice(ctx context.Context, userID string, companyID string, req dto.CreateInvoiceRequest) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	invoiceDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid invoice date %q", apperrors.ErrValidation, req.Date)
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, req.DueDate)
	}
	if dueDate.Before(invoiceDate) {
		return nil, fmt.Errorf("%w: due date cannot precede invoice date", apperrors.ErrValidation)
	}

	if err := s.validateLines(req.Lines); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
	}
	if err := s.resolveBillableContact(ctx, userID, companyID, req.ContactID); err != nil {
		return nil, err
	}

	now := time.Now()
	invoiceID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	lines := s.buildLines(invoiceID, req.Lines, audit)
	subtotal, taxTotal, total := accounting.ComputeInvoiceTotals(lines)

	invoice := domain.Invoice{
		InvoiceID:         invoiceID,
		CompanyID:         companyID,
		ContactID:         req.ContactID,
		InvoiceDate:       invoiceDate,
		DueDate:           dueDate,
		Status:            domain.InvoiceDraft,
		Subtotal:          subtotal,
		TaxTotal:          taxTotal,
		Total:             total,
		TemplateID:        req.TemplateID,
		Notes:             req.Notes,
		CustomFieldValues: req.CustomFieldValues,
		AuditFields:       audit,
	}

	saved, err := s.invoiceRepo.SaveInvoice(ctx, invoice, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	saved.Lines = lines

	s.LogInfo(ctx, "Invoice created",
		slog.String("invoice_id", saved.InvoiceID),
		slog.String("invoice_no", saved.InvoiceNo),
		slog.String("company_id", companyID))
	return saved, nil
}

// getOwnedInvoice fetches an invoice and enforces tenant ownership.
func (s *invoiceService) getOwnedInvoice(ctx context.Context, companyID, invoiceID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return invoice, nil
}

// GetInvoiceByID returns an invoice with its lines.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, userID string, companyID string, invoiceID string) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	invoice, err := s.getOwnedInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := s.invoiceRepo.FindLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice lines: %w", err)
	}
	invoice.Lines = lines
	return invoice, nil
}

// ListInvoices returns a page of invoices without lines.
func (s *invoiceService) ListInvoices(ctx context.Context, userID string, companyID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultInvoicePageSize
	}
	if limit > maxInvoicePageSize {
		limit = maxInvoicePageSize
	}

	filter := portsrepo.ListInvoicesFilter{
		ContactID: params.ContactID,
		DateFrom:  params.From,
		DateTo:    params.To,
		Limit:     limit,
		NextToken: params.NextToken,
	}
	if params.Status != nil {
		status := domain.InvoiceStatus(strings.ToUpper(*params.Status))
		switch status {
		case domain.InvoiceDraft, domain.InvoiceSent, domain.InvoicePaid, domain.InvoiceCancelled, domain.InvoiceOverdue:
			filter.Status = &status
		default:
			return nil, nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, *params.Status)
		}
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, companyID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices, nextToken, nil
}

// UpdateInvoice edits a DRAFT or CANCELLED invoice, recomputing totals.
func (s *invoiceService) UpdateInvoice(ctx context.Context, userID string, companyID string, invoiceID string, req dto.UpdateInvoiceRequest) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	invoice, err := s.getOwnedInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.IsEditable() {
		return nil, fmt.Errorf("%w: invoice in status %s cannot be edited", apperrors.ErrImmutable, invoice.Status)
	}

	if req.ContactID != nil {
		if err := s.resolveBillableContact(ctx, userID, companyID, *req.ContactID); err != nil {
			return nil, err
		}
		invoice.ContactID = *req.ContactID
	}
	if req.Date != nil {
		d, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid invoice date %q", apperrors.ErrValidation, *req.Date)
		}
		invoice.InvoiceDate = d
	}
	if req.DueDate != nil {
		d, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid due date %q", apperrors.ErrValidation, *req.DueDate)
		}
		invoice.DueDate = d
	}
	if invoice.DueDate.Before(invoice.InvoiceDate) {
		return nil, fmt.Errorf("%w: due date cannot precede invoice date", apperrors.ErrValidation)
	}
	if req.TemplateID != nil {
		invoice.TemplateID = *req.TemplateID
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.CustomFieldValues != nil {
		invoice.CustomFieldValues = req.CustomFieldValues
	}

	now := time.Now()
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	var lines []domain.InvoiceLine
	if req.Lines != nil {
		if err := s.validateLines(req.Lines); err != nil {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, err)
		}
		lines = s.buildLines(invoiceID, req.Lines, domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		})
	} else {
		lines, err = s.invoiceRepo.FindLinesByInvoiceID(ctx, invoiceID)
		if err != nil {
			return nil, fmt.Errorf("failed to load invoice lines: %w", err)
		}
	}
	invoice.Subtotal, invoice.TaxTotal, invoice.Total = accounting.ComputeInvoiceTotals(lines)

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice, lines); err != nil {
		s.LogError(ctx, err, "Failed to update invoice", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	invoice.Lines = lines
	return invoice, nil
}

// TransitionStatus moves the stored invoice status along an allowed edge.
func (s *invoiceService) TransitionStatus(ctx context.Context, userID string, companyID string, invoiceID string, target domain.InvoiceStatus) (*domain.Invoice, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	invoice, err := s.getOwnedInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %w: %s -> %s", apperrors.ErrValidation, ErrInvalidTransition, invoice.Status, target)
	}

	now := time.Now()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoiceID, target, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to update invoice status",
			slog.String("invoice_id", invoiceID),
			slog.String("target", string(target)))
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	s.LogInfo(ctx, "Invoice status changed",
		slog.String("invoice_id", invoiceID),
		slog.String("from", string(invoice.Status)),
		slog.String("to", string(target)))

	invoice.Status = target
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID
	return invoice, nil
}

// DeleteInvoice removes a DRAFT or CANCELLED invoice with its lines.
func (s *invoiceService) DeleteInvoice(ctx context.Context, userID string, companyID string, invoiceID string) error {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return err
	}
	invoice, err := s.getOwnedInvoice(ctx, companyID, invoiceID)
	if err != nil {
		return err
	}
	if !invoice.Status.IsEditable() {
		return fmt.Errorf("%w: invoice in status %s cannot be deleted", apperrors.ErrImmutable, invoice.Status)
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, invoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.LogInfo(ctx, "Invoice deleted",
		slog.String("invoice_id", invoiceID),
		slog.String("invoice_no", invoice.InvoiceNo),
		slog.String("company_id", companyID))
	return nil
}
