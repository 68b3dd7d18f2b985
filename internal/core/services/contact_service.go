package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
)

const (
	defaultContactPageSize = 50
	maxContactPageSize     = 200
)

// contactService implements the ContactSvcFacade interface.
type contactService struct {
	BaseService
	contactRepo portsrepo.ContactRepositoryFacade
}

// ContactServiceOption is a functional option for configuring the contact service
type ContactServiceOption func(*contactService)

// WithContactCompanyAuthorizer adds the company authorizer dependency
func WithContactCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) ContactServiceOption {
	return func(s *contactService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo portsrepo.ContactRepositoryFacade, options ...ContactServiceOption) portssvc.ContactSvcFacade {
	svc := &contactService{contactRepo: contactRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ContactSvcFacade = (*contactService)(nil)

func (s *contactService) CreateContact(ctx context.Context, userID string, companyID string, req dto.CreateContactRequest) (*domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	contact := domain.Contact{
		ContactID:       uuid.NewString(),
		CompanyID:       companyID,
		Name:            req.Name,
		ContactType:     req.ContactType,
		Email:           req.Email,
		Phone:           req.Phone,
		CreditTermsDays: req.CreditTermsDays,
		CreditLimit:     req.CreditLimit,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.contactRepo.SaveContact(ctx, contact); err != nil {
		s.LogError(ctx, err, "Failed to save contact", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	s.LogInfo(ctx, "Contact created",
		slog.String("contact_id", contact.ContactID),
		slog.String("company_id", companyID),
		slog.String("type", string(contact.ContactType)))
	return &contact, nil
}

func (s *contactService) GetContactByID(ctx context.Context, userID string, companyID string, contactID string) (*domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	contact, err := s.contactRepo.FindContactByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}

func (s *contactService) ListContacts(ctx context.Context, userID string, companyID string, params dto.ListContactsParams) ([]domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultContactPageSize
	}
	if limit > maxContactPageSize {
		limit = maxContactPageSize
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	filter := portsrepo.ListContactsFilter{
		Search: strings.TrimSpace(params.Search),
		Limit:  limit,
		Offset: offset,
	}
	if params.Type != nil {
		ct := domain.ContactType(strings.ToUpper(*params.Type))
		switch ct {
		case domain.ContactCustomer, domain.ContactVendor, domain.ContactBoth:
			filter.ContactType = &ct
		default:
			return nil, fmt.Errorf("%w: unknown contact type %q", apperrors.ErrValidation, *params.Type)
		}
	}

	contacts, err := s.contactRepo.ListContacts(ctx, companyID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	if contacts == nil {
		return []domain.Contact{}, nil
	}
	return contacts, nil
}

func (s *contactService) UpdateContact(ctx context.Context, userID string, companyID string, contactID string, req dto.UpdateContactRequest) (*domain.Contact, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	contact, err := s.GetContactByID(ctx, userID, companyID, contactID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.ContactType != nil {
		contact.ContactType = *req.ContactType
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.CreditTermsDays != nil {
		contact.CreditTermsDays = *req.CreditTermsDays
	}
	if req.CreditLimit != nil {
		contact.CreditLimit = *req.CreditLimit
	}
	if req.IsActive != nil {
		contact.IsActive = *req.IsActive
	}
	contact.LastUpdatedAt = time.Now()
	contact.LastUpdatedBy = userID

	if err := s.contactRepo.UpdateContact(ctx, *contact); err != nil {
		s.LogError(ctx, err, "Failed to update contact", slog.String("contact_id", contactID))
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}
	return contact, nil
}
