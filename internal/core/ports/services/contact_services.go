package services

import (
	"context"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
)

// ContactSvcFacade defines operations on customer/vendor contacts.
type ContactSvcFacade interface {
	CreateContact(ctx context.Context, userID string, companyID string, req dto.CreateContactRequest) (*domain.Contact, error)
	GetContactByID(ctx context.Context, userID string, companyID string, contactID string) (*domain.Contact, error)
	ListContacts(ctx context.Context, userID string, companyID string, params dto.ListContactsParams) ([]domain.Contact, error)
	UpdateContact(ctx context.Context, userID string, companyID string, contactID string, req dto.UpdateContactRequest) (*domain.Contact, error)
}
