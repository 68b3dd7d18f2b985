package repositories

import (
	"context"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// ListContactsFilter restricts a contact listing.
type ListContactsFilter struct {
	ContactType *domain.ContactType
	Search      string // matches against contact name
	Limit       int
	Offset      int
}

// ContactReader defines read operations for contact data.
type ContactReader interface {
	// FindContactByID retrieves a contact by its unique identifier.
	FindContactByID(ctx context.Context, contactID string) (*domain.Contact, error)

	// ListContacts retrieves contacts of a company ordered by name.
	ListContacts(ctx context.Context, companyID string, filter ListContactsFilter) ([]domain.Contact, error)
}

// ContactWriter defines write operations for contact data.
type ContactWriter interface {
	// SaveContact persists a new contact.
	SaveContact(ctx context.Context, contact domain.Contact) error

	// UpdateContact persists changes to an existing contact.
	UpdateContact(ctx context.Context, contact domain.Contact) error
}

// ContactRepositoryFacade combines all contact repository interfaces.
type ContactRepositoryFacade interface {
	ContactReader
	ContactWriter
}
