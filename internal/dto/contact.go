package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// CreateContactRequest defines the data needed to create a contact.
type CreateContactRequest struct {
	Name            string             `json:"name" binding:"required"`
	ContactType     domain.ContactType `json:"contactType" binding:"required,oneof=CUSTOMER VENDOR BOTH"`
	Email           string             `json:"email" binding:"omitempty,email"`
	Phone           string             `json:"phone"`
	CreditTermsDays int                `json:"creditTermsDays" binding:"omitempty,gte=0"`
	CreditLimit     decimal.Decimal    `json:"creditLimit"`
}

// UpdateContactRequest defines the data allowed for updating a contact.
type UpdateContactRequest struct {
	Name            *string             `json:"name"`
	ContactType     *domain.ContactType `json:"contactType" binding:"omitempty,oneof=CUSTOMER VENDOR BOTH"`
	Email           *string             `json:"email" binding:"omitempty,email"`
	Phone           *string             `json:"phone"`
	CreditTermsDays *int                `json:"creditTermsDays" binding:"omitempty,gte=0"`
	CreditLimit     *decimal.Decimal    `json:"creditLimit"`
	IsActive        *bool               `json:"isActive"`
}

// ListContactsParams defines query parameters for listing contacts.
type ListContactsParams struct {
	Type   *string `form:"type"`
	Search string  `form:"search"`
	Limit  int     `form:"limit,default=50"`
	Offset int     `form:"offset,default=0"`
}

// ContactResponse defines the data returned for a contact.
type ContactResponse struct {
	ContactID       string             `json:"contactID"`
	Name            string             `json:"name"`
	ContactType     domain.ContactType `json:"contactType"`
	Email           string             `json:"email,omitempty"`
	Phone           string             `json:"phone,omitempty"`
	CreditTermsDays int                `json:"creditTermsDays"`
	CreditLimit     decimal.Decimal    `json:"creditLimit"`
	IsActive        bool               `json:"isActive"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// ToContactResponse converts a domain.Contact to its DTO.
func ToContactResponse(c *domain.Contact) ContactResponse {
	return ContactResponse{
		ContactID:       c.ContactID,
		Name:            c.Name,
		ContactType:     c.ContactType,
		Email:           c.Email,
		Phone:           c.Phone,
		CreditTermsDays: c.CreditTermsDays,
		CreditLimit:     c.CreditLimit,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}
}

// ToContactResponses converts a slice of domain.Contact to DTOs.
func ToContactResponses(cs []domain.Contact) []ContactResponse {
	res := make([]ContactResponse, len(cs))
	for i, c := range cs {
		res[i] = ToContactResponse(&c)
	}
	return res
}
