package mapping

import (
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	"github.com/tidybooks/tidybooks_backend/internal/models"
)

// ToModelContact converts a domain Contact to its model form.
func ToModelContact(d domain.Contact) models.Contact {
	return models.Contact{
		ContactID:       d.ContactID,
		CompanyID:       d.CompanyID,
		Name:            d.Name,
		ContactType:     string(d.ContactType),
		Email:           d.Email,
		Phone:           d.Phone,
		CreditTermsDays: d.CreditTermsDays,
		CreditLimit:     d.CreditLimit,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainContact converts a model Contact to its domain form.
func ToDomainContact(m models.Contact) domain.Contact {
	return domain.Contact{
		ContactID:       m.ContactID,
		CompanyID:       m.CompanyID,
		Name:            m.Name,
		ContactType:     domain.ContactType(m.ContactType),
		Email:           m.Email,
		Phone:           m.Phone,
		CreditTermsDays: m.CreditTermsDays,
		CreditLimit:     m.CreditLimit,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainContactSlice converts model contacts to domain contacts.
func ToDomainContactSlice(ms []models.Contact) []domain.Contact {
	ds := make([]domain.Contact, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainContact(m)
	}
	return ds
}
