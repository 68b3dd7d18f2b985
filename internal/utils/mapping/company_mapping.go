package mapping

import (
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	"github.com/tidybooks/tidybooks_backend/internal/models"
)

// ToModelCompany converts a domain Company to its database model.
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		BaseCurrency: d.BaseCurrency,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a database Company model to its domain form.
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:    m.CompanyID,
		Name:         m.Name,
		BaseCurrency: m.BaseCurrency,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanySlice converts a slice of Company models to domain form.
func ToDomainCompanySlice(ms []models.Company) []domain.Company {
	ds := make([]domain.Company, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompany(m)
	}
	return ds
}

// ToDomainUserCompany converts a membership model to its domain form.
func ToDomainUserCompany(m models.UserCompany) domain.UserCompany {
	return domain.UserCompany{
		UserID:    m.UserID,
		CompanyID: m.CompanyID,
		Role:      domain.UserCompanyRole(m.Role),
		JoinedAt:  m.JoinedAt,
	}
}
