package dto

import (
	"time"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to create a new company.
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	BaseCurrency string `json:"baseCurrency" binding:"required,len=3"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID    string    `json:"companyID"`
	Name         string    `json:"name"`
	BaseCurrency string    `json:"baseCurrency"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		BaseCurrency: c.BaseCurrency,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
	}
}

// ToCompanyResponses converts a slice of domain.Company to DTOs.
func ToCompanyResponses(cs []domain.Company) []CompanyResponse {
	res := make([]CompanyResponse, len(cs))
	for i, c := range cs {
		res[i] = ToCompanyResponse(&c)
	}
	return res
}
