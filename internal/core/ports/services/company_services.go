package services

import (
	"context"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
)

// CompanySvcFacade defines operations on companies.
type CompanySvcFacade interface {
	CompanyAuthorizerSvc
	CreateCompany(ctx context.Context, creatorUserID string, req dto.CreateCompanyRequest) (*domain.Company, error)
	GetCompanyByID(ctx context.Context, userID string, companyID string) (*domain.Company, error)
	ListCompaniesForUser(ctx context.Context, userID string) ([]domain.Company, error)
}
