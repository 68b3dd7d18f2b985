package repositories

import (
	"context"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
)

// CompanyReader defines read operations for company data.
type CompanyReader interface {
	// FindCompanyByID retrieves a company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// ListCompaniesByUser retrieves the companies a user is a member of.
	ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error)

	// FindUserCompany retrieves a user's membership in a company, or
	// apperrors.ErrNotFound when the user is not a member.
	FindUserCompany(ctx context.Context, userID, companyID string) (*domain.UserCompany, error)
}

// CompanyWriter defines write operations for company data.
type CompanyWriter interface {
	// SaveCompany persists a new company and its creator's ADMIN membership
	// in one transaction.
	SaveCompany(ctx context.Context, company domain.Company, creatorUserID string) error
}

// CompanyRepositoryFacade combines all company repository interfaces.
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}
