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

// companyService implements CompanySvcFacade. It also doubles as the
// company authorizer used by every other service.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new company service.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)
var _ portssvc.CompanyAuthorizerSvc = (*companyService)(nil)

// AuthorizeUserAction verifies the user holds at least requiredRole in the
// company. Membership is consulted on every call; roles are small enough
// that caching has not been worth it.
func (s *companyService) AuthorizeUserAction(ctx context.Context, userID string, companyID string, requiredRole domain.UserCompanyRole) error {
	membership, err := s.companyRepo.FindUserCompany(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to check company membership: %w", err)
	}
	if !membership.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "User role insufficient for action",
			slog.String("user_id", userID),
			slog.String("company_id", companyID),
			slog.String("role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}
	return nil
}

// CreateCompany creates a company and makes the creator its admin.
func (s *companyService) CreateCompany(ctx context.Context, creatorUserID string, req dto.CreateCompanyRequest) (*domain.Company, error) {
	now := time.Now()
	company := domain.Company{
		CompanyID:    uuid.NewString(),
		Name:         req.Name,
		BaseCurrency: strings.ToUpper(req.BaseCurrency),
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company, creatorUserID); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.LogInfo(ctx, "Company created",
		slog.String("company_id", company.CompanyID),
		slog.String("created_by", creatorUserID))
	return &company, nil
}

// GetCompanyByID returns a company if the user is a member of it.
func (s *companyService) GetCompanyByID(ctx context.Context, userID string, companyID string) (*domain.Company, error) {
	if err := s.AuthorizeUserAction(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return company, nil
}

// ListCompaniesForUser lists the companies the user belongs to.
func (s *companyService) ListCompaniesForUser(ctx context.Context, userID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies for user: %w", err)
	}
	if companies == nil {
		return []domain.Company{}, nil
	}
	return companies, nil
}
