package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tidybooks/tidybooks_backend/internal/apperrors"
	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	portsrepo "github.com/tidybooks/tidybooks_backend/internal/core/ports/repositories"
	portssvc "github.com/tidybooks/tidybooks_backend/internal/core/ports/services"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/utils/coa"
)

var (
	ErrAccountCodeTaken      = errors.New("account code already in use in this company")
	ErrParentAccountNotFound = errors.New("parent account not found in this company")
	ErrParentTypeMismatch    = errors.New("parent account must have the same account type")
	ErrAccountHasPostings    = errors.New("account has journal lines and cannot be deleted")
)

// accountService implements the AccountSvcFacade interface.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountCompanyAuthorizer adds the company authorizer dependency
func WithAccountCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, companyID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil || parent.CompanyID != companyID {
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("failed to resolve parent account: %w", err)
			}
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrParentAccountNotFound)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrParentTypeMismatch)
		}
		parentID = parent.AccountID
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       companyID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrDuplicate, ErrAccountCodeTaken)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("company_id", companyID),
			slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("company_id", companyID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, companyID string, accountID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	// Accounts from another tenant are invisible, not forbidden.
	if account.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, userID string, companyID string, accountIDs []string) (map[string]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts by ids: %w", err)
	}
	for _, id := range accountIDs {
		acc, ok := accounts[id]
		if !ok || acc.CompanyID != companyID {
			return nil, fmt.Errorf("account %s: %w", id, apperrors.ErrNotFound)
		}
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string, companyID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) GetAccountHierarchy(ctx context.Context, userID string, companyID string) ([]*coa.Node, error) {
	accounts, err := s.ListAccounts(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	return coa.BuildHierarchy(accounts), nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, companyID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleMember); err != nil {
		return nil, err
	}
	account, err := s.GetAccountByID(ctx, userID, companyID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, userID string, companyID string, accountID string) error {
	if err := s.AuthorizeUser(ctx, userID, companyID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.GetAccountByID(ctx, userID, companyID, accountID); err != nil {
		return err
	}

	hasLines, err := s.accountRepo.HasJournalLines(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account postings: %w", err)
	}
	if hasLines {
		return fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAccountHasPostings)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.LogInfo(ctx, "Account deleted",
		slog.String("account_id", accountID),
		slog.String("company_id", companyID))
	return nil
}
