package services

import (
	"context"

	"github.com/tidybooks/tidybooks_backend/internal/core/domain"
	"github.com/tidybooks/tidybooks_backend/internal/dto"
	"github.com/tidybooks/tidybooks_backend/internal/utils/coa"
)

// AccountSvcFacade defines operations on the chart of accounts.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, userID string, companyID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, userID string, companyID string, accountID string) (*domain.Account, error)
	// GetAccountsByIDs resolves a batch of account IDs within the company.
	// Returns apperrors.ErrNotFound if any requested ID is missing.
	GetAccountsByIDs(ctx context.Context, userID string, companyID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, userID string, companyID string) ([]domain.Account, error)
	GetAccountHierarchy(ctx context.Context, userID string, companyID string) ([]*coa.Node, error)
	UpdateAccount(ctx context.Context, userID string, companyID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	// DeleteAccount removes an account with no journal postings; its
	// children become root accounts.
	DeleteAccount(ctx context.Context, userID string, companyID string, accountID string) error
}
